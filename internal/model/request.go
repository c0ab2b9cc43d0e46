package model

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyURL is returned when a request is built from a blank URL
var ErrEmptyURL = errors.New("url is empty")

// RequestIDPrefix prefixes every generated request ID
const RequestIDPrefix = "dl-"

// DownloadRequest is the single in-flight unit of work handed to the worker
type DownloadRequest struct {
	ID          string
	URL         string
	Destination string // directory the media file is written to
	Format      FormatChoice
	CreatedAt   time.Time
}

// NewDownloadRequest validates the form input and builds a request.
// The URL is trimmed; an empty destination falls back to the home directory.
func NewDownloadRequest(rawURL, destination string, format FormatChoice) (DownloadRequest, error) {
	url := strings.TrimSpace(rawURL)
	if url == "" {
		return DownloadRequest{}, ErrEmptyURL
	}

	if !format.Valid() {
		return DownloadRequest{}, fmt.Errorf("invalid format choice: %s", format)
	}

	if strings.TrimSpace(destination) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DownloadRequest{}, fmt.Errorf("resolve home directory: %w", err)
		}
		destination = home
	}

	return DownloadRequest{
		ID:          generateRequestID(),
		URL:         url,
		Destination: destination,
		Format:      format,
		CreatedAt:   time.Now(),
	}, nil
}

// generateRequestID returns a time-ordered unique ID
func generateRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(RequestIDPrefix+"%d", time.Now().UnixNano())
	}
	return RequestIDPrefix + id.String()
}
