package download

import (
	"context"
	"time"

	"github.com/ytget/quickdl/internal/model"
)

// Progress statuses reported by engines
const (
	StatusStarting       = "starting"
	StatusDownloading    = "downloading"
	StatusPostProcessing = "post_processing"
	StatusFinished       = "finished"
	StatusError          = "error"
)

// ProgressSample is a raw status record as reported by an engine
type ProgressSample struct {
	Status          string
	PercentText     string // e.g. " 45.2%"
	DownloadedBytes int64
	TotalBytes      int64
	ETA             time.Duration
}

// ProgressFunc receives engine samples; it may be called from any goroutine
type ProgressFunc func(ProgressSample)

// Engine performs the blocking download. It must return a non-nil error on any failure.
type Engine interface {
	Name() string
	Download(ctx context.Context, url string, opts Options, progress ProgressFunc) error
}

// Starter starts a download and returns its message stream
type Starter interface {
	Start(ctx context.Context, req model.DownloadRequest) <-chan Message
}

// Message is posted by the worker to the form: ProgressMessage or ResultMessage
type Message interface {
	requestID() string
}

// ProgressMessage carries a parsed progress sample
type ProgressMessage struct {
	RequestID string
	Progress  model.Progress
}

// ResultMessage is the terminal message of a download
type ResultMessage struct {
	RequestID string
	Result    model.Result
}

func (m ProgressMessage) requestID() string { return m.RequestID }
func (m ResultMessage) requestID() string   { return m.RequestID }
