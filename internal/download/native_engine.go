package download

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ytget/ytdlp/errs"
	"github.com/ytget/ytdlp/types"
	"github.com/ytget/ytdlp/v2"
	"github.com/ytget/ytdlp/v2/client"
	"go.uber.org/zap"

	"github.com/ytget/quickdl/internal/transcode"
)

// NativeEngineName identifies the pure Go engine in logs
const NativeEngineName = "native"

// Temporary file naming and fallback title
const (
	TempFilePrefix   = ".quickdl-"
	TempFileSuffix   = ".part"
	DefaultExtension = ".mp4"
	FallbackTitle    = "download"
)

// Retry backoff between attempts of one request
const (
	RetryInitialBackoff = 500 * time.Millisecond
	RetryMaxBackoff     = 5 * time.Second
)

// videoShare is the progress share of the video stream in a merged download
// when stream sizes are unknown
const videoShare = 0.8

// NativeConfig configures the HTTP client used by the native engine.
// Retries counts extra attempts after the first; an empty UserAgent keeps
// the library's browser user agent.
type NativeConfig struct {
	Timeout   time.Duration
	Retries   int
	UserAgent string
}

// mediaClient is the part of the extraction library the engine drives
type mediaClient interface {
	Resolve(ctx context.Context, url string) (*ytdlp.VideoInfo, error)
	Fetch(ctx context.Context, url string, itag int, path string, onProgress func(ytdlp.Progress)) error
}

// NativeEngine downloads with github.com/ytget/ytdlp/v2 and uses ffmpeg for
// merging and audio extraction, since the library does not post-process.
type NativeEngine struct {
	cfg        NativeConfig
	media      mediaClient
	transcoder transcode.Transcoder
	backoff    time.Duration
	logger     *zap.Logger
}

// NewNativeEngine creates the engine. A nil transcoder disables merging and
// audio extraction.
func NewNativeEngine(cfg NativeConfig, transcoder transcode.Transcoder, logger *zap.Logger) *NativeEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NativeEngine{
		cfg:        cfg,
		media:      libraryClient{http: newHTTPClient(cfg)},
		transcoder: transcoder,
		backoff:    RetryInitialBackoff,
		logger:     logger,
	}
}

// Name returns the engine name
func (e *NativeEngine) Name() string { return NativeEngineName }

// Download resolves the stream list, fetches the streams the format choice
// needs into temporary files inside the destination and then renames, merges
// or transcodes them to "<title><ext>".
func (e *NativeEngine) Download(ctx context.Context, url string, opts Options, progress ProgressFunc) error {
	var info *ytdlp.VideoInfo
	err := e.retry(ctx, "resolve", func() error {
		var err error
		info, err = e.media.Resolve(ctx, url)
		return err
	})
	if err != nil {
		return err
	}

	plan, err := selectStreams(info.Formats, opts.Format, e.transcoder != nil)
	if err != nil {
		return fmt.Errorf("%w for %q", err, opts.Format)
	}
	if opts.ExtractAudio && e.transcoder == nil {
		return errors.New("audio extraction requires ffmpeg")
	}

	e.logger.Debug("streams selected",
		zap.Int("itag", plan.primary.Itag),
		zap.Bool("merge", plan.merged()),
		zap.String("ext", plan.ext),
	)

	primaryPath := e.tempPath(opts.Destination)
	defer os.Remove(primaryPath)

	share := 1.0
	if plan.merged() {
		share = videoShareOf(plan)
	}
	if err := e.fetch(ctx, url, plan.primary, primaryPath, progress, 0, share); err != nil {
		return err
	}

	finalPath := filepath.Join(opts.Destination, SanitizeFilename(info.Title)+plan.ext)

	switch {
	case plan.merged():
		audioPath := e.tempPath(opts.Destination)
		defer os.Remove(audioPath)
		if err := e.fetch(ctx, url, *plan.audio, audioPath, progress, share, 1-share); err != nil {
			return err
		}
		e.logger.Debug("merging streams", zap.String("output", finalPath))
		if err := e.transcoder.Merge(ctx, primaryPath, audioPath, finalPath, postProcessingRelay(progress)); err != nil {
			return fmt.Errorf("merging streams failed: %w", err)
		}
		return nil

	case opts.ExtractAudio:
		audioPath, err := transcode.AudioOutputPath(finalPath, opts.AudioCodec)
		if err != nil {
			return err
		}
		e.logger.Debug("extracting audio", zap.String("input", primaryPath), zap.String("output", audioPath))
		if err := e.transcoder.ToAudio(ctx, primaryPath, audioPath, opts.AudioCodec, opts.AudioQuality, postProcessingRelay(progress)); err != nil {
			return fmt.Errorf("audio extraction failed: %w", err)
		}
		return nil
	}

	if err := os.Rename(primaryPath, finalPath); err != nil {
		return fmt.Errorf("failed to move download into place: %w", err)
	}
	return nil
}

// fetch downloads one stream, mapping its progress onto [offset, offset+share)
// of the overall bar
func (e *NativeEngine) fetch(ctx context.Context, url string, f types.Format, path string, progress ProgressFunc, offset, share float64) error {
	var onProgress func(ytdlp.Progress)
	if progress != nil {
		onProgress = func(p ytdlp.Progress) {
			sample := ProgressSample{
				Status:      StatusDownloading,
				PercentText: fmt.Sprintf("%.1f%%", offset*100+p.Percent*share),
			}
			if share == 1 {
				sample.DownloadedBytes = p.DownloadedSize
				sample.TotalBytes = p.TotalSize
			}
			progress(sample)
		}
	}
	return e.retry(ctx, fmt.Sprintf("itag %d", f.Itag), func() error {
		return e.media.Fetch(ctx, url, f.Itag, path, onProgress)
	})
}

// retry runs fn up to 1+Retries times with doubling backoff. Cancellation and
// errors that a new attempt cannot fix end the loop early.
func (e *NativeEngine) retry(ctx context.Context, op string, fn func() error) error {
	attempts := e.cfg.Retries + 1
	if attempts < 1 {
		attempts = 1
	}
	backoff := e.backoff

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if permanent(err) || attempt == attempts {
			break
		}

		e.logger.Warn("attempt failed, retrying",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > RetryMaxBackoff {
			backoff = RetryMaxBackoff
		}
	}
	return err
}

// permanent reports errors that describe the video rather than the transfer
func permanent(err error) bool {
	for _, target := range []error{
		errs.ErrVideoUnavailable,
		errs.ErrPrivate,
		errs.ErrAgeRestricted,
		errs.ErrGeoBlocked,
		ErrNoSuitableStream,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (e *NativeEngine) tempPath(dir string) string {
	return filepath.Join(dir, TempFilePrefix+uuid.NewString()+TempFileSuffix)
}

// videoShareOf weighs the video stream by its size when both sizes are known
func videoShareOf(plan streamPlan) float64 {
	if plan.audio != nil && plan.primary.Size > 0 && plan.audio.Size > 0 {
		return float64(plan.primary.Size) / float64(plan.primary.Size+plan.audio.Size)
	}
	return videoShare
}

// postProcessingRelay forwards ffmpeg progress as post-processing samples
func postProcessingRelay(progress ProgressFunc) func(float64) {
	if progress == nil {
		return nil
	}
	return func(percent float64) {
		progress(ProgressSample{
			Status:      StatusPostProcessing,
			PercentText: fmt.Sprintf("%.1f%%", percent),
		})
	}
}

// libraryClient fetches single streams by itag through the library
type libraryClient struct {
	http *http.Client
}

func (c libraryClient) Resolve(ctx context.Context, url string) (*ytdlp.VideoInfo, error) {
	_, info, err := ytdlp.New().WithHTTPClient(c.http).ResolveURL(ctx, url)
	return info, err
}

func (c libraryClient) Fetch(ctx context.Context, url string, itag int, path string, onProgress func(ytdlp.Progress)) error {
	d := ytdlp.New().
		WithHTTPClient(c.http).
		WithFormat(fmt.Sprintf("itag=%d", itag), "").
		WithOutputPath(path)
	if onProgress != nil {
		d = d.WithProgress(onProgress)
	}
	_, err := d.Download(ctx, url)
	return err
}

// newHTTPClient builds the library's tuned client and applies the configured
// user agent on top of the library's own header
func newHTTPClient(cfg NativeConfig) *http.Client {
	c := client.NewWith(client.Config{Timeout: cfg.Timeout})
	hc := c.HTTPClient
	if cfg.UserAgent == "" {
		return hc
	}
	if tr, ok := hc.Transport.(*http.Transport); ok {
		// The library only disables HTTP/2 on a bare *http.Transport
		tr.ForceAttemptHTTP2 = false
	}
	hc.Transport = &userAgentTransport{base: hc.Transport, userAgent: cfg.UserAgent}
	return hc
}

// userAgentTransport overrides the User-Agent header of every request
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(req)
}

// SanitizeFilename replaces characters that are invalid in file names on common platforms
func SanitizeFilename(title string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_",
		"\n", " ", "\r", " ", "\t", " ",
	)
	name := strings.TrimSpace(replacer.Replace(title))
	name = strings.Trim(name, ".")
	if name == "" {
		return FallbackTitle
	}
	return name
}
