package download

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ytget/quickdl/internal/model"
	"github.com/ytget/quickdl/internal/platform"
)

// SuccessMessage is shown when a download finishes without error
const SuccessMessage = "Download completed successfully!"

// ProgressBuffer bounds queued progress messages; extra samples are dropped
const ProgressBuffer = 16

// Terminal errors produced by the worker itself
var (
	ErrCancelled = errors.New("download cancelled")
	ErrTimedOut  = errors.New("download timed out")
)

// Worker runs one engine download per Start call
type Worker struct {
	engine  Engine
	logger  *zap.Logger
	timeout time.Duration
}

// WorkerOption configures a Worker
type WorkerOption func(*Worker)

// WithTimeout bounds every download; zero disables the limit
func WithTimeout(d time.Duration) WorkerOption {
	return func(w *Worker) {
		w.timeout = d
	}
}

// WithLogger sets the worker logger
func WithLogger(logger *zap.Logger) WorkerOption {
	return func(w *Worker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWorker creates a worker driving engine
func NewWorker(engine Engine, opts ...WorkerOption) *Worker {
	w := &Worker{
		engine: engine,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start runs req in a new goroutine and returns immediately. The returned
// channel yields zero or more ProgressMessage values, then exactly one
// ResultMessage, and is then closed.
func (w *Worker) Start(ctx context.Context, req model.DownloadRequest) <-chan Message {
	box := &outbox{ch: make(chan Message, ProgressBuffer)}
	go w.run(ctx, req, box)
	return box.ch
}

// run executes the download and always posts the terminal message
func (w *Worker) run(ctx context.Context, req model.DownloadRequest, box *outbox) {
	log := w.logger.With(
		zap.String("request_id", req.ID),
		zap.String("url", req.URL),
		zap.Stringer("format", req.Format),
		zap.String("engine", w.engine.Name()),
	)

	started := time.Now()
	log.Info("download started", zap.String("destination", req.Destination))

	result := w.execute(ctx, req, box, log)

	if result.Success {
		log.Info("download finished", zap.Duration("elapsed", time.Since(started)))
	} else {
		log.Warn("download failed", zap.Duration("elapsed", time.Since(started)), zap.String("error", result.Message))
	}

	box.finish(ResultMessage{RequestID: req.ID, Result: result})
}

// execute converts every outcome, including panics, into a Result
func (w *Worker) execute(ctx context.Context, req model.DownloadRequest, box *outbox, log *zap.Logger) (result model.Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("engine panicked", zap.Any("panic", r))
			result = model.Failed(fmt.Sprintf("unexpected engine failure: %v", r))
		}
	}()

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	if err := platform.CheckWritableDir(req.Destination); err != nil {
		return model.Failed(err.Error())
	}

	opts := BuildOptions(req)
	log.Debug("resolved options",
		zap.String("format_selector", opts.Format),
		zap.Bool("extract_audio", opts.ExtractAudio),
		zap.String("output", opts.OutputTemplate),
	)

	err := w.engine.Download(ctx, req.URL, opts, w.progressRelay(req.ID, box, log))
	if err == nil {
		return model.Succeeded(SuccessMessage)
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return model.Failed(fmt.Sprintf("%s after %s", ErrTimedOut, w.timeout))
	case errors.Is(ctx.Err(), context.Canceled):
		return model.Failed(ErrCancelled.Error())
	default:
		return model.Failed(err.Error())
	}
}

// progressRelay parses engine samples and forwards them without blocking the engine
func (w *Worker) progressRelay(requestID string, box *outbox, log *zap.Logger) ProgressFunc {
	return func(sample ProgressSample) {
		if sample.Status == StatusPostProcessing {
			log.Debug("post-processing", zap.String("percent", sample.PercentText))
			return
		}
		progress, ok := ToProgress(sample)
		if !ok {
			return
		}
		if !box.offer(ProgressMessage{RequestID: requestID, Progress: progress}) {
			log.Debug("progress sample dropped", zap.Float64("percent", progress.Percent))
		}
	}
}

// ToProgress converts a downloading sample into model.Progress.
// Samples in other states or with unparseable percent text are rejected.
func ToProgress(sample ProgressSample) (model.Progress, bool) {
	if sample.Status != StatusDownloading {
		return model.Progress{}, false
	}

	percent, ok := model.ParsePercent(sample.PercentText)
	if !ok {
		return model.Progress{}, false
	}

	eta := -1
	if sample.ETA > 0 {
		eta = int(sample.ETA.Seconds())
	}

	return model.Progress{
		Percent:         percent,
		DownloadedBytes: sample.DownloadedBytes,
		TotalBytes:      sample.TotalBytes,
		ETASec:          eta,
	}, true
}

// outbox guards the message channel against sends after the terminal message
type outbox struct {
	mu     sync.Mutex
	ch     chan Message
	closed bool
}

// offer sends msg if there is room and the outbox is still open
func (o *outbox) offer(msg Message) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return false
	}

	select {
	case o.ch <- msg:
		return true
	default:
		return false
	}
}

// finish delivers the terminal message and closes the channel
func (o *outbox) finish(msg Message) {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()

	o.ch <- msg
	close(o.ch)
}
