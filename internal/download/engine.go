package download

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ytget/quickdl/internal/config"
	"github.com/ytget/quickdl/internal/platform"
	"github.com/ytget/quickdl/internal/transcode"
)

// NewEngine builds the engine selected in cfg. A configured executable that
// cannot be found is an error; a missing ffmpeg only disables audio extraction
// for the native engine, so it is logged instead.
func NewEngine(cfg *config.Config, logger *zap.Logger) (Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Engine {
	case config.EngineYTDLP:
		executable := cfg.YTDLP.Path
		if executable != "" {
			resolved, err := platform.ResolveTool(executable, platform.YTDLPCommand)
			if err != nil {
				return nil, err
			}
			executable = resolved
		}
		return NewYTDLPEngine(executable, cfg.YTDLP.AutoInstall, cfg.YTDLP.ProgressInterval, logger), nil
	case config.EngineNative:
		ffmpeg, err := platform.ResolveTool(cfg.Native.FFmpegPath, platform.FFmpegCommand)
		if err != nil {
			logger.Warn("ffmpeg unavailable, audio-only downloads will fail", zap.Error(err))
			ffmpeg = cfg.Native.FFmpegPath
		}
		native := NativeConfig{
			Timeout:   cfg.Native.RequestTimeout,
			Retries:   cfg.Native.Retries,
			UserAgent: cfg.Native.UserAgent,
		}
		return NewNativeEngine(native, transcode.NewService(ffmpeg, logger), logger), nil
	default:
		return nil, fmt.Errorf("unknown engine: %q", cfg.Engine)
	}
}
