package transcode

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ytget/quickdl/internal/platform"
)

// FFmpeg constants for audio extraction
const (
	QualitySuffix       = "k"
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
	ProgressPipeTarget  = "pipe:2"
	ProgressTimePrefix  = "out_time_us="
)

// ErrUnsupportedCodec is returned for codecs without a known ffmpeg encoder
var ErrUnsupportedCodec = errors.New("unsupported audio codec")

// audioEncoders maps the codec names accepted by the form options to ffmpeg encoders
var audioEncoders = map[string]string{
	"mp3":  "libmp3lame",
	"aac":  "aac",
	"m4a":  "aac",
	"opus": "libopus",
	"flac": "flac",
}

// audioExtensions maps codec names to output file extensions
var audioExtensions = map[string]string{
	"mp3":  ".mp3",
	"aac":  ".m4a",
	"m4a":  ".m4a",
	"opus": ".opus",
	"flac": ".flac",
}

// Service runs ffmpeg to extract and convert audio
type Service struct {
	ffmpegPath  string
	ffprobePath string
	logger      *zap.Logger
}

// NewService creates a transcoder using the given ffmpeg binary (PATH lookup if empty)
func NewService(ffmpegPath string, logger *zap.Logger) *Service {
	if ffmpegPath == "" {
		ffmpegPath = platform.FFmpegCommand
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ffmpegPath:  ffmpegPath,
		ffprobePath: platform.ProbeFor(ffmpegPath),
		logger:      logger,
	}
}

// AudioOutputPath replaces the extension of inputPath with the codec's extension
func AudioOutputPath(inputPath, codec string) (string, error) {
	ext, ok := audioExtensions[codec]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedCodec, codec)
	}
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ext, nil
}

// BuildAudioArgs builds the ffmpeg command arguments for audio extraction
func (s *Service) BuildAudioArgs(inputPath, outputPath, codec, quality string) ([]string, error) {
	encoder, ok := audioEncoders[codec]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCodec, codec)
	}

	args := []string{
		"-y",            // Overwrite output file
		"-i", inputPath, // Input file
		"-vn",           // Drop video
		"-c:a", encoder, // Audio encoder
	}
	if quality != "" && codec != "flac" {
		args = append(args, "-b:a", quality+QualitySuffix)
	}
	args = append(args,
		"-progress", ProgressPipeTarget, // Progress to stderr
		"-nostats",
		outputPath,
	)
	return args, nil
}

// BuildMergeArgs builds the ffmpeg arguments that copy the first video stream
// of videoPath and the first audio stream of audioPath into outputPath
func (s *Service) BuildMergeArgs(videoPath, audioPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", videoPath,
		"-i", audioPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c", "copy", // No re-encode
		"-progress", ProgressPipeTarget,
		"-nostats",
		outputPath,
	}
}

// ToAudio converts inputPath into outputPath. Partial output is removed on failure.
func (s *Service) ToAudio(ctx context.Context, inputPath, outputPath, codec, quality string, onProgress func(percent float64)) error {
	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file does not exist: %w", err)
	}

	args, err := s.BuildAudioArgs(inputPath, outputPath, codec, quality)
	if err != nil {
		return err
	}
	return s.run(ctx, args, inputPath, outputPath, onProgress)
}

// Merge muxes a video-only and an audio-only file into outputPath
func (s *Service) Merge(ctx context.Context, videoPath, audioPath, outputPath string, onProgress func(percent float64)) error {
	for _, in := range []string{videoPath, audioPath} {
		if _, err := os.Stat(in); err != nil {
			return fmt.Errorf("input file does not exist: %w", err)
		}
	}
	return s.run(ctx, s.BuildMergeArgs(videoPath, audioPath, outputPath), videoPath, outputPath, onProgress)
}

// run executes ffmpeg with args, reporting progress against the duration of
// durationSource
func (s *Service) run(ctx context.Context, args []string, durationSource, outputPath string, onProgress func(percent float64)) error {
	// Progress is best effort; a missing ffprobe only disables it
	duration, err := s.getDuration(ctx, durationSource)
	if err != nil {
		s.logger.Warn("could not determine media duration", zap.String("input", durationSource), zap.Error(err))
	}

	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	s.logger.Debug("ffmpeg started", zap.Strings("args", args))

	monitorProgress(stderr, duration, onProgress)

	if err := cmd.Wait(); err != nil {
		os.Remove(outputPath)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg failed: %w", err)
	}

	return nil
}

// getDuration gets the duration of a media file in seconds using ffprobe
func (s *Service) getDuration(ctx context.Context, filePath string) (float64, error) {
	cmd := exec.CommandContext(ctx, s.ffprobePath, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFormat, filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	return duration, nil
}

// monitorProgress reads ffmpeg -progress output until EOF
func monitorProgress(r io.Reader, totalDuration float64, onProgress func(percent float64)) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		percent, ok := parseProgressLine(scanner.Text(), totalDuration)
		if ok && onProgress != nil {
			onProgress(percent)
		}
	}
}

// parseProgressLine parses "out_time_us=123456" into a percentage of totalDuration
func parseProgressLine(line string, totalDuration float64) (float64, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ProgressTimePrefix) || totalDuration <= 0 {
		return 0, false
	}

	timeMicroseconds, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
	if err != nil {
		return 0, false
	}

	progress := float64(timeMicroseconds) / 1000000.0 / totalDuration
	if progress < 0 {
		progress = 0
	}
	if progress > 1.0 {
		progress = 1.0
	}
	return progress * 100, true
}
