package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// External executables used by the download engines
const (
	YTDLPCommand   = "yt-dlp"
	FFmpegCommand  = "ffmpeg"
	FFprobeCommand = "ffprobe"
)

// ResolveTool returns configured if set, otherwise looks name up in PATH
func ResolveTool(configured, name string) (string, error) {
	if configured != "" {
		path, err := exec.LookPath(configured)
		if err != nil {
			return "", fmt.Errorf("%s not found at %s: %w", name, configured, err)
		}
		return path, nil
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", name, err)
	}
	return path, nil
}

// ProbeFor returns the ffprobe path that sits next to the given ffmpeg path,
// or plain ffprobe from PATH.
func ProbeFor(ffmpegPath string) string {
	if ffmpegPath == "" || ffmpegPath == FFmpegCommand {
		return FFprobeCommand
	}
	dir, base := filepath.Split(ffmpegPath)
	probe := strings.Replace(base, FFmpegCommand, FFprobeCommand, 1)
	if probe == base {
		return FFprobeCommand
	}
	return filepath.Join(dir, probe)
}
