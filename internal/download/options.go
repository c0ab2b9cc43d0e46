package download

import (
	"path/filepath"

	"github.com/ytget/quickdl/internal/model"
)

// yt-dlp format selectors for each format choice
const (
	FormatSelectorMuxed = "bestvideo+bestaudio/best"
	FormatSelectorAudio = "bestaudio/best"
	FormatSelectorVideo = "bestvideo"
)

// Fixed audio extraction target
const (
	AudioCodec   = "mp3"
	AudioQuality = "192"
)

// FilenameTemplate names output files after the media title and extension
const FilenameTemplate = "%(title)s.%(ext)s"

// Options is the engine-facing translation of a DownloadRequest
type Options struct {
	Destination    string
	OutputTemplate string
	Format         string
	ExtractAudio   bool
	AudioCodec     string
	AudioQuality   string
}

// BuildOptions maps a request to engine options. The mapping is total over
// model.FormatChoice; unknown values fall back to the muxed selector.
func BuildOptions(req model.DownloadRequest) Options {
	opts := Options{
		Destination:    req.Destination,
		OutputTemplate: filepath.Join(req.Destination, FilenameTemplate),
	}

	switch req.Format {
	case model.FormatAudioOnly:
		opts.Format = FormatSelectorAudio
		opts.ExtractAudio = true
		opts.AudioCodec = AudioCodec
		opts.AudioQuality = AudioQuality
	case model.FormatVideoOnly:
		opts.Format = FormatSelectorVideo
	default:
		opts.Format = FormatSelectorMuxed
	}

	return opts
}
