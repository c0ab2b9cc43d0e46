package transcode

import "context"

// Transcoder post-processes downloaded media files with ffmpeg.
type Transcoder interface {
	// ToAudio converts a downloaded media file into an audio-only file.
	ToAudio(ctx context.Context, inputPath, outputPath, codec, quality string, onProgress func(percent float64)) error
	// Merge muxes separate video and audio files into one container.
	Merge(ctx context.Context, videoPath, audioPath, outputPath string, onProgress func(percent float64)) error
}
