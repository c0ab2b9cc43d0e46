package transcode

// Package transcode wraps ffmpeg for audio extraction when the selected
// download engine cannot post-process media itself.
