package download

// Package download runs a single media download off the UI goroutine. The
// Worker resolves format options, drives an Engine (yt-dlp via
// github.com/lrstanley/go-ytdlp, or the pure Go github.com/ytget/ytdlp/v2),
// relays progress, and always emits exactly one terminal result.
