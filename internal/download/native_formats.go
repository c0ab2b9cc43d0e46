package download

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/ytget/ytdlp/types"
)

// ErrNoSuitableStream is returned when no listed format matches the format choice
var ErrNoSuitableStream = errors.New("no suitable stream")

// Container extensions for selected streams
const (
	ExtMP4  = ".mp4"
	ExtM4A  = ".m4a"
	ExtWebM = ".webm"
	ExtMKV  = ".mkv"
)

// streamKind classifies a format by what it carries
type streamKind int

const (
	kindUnknown streamKind = iota
	kindProgressive
	kindVideoOnly
	kindAudioOnly
)

// audioCodecPrefixes are the codec tags that mark a video/* format as carrying audio
var audioCodecPrefixes = []string{"mp4a", "opus", "vorbis", "ac-3", "ec-3", "flac"}

var heightPattern = regexp.MustCompile(`([0-9]{3,4})p`)

// streamPlan lists the itags to fetch for one download
type streamPlan struct {
	primary types.Format
	// audio is merged into primary when set
	audio *types.Format
	ext   string
}

// merged reports whether the plan needs an ffmpeg merge step
func (p streamPlan) merged() bool { return p.audio != nil }

// selectStreams picks streams from formats for the given yt-dlp style selector.
// canMerge tells whether separate video and audio streams may be combined.
func selectStreams(formats []types.Format, selector string, canMerge bool) (streamPlan, error) {
	var bestVideo, bestAudio, bestProgressive *types.Format
	for i := range formats {
		f := &formats[i]
		switch classifyFormat(*f) {
		case kindVideoOnly:
			if bestVideo == nil || betterVideo(*f, *bestVideo) {
				bestVideo = f
			}
		case kindAudioOnly:
			if bestAudio == nil || betterAudio(*f, *bestAudio) {
				bestAudio = f
			}
		case kindProgressive:
			if bestProgressive == nil || betterVideo(*f, *bestProgressive) {
				bestProgressive = f
			}
		}
	}

	switch selector {
	case FormatSelectorVideo:
		if bestVideo == nil {
			return streamPlan{}, ErrNoSuitableStream
		}
		return streamPlan{primary: *bestVideo, ext: containerExt(*bestVideo)}, nil

	case FormatSelectorAudio:
		switch {
		case bestAudio != nil:
			return streamPlan{primary: *bestAudio, ext: containerExt(*bestAudio)}, nil
		case bestProgressive != nil:
			return streamPlan{primary: *bestProgressive, ext: containerExt(*bestProgressive)}, nil
		}
		return streamPlan{}, ErrNoSuitableStream

	default:
		if canMerge && bestVideo != nil && bestAudio != nil {
			audio := matchingAudio(formats, *bestVideo, *bestAudio)
			return streamPlan{primary: *bestVideo, audio: &audio, ext: mergedExt(*bestVideo, audio)}, nil
		}
		if bestProgressive == nil {
			return streamPlan{}, ErrNoSuitableStream
		}
		return streamPlan{primary: *bestProgressive, ext: containerExt(*bestProgressive)}, nil
	}
}

// classifyFormat splits formats by MIME type and codec list
func classifyFormat(f types.Format) streamKind {
	mime := strings.ToLower(f.MimeType)
	switch {
	case strings.HasPrefix(mime, "audio/"):
		return kindAudioOnly
	case strings.HasPrefix(mime, "video/"):
		if hasAudioCodec(mime) {
			return kindProgressive
		}
		return kindVideoOnly
	}
	return kindUnknown
}

func hasAudioCodec(mime string) bool {
	i := strings.Index(mime, "codecs=")
	if i < 0 {
		return false
	}
	codecs := mime[i:]
	for _, prefix := range audioCodecPrefixes {
		if strings.Contains(codecs, prefix) {
			return true
		}
	}
	return false
}

// betterVideo orders by height, then mp4 over other containers, then bitrate
func betterVideo(a, b types.Format) bool {
	if ha, hb := formatHeight(a), formatHeight(b); ha != hb {
		return ha > hb
	}
	if ma, mb := mimeSubtype(a) == "mp4", mimeSubtype(b) == "mp4"; ma != mb {
		return ma
	}
	return a.Bitrate > b.Bitrate
}

func betterAudio(a, b types.Format) bool {
	if a.Bitrate != b.Bitrate {
		return a.Bitrate > b.Bitrate
	}
	return mimeSubtype(a) == "mp4" && mimeSubtype(b) != "mp4"
}

// matchingAudio prefers an audio stream in the video's container so the
// merge can copy both streams into it
func matchingAudio(formats []types.Format, video, fallback types.Format) types.Format {
	want := mimeSubtype(video)
	var best *types.Format
	for i := range formats {
		f := &formats[i]
		if classifyFormat(*f) != kindAudioOnly || mimeSubtype(*f) != want {
			continue
		}
		if best == nil || betterAudio(*f, *best) {
			best = f
		}
	}
	if best == nil {
		return fallback
	}
	return *best
}

func formatHeight(f types.Format) int {
	m := heightPattern.FindStringSubmatch(f.Quality)
	if len(m) < 2 {
		return 0
	}
	h, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return h
}

// mimeSubtype returns "mp4" for "video/mp4; codecs=..."
func mimeSubtype(f types.Format) string {
	mime := strings.ToLower(f.MimeType)
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	if i := strings.Index(mime, "/"); i >= 0 {
		return strings.TrimSpace(mime[i+1:])
	}
	return ""
}

// containerExt maps a single stream to the extension it is saved under
func containerExt(f types.Format) string {
	switch mimeSubtype(f) {
	case "webm":
		return ExtWebM
	case "mp4":
		if classifyFormat(f) == kindAudioOnly {
			return ExtM4A
		}
		return ExtMP4
	}
	return DefaultExtension
}

func mergedExt(video, audio types.Format) string {
	vs, as := mimeSubtype(video), mimeSubtype(audio)
	switch {
	case vs == "mp4" && as == "mp4":
		return ExtMP4
	case vs == "webm" && as == "webm":
		return ExtWebM
	}
	return ExtMKV
}
