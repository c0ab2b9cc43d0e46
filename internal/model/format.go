package model

import "fmt"

// FormatChoice is the closed set of output formats offered by the form
type FormatChoice int

const (
	// FormatMuxedBest downloads the best video and audio streams and muxes them
	FormatMuxedBest FormatChoice = iota
	// FormatAudioOnly downloads the best audio stream and converts it
	FormatAudioOnly
	// FormatVideoOnly downloads the best video stream without audio
	FormatVideoOnly
)

// AllFormatChoices returns the choices in the order they are shown in the selector
func AllFormatChoices() []FormatChoice {
	return []FormatChoice{FormatMuxedBest, FormatAudioOnly, FormatVideoOnly}
}

// Valid reports whether fc is one of the known choices
func (fc FormatChoice) Valid() bool {
	return fc >= FormatMuxedBest && fc <= FormatVideoOnly
}

// String returns a stable identifier used in logs and configuration
func (fc FormatChoice) String() string {
	switch fc {
	case FormatMuxedBest:
		return "muxed"
	case FormatAudioOnly:
		return "audio"
	case FormatVideoOnly:
		return "video"
	default:
		return fmt.Sprintf("FormatChoice(%d)", int(fc))
	}
}

// ParseFormatChoice maps an identifier produced by String back to a choice
func ParseFormatChoice(s string) (FormatChoice, error) {
	for _, fc := range AllFormatChoices() {
		if fc.String() == s {
			return fc, nil
		}
	}
	return FormatMuxedBest, fmt.Errorf("unknown format choice: %q", s)
}
