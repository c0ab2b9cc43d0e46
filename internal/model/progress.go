package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Progress is a parsed transfer sample relayed from the worker to the form
type Progress struct {
	Percent         float64 // 0 to 100
	DownloadedBytes int64
	TotalBytes      int64 // 0 if unknown
	ETASec          int   // -1 if unknown
}

// ParsePercent converts engine percent text such as " 45.2%" into a value in [0, 100].
// ok is false for text that does not hold a finite number.
func ParsePercent(text string) (value float64, ok bool) {
	s := strings.TrimSpace(text)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return ClampPercent(v), true
}

// ClampPercent bounds v to [0, 100]
func ClampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (p Progress) GetETAString() string {
	if p.ETASec <= 0 {
		return "—"
	}

	hours := p.ETASec / 3600
	minutes := (p.ETASec % 3600) / 60
	seconds := p.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
