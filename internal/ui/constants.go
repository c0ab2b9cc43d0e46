package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconFolder   = "📁"
	IconLanguage = "🌐"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	SizeSeparator      = " / "
	PercentFormat      = "%.1f%%"
	ETAPrefix          = "ETA "
)

// Window sizing
const (
	WindowWidth  float32 = 500
	WindowHeight float32 = 380
)

// Progress bar range
const (
	ProgressMin = 0.0
	ProgressMax = 100.0
)
