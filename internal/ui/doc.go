package ui

// Package ui contains the Fyne-based desktop form: URL entry, destination
// picker, format selector, progress bar and download trigger. Worker
// messages are applied on the UI goroutine. All UI strings are localized via
// Localization.
