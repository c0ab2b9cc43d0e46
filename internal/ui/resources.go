package ui

import (
	"fyne.io/fyne/v2"
)

const (
	AppIcon = "quickdl.png"
)

// LoadLogoResource loads the window icon from the working directory.
// A missing icon is not fatal; callers fall back to the toolkit default.
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}
