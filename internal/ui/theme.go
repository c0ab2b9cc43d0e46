package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// swatch holds one color per theme variant
type swatch struct {
	light color.Color
	dark  color.Color
}

func solid(r, g, b uint8) color.Color {
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// formPalette follows the form's flat look: slate labels, light inputs and a
// red primary action
var formPalette = map[fyne.ThemeColorName]swatch{
	theme.ColorNamePrimary:         {solid(0xe7, 0x4c, 0x3c), solid(0xe7, 0x4c, 0x3c)},
	theme.ColorNameHover:           {color.NRGBA{R: 0xc0, G: 0x39, B: 0x2b, A: 0x40}, color.NRGBA{R: 0xc0, G: 0x39, B: 0x2b, A: 0x60}},
	theme.ColorNameSuccess:         {solid(0x2e, 0xa0, 0x43), solid(0x2e, 0xa0, 0x43)},
	theme.ColorNameError:           {solid(0xc0, 0x39, 0x2b), solid(0xe7, 0x4c, 0x3c)},
	theme.ColorNameWarning:         {solid(0xf3, 0x9c, 0x12), solid(0xf3, 0x9c, 0x12)},
	theme.ColorNameBackground:      {solid(0xff, 0xff, 0xff), solid(0x1e, 0x1f, 0x22)},
	theme.ColorNameForeground:      {solid(0x2c, 0x3e, 0x50), solid(0xec, 0xf0, 0xf1)},
	theme.ColorNameInputBackground: {solid(0xf9, 0xf9, 0xf9), solid(0x2a, 0x2b, 0x2f)},
	theme.ColorNameInputBorder:     {solid(0xdc, 0xdd, 0xe1), solid(0x4a, 0x4b, 0x50)},
	theme.ColorNameButton:          {solid(0x7f, 0x8c, 0x8d), solid(0x5d, 0x6d, 0x7e)},
}

// formSizes tightens spacing so the form fits the default window
var formSizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNamePadding:         4,
	theme.SizeNameInnerPadding:    7,
	theme.SizeNameLineSpacing:     3,
	theme.SizeNameText:            13,
	theme.SizeNameHeadingText:     17,
	theme.SizeNameSubHeadingText:  14,
	theme.SizeNameInputRadius:     6,
	theme.SizeNameSelectionRadius: 4,
}

// CompactTheme is the application theme; anything not listed in the palette
// or size tables comes from the default theme
type CompactTheme struct{}

// NewCompactTheme creates the application theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if s, ok := formPalette[name]; ok {
		if variant == theme.VariantDark {
			return s.dark
		}
		return s.light
	}
	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	if size, ok := formSizes[name]; ok {
		return size
	}
	return theme.DefaultTheme().Size(name)
}
