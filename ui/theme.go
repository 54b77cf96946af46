package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Dimensions
const (
	CellSize     float32 = 70
	CellGap      float32 = 4
	CornerRadius float32 = 8
	FontSizeCell float32 = 26
	FontSizeFind float32 = 40
)

var (
	ClickedColor = color.NRGBA{R: 0x2e, G: 0x9e, B: 0x5b, A: 0xff}
	WrongColor   = color.NRGBA{R: 0xd6, G: 0x3b, B: 0x3b, A: 0xff}
	OverlayColor = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xb0}
)

// CustomTheme pins the default theme to a light or dark variant regardless
// of the system preference.
type CustomTheme struct {
	fyne.Theme
	dark bool
}

// NewCustomTheme creates a new instance of the custom theme.
func NewCustomTheme(dark bool) fyne.Theme {
	return &CustomTheme{Theme: theme.DefaultTheme(), dark: dark}
}

// Color returns the color for the forced variant.
func (t *CustomTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	if t.dark {
		return t.Theme.Color(name, theme.VariantDark)
	}
	return t.Theme.Color(name, theme.VariantLight)
}

// Dark reports the forced variant.
func (t *CustomTheme) Dark() bool {
	return t.dark
}
