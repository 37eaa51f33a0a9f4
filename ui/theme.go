package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CustomTheme overrides the application fonts. Either resource may be nil
// when its asset failed to load; lookups then fall back per style, so a
// partial asset set still renders.
type CustomTheme struct {
	fyne.Theme
	medium fyne.Resource
	bold   fyne.Resource
}

// NewCustomTheme creates a theme using the given font resources.
func NewCustomTheme(mediumFont, boldFont fyne.Resource) fyne.Theme {
	return &CustomTheme{Theme: theme.DefaultTheme(), medium: mediumFont, bold: boldFont}
}

// Font returns the font for the given style, preferring the custom
// resources and degrading to the base theme when they are absent.
func (t *CustomTheme) Font(style fyne.TextStyle) fyne.Resource {
	if style.Bold && t.bold != nil {
		return t.bold
	}
	if t.medium != nil {
		return t.medium
	}
	return t.Theme.Font(style)
}
