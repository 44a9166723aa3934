package appearance

import (
	"context"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const (
	ColorNameCardAccent  fyne.ThemeColorName = "cardAccent"
	ColorNameUnavailable fyne.ThemeColorName = "unavailable"
)

// themeColors holds the custom colors indexed by variant.
var themeColors = map[fyne.ThemeColorName][]color.Color{
	ColorNameCardAccent: { // purple
		theme.VariantDark:  color.NRGBA{206, 147, 216, 255},
		theme.VariantLight: color.NRGBA{156, 39, 176, 255},
	},
	ColorNameUnavailable: { // grey
		theme.VariantDark:  color.NRGBA{117, 117, 117, 255},
		theme.VariantLight: color.NRGBA{158, 158, 158, 255},
	},
}

// Theme is a Fyne theme which follows the dark mode of a [State].
type Theme struct {
	state *State
}

var _ fyne.Theme = (*Theme)(nil)

func NewTheme(s *State) *Theme {
	return &Theme{state: s}
}

// Variant returns the theme variant for the current state.
func (t *Theme) Variant() fyne.ThemeVariant {
	if t.state.DarkMode() {
		return theme.VariantDark
	}
	return theme.VariantLight
}

func (t *Theme) Color(c fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	v := t.Variant()
	switch c {
	case ColorNameCardAccent, ColorNameUnavailable:
		return themeColors[c][v]
	default:
		return theme.DefaultTheme().Color(c, v)
	}
}

func (*Theme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (*Theme) Icon(n fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(n)
}

func (*Theme) Size(s fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(s)
}

// Apply sets this theme for app and refreshes it whenever dark mode is switched.
func (t *Theme) Apply(app fyne.App) {
	app.Settings().SetTheme(t)
	t.state.Changed.AddListener(func(_ context.Context, _ bool) {
		fyne.Do(func() {
			app.Settings().SetTheme(t)
		})
	})
}
