package browser

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Theme is the table browser look: teal accents over a neutral surface.
type Theme struct{}

var _ fyne.Theme = (*Theme)(nil)

func (m Theme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if variant == theme.VariantLight {
		switch name {
		case theme.ColorNameBackground:
			return color.NRGBA{R: 0xfa, G: 0xfa, B: 0xf8, A: 0xff}
		case theme.ColorNameButton:
			return color.NRGBA{R: 0x00, G: 0x89, B: 0x7b, A: 0xff}
		case theme.ColorNamePrimary:
			return color.NRGBA{R: 0x00, G: 0x89, B: 0x7b, A: 0xff}
		case theme.ColorNameHover:
			return color.NRGBA{R: 0xb2, G: 0xdf, B: 0xdb, A: 0xff}
		case theme.ColorNameFocus:
			return color.NRGBA{R: 0x00, G: 0x69, B: 0x5c, A: 0xff}
		case theme.ColorNameForeground:
			return color.NRGBA{R: 0x1f, G: 0x26, B: 0x24, A: 0xff}
		case theme.ColorNameInputBackground:
			return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		case theme.ColorNameSelection:
			return color.NRGBA{R: 0xcc, G: 0xe8, B: 0xe4, A: 0xff}
		}
	} else {
		switch name {
		case theme.ColorNameBackground:
			return color.NRGBA{R: 0x16, G: 0x1b, B: 0x1a, A: 0xff}
		case theme.ColorNameButton:
			return color.NRGBA{R: 0x26, G: 0xa6, B: 0x9a, A: 0xff}
		case theme.ColorNamePrimary:
			return color.NRGBA{R: 0x26, G: 0xa6, B: 0x9a, A: 0xff}
		case theme.ColorNameHover:
			return color.NRGBA{R: 0x2f, G: 0x45, B: 0x42, A: 0xff}
		case theme.ColorNameFocus:
			return color.NRGBA{R: 0x4d, G: 0xb6, B: 0xac, A: 0xff}
		case theme.ColorNameForeground:
			return color.NRGBA{R: 0xe4, G: 0xe8, B: 0xe7, A: 0xff}
		case theme.ColorNameInputBackground:
			return color.NRGBA{R: 0x22, G: 0x29, B: 0x28, A: 0xff}
		case theme.ColorNameSelection:
			return color.NRGBA{R: 0x0f, G: 0x52, B: 0x4b, A: 0xff}
		}
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (m Theme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (m Theme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (m Theme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 6
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameSeparatorThickness:
		return 1
	}
	return theme.DefaultTheme().Size(name)
}
