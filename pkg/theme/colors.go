package theme

import "github.com/go-drift/strata/pkg/graphics"

// ColorScheme is the palette widgets draw from.
type ColorScheme struct {
	Primary          graphics.Color
	OnPrimary        graphics.Color
	Surface          graphics.Color
	OnSurface        graphics.Color
	SurfaceVariant   graphics.Color
	OnSurfaceVariant graphics.Color
	Background       graphics.Color
	OnBackground     graphics.Color
}

// LightColorScheme returns the default light palette.
func LightColorScheme() ColorScheme {
	return ColorScheme{
		Primary:          graphics.RGB(33, 150, 243),
		OnPrimary:        graphics.ColorWhite,
		Surface:          graphics.ColorWhite,
		OnSurface:        graphics.RGB(28, 27, 31),
		SurfaceVariant:   graphics.RGB(224, 224, 224),
		OnSurfaceVariant: graphics.RGB(97, 97, 97),
		Background:       graphics.RGB(250, 250, 250),
		OnBackground:     graphics.RGB(28, 27, 31),
	}
}

// DarkColorScheme returns the default dark palette.
func DarkColorScheme() ColorScheme {
	return ColorScheme{
		Primary:          graphics.RGB(144, 202, 249),
		OnPrimary:        graphics.RGB(13, 71, 161),
		Surface:          graphics.RGB(30, 30, 30),
		OnSurface:        graphics.RGB(230, 225, 229),
		SurfaceVariant:   graphics.RGB(66, 66, 66),
		OnSurfaceVariant: graphics.RGB(189, 189, 189),
		Background:       graphics.RGB(18, 18, 18),
		OnBackground:     graphics.RGB(230, 225, 229),
	}
}

// TextTheme holds the text styles used by text widgets.
type TextTheme struct {
	Body  graphics.TextStyle
	Label graphics.TextStyle
}

// DefaultTextTheme returns text styles drawn in color.
func DefaultTextTheme(color graphics.Color) TextTheme {
	return TextTheme{
		Body:  graphics.TextStyle{Color: color, FontSize: 14},
		Label: graphics.TextStyle{Color: color, FontSize: 16},
	}
}
