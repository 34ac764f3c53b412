package theme

import (
	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/layout"
)

// ButtonThemeData defines default styling for Button widgets.
type ButtonThemeData struct {
	// BackgroundColor is the idle fill.
	BackgroundColor graphics.Color
	// HoverColor is the fill while the pointer is over the button.
	HoverColor graphics.Color
	// ActiveColor is the fill while pressed and hovered.
	ActiveColor graphics.Color
	// DisabledColor is the fill when disabled.
	DisabledColor graphics.Color
	// DisabledOverlay is screened over the content when disabled.
	DisabledOverlay graphics.Color
	// ForegroundColor is the default label color.
	ForegroundColor graphics.Color
	// Padding is the space between the border and the content.
	Padding layout.EdgeInsets
	// BorderRadius is the corner radius.
	BorderRadius float64
	// PressedOffset is the downward shift applied while pressed.
	PressedOffset float64
	// FontSize is the default label font size.
	FontSize float64
}

// DefaultButtonTheme returns ButtonThemeData derived from a ColorScheme.
func DefaultButtonTheme(colors ColorScheme) ButtonThemeData {
	return ButtonThemeData{
		BackgroundColor: colors.Primary,
		HoverColor:      lighten(colors.Primary, 0.12),
		ActiveColor:     darken(colors.Primary, 0.16),
		DisabledColor:   colors.SurfaceVariant,
		DisabledOverlay: graphics.ColorGray.WithAlpha(0.4),
		ForegroundColor: colors.OnPrimary,
		Padding:         layout.EdgeInsetsSymmetric(24, 14),
		BorderRadius:    8,
		PressedOffset:   1,
		FontSize:        16,
	}
}

func lighten(c graphics.Color, amount float64) graphics.Color {
	r, g, b, a := c.Components()
	up := func(v uint8) uint8 { return v + uint8(float64(255-v)*amount) }
	return graphics.RGBA8(up(r), up(g), up(b), a)
}

func darken(c graphics.Color, amount float64) graphics.Color {
	r, g, b, a := c.Components()
	down := func(v uint8) uint8 { return v - uint8(float64(v)*amount) }
	return graphics.RGBA8(down(r), down(g), down(b), a)
}
