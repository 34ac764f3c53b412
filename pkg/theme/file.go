package theme

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/go-drift/strata/pkg/errors"
	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/layout"
)

// File is the theme.toml document. Every field is optional; unset fields
// keep the value of the base theme selected by Brightness.
type File struct {
	Brightness string      `toml:"brightness"`
	Colors     ColorsFile  `toml:"colors"`
	Text       TextFile    `toml:"text"`
	Button     *ButtonFile `toml:"button"`
}

type ColorsFile struct {
	Primary          string `toml:"primary"`
	OnPrimary        string `toml:"on_primary"`
	Surface          string `toml:"surface"`
	OnSurface        string `toml:"on_surface"`
	SurfaceVariant   string `toml:"surface_variant"`
	OnSurfaceVariant string `toml:"on_surface_variant"`
	Background       string `toml:"background"`
	OnBackground     string `toml:"on_background"`
}

type TextFile struct {
	BodySize  float64 `toml:"body_size"`
	LabelSize float64 `toml:"label_size"`
}

type ButtonFile struct {
	Background    string    `toml:"background"`
	Hover         string    `toml:"hover"`
	Active        string    `toml:"active"`
	Disabled      string    `toml:"disabled"`
	Foreground    string    `toml:"foreground"`
	Padding       []float64 `toml:"padding"`
	Radius        *float64  `toml:"radius"`
	PressedOffset *float64  `toml:"pressed_offset"`
	FontSize      float64   `toml:"font_size"`
}

// Load reads and parses a theme.toml file.
func Load(path string) (*ThemeData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.Error{Op: "theme.Load", Kind: errors.KindConfig, Err: err}
	}
	t, err := Parse(data)
	if err != nil {
		return nil, &errors.Error{Op: "theme.Load", Kind: errors.KindConfig, Err: fmt.Errorf("%s: %w", path, err)}
	}
	return t, nil
}

// Parse decodes a theme.toml document.
func Parse(data []byte) (*ThemeData, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Theme()
}

// Theme applies the file on top of the base theme for its brightness.
func (f *File) Theme() (*ThemeData, error) {
	var brightness Brightness
	switch strings.ToLower(f.Brightness) {
	case "", "light":
		brightness = BrightnessLight
	case "dark":
		brightness = BrightnessDark
	default:
		return nil, fmt.Errorf("unknown brightness %q", f.Brightness)
	}
	t := ForBrightness(brightness)

	p := colorParser{}
	c := &t.ColorScheme
	p.set(&c.Primary, "colors.primary", f.Colors.Primary)
	p.set(&c.OnPrimary, "colors.on_primary", f.Colors.OnPrimary)
	p.set(&c.Surface, "colors.surface", f.Colors.Surface)
	p.set(&c.OnSurface, "colors.on_surface", f.Colors.OnSurface)
	p.set(&c.SurfaceVariant, "colors.surface_variant", f.Colors.SurfaceVariant)
	p.set(&c.OnSurfaceVariant, "colors.on_surface_variant", f.Colors.OnSurfaceVariant)
	p.set(&c.Background, "colors.background", f.Colors.Background)
	if f.Colors.OnBackground != "" {
		p.set(&c.OnBackground, "colors.on_background", f.Colors.OnBackground)
		t.TextTheme = DefaultTextTheme(c.OnBackground)
	}
	if f.Text.BodySize > 0 {
		t.TextTheme.Body.FontSize = f.Text.BodySize
	}
	if f.Text.LabelSize > 0 {
		t.TextTheme.Label.FontSize = f.Text.LabelSize
	}

	if b := f.Button; b != nil {
		bt := DefaultButtonTheme(*c)
		p.set(&bt.BackgroundColor, "button.background", b.Background)
		p.set(&bt.HoverColor, "button.hover", b.Hover)
		p.set(&bt.ActiveColor, "button.active", b.Active)
		p.set(&bt.DisabledColor, "button.disabled", b.Disabled)
		p.set(&bt.ForegroundColor, "button.foreground", b.Foreground)
		if len(b.Padding) > 0 {
			insets, err := paddingOf(b.Padding)
			if err != nil {
				return nil, fmt.Errorf("button.padding: %w", err)
			}
			bt.Padding = insets
		}
		if b.Radius != nil {
			bt.BorderRadius = *b.Radius
		}
		if b.PressedOffset != nil {
			bt.PressedOffset = *b.PressedOffset
		}
		if b.FontSize > 0 {
			bt.FontSize = b.FontSize
		}
		t.ButtonTheme = &bt
	}
	if p.err != nil {
		return nil, p.err
	}
	return t, nil
}

// paddingOf accepts CSS-like shorthands: [all], [horizontal, vertical] or
// [left, top, right, bottom].
func paddingOf(v []float64) (layout.EdgeInsets, error) {
	switch len(v) {
	case 1:
		return layout.EdgeInsetsAll(v[0]), nil
	case 2:
		return layout.EdgeInsetsSymmetric(v[0], v[1]), nil
	case 4:
		return layout.EdgeInsets{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}, nil
	default:
		return layout.EdgeInsets{}, fmt.Errorf("want 1, 2 or 4 values, got %d", len(v))
	}
}

type colorParser struct {
	err error
}

func (p *colorParser) set(dst *graphics.Color, key, value string) {
	if p.err != nil || value == "" {
		return
	}
	c, err := ParseColor(value)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", key, err)
		return
	}
	*dst = c
}

// ParseColor parses "#RRGGBB" or "#AARRGGBB".
func ParseColor(s string) (graphics.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 6:
		hex = "FF" + hex
	case 8:
	default:
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	return graphics.Color(v), nil
}
