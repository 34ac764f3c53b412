package theme

import "fmt"

// Brightness indicates whether a theme is light or dark.
type Brightness int

const (
	// BrightnessLight is a dark-on-light theme.
	BrightnessLight Brightness = iota
	// BrightnessDark is a light-on-dark theme.
	BrightnessDark
)

// String returns a human-readable representation of the brightness.
func (b Brightness) String() string {
	switch b {
	case BrightnessLight:
		return "light"
	case BrightnessDark:
		return "dark"
	default:
		return fmt.Sprintf("Brightness(%d)", int(b))
	}
}

// ThemeData contains the visual configuration shared by a component tree.
type ThemeData struct {
	// Brightness indicates if this is a light or dark theme.
	Brightness Brightness

	// ColorScheme defines the color palette.
	ColorScheme ColorScheme

	// TextTheme defines text styles.
	TextTheme TextTheme

	// ButtonTheme is optional, derived from ColorScheme if nil.
	ButtonTheme *ButtonThemeData
}

// DefaultLightTheme returns the default light theme.
func DefaultLightTheme() *ThemeData {
	colors := LightColorScheme()
	return &ThemeData{
		ColorScheme: colors,
		TextTheme:   DefaultTextTheme(colors.OnBackground),
		Brightness:  BrightnessLight,
	}
}

// DefaultDarkTheme returns the default dark theme.
func DefaultDarkTheme() *ThemeData {
	colors := DarkColorScheme()
	return &ThemeData{
		ColorScheme: colors,
		TextTheme:   DefaultTextTheme(colors.OnBackground),
		Brightness:  BrightnessDark,
	}
}

// ForBrightness returns the default theme for b.
func ForBrightness(b Brightness) *ThemeData {
	if b == BrightnessDark {
		return DefaultDarkTheme()
	}
	return DefaultLightTheme()
}

// CopyWith returns a new ThemeData with the specified fields overridden.
func (t *ThemeData) CopyWith(colorScheme *ColorScheme, textTheme *TextTheme, brightness *Brightness) *ThemeData {
	result := &ThemeData{
		ColorScheme: t.ColorScheme,
		TextTheme:   t.TextTheme,
		Brightness:  t.Brightness,
		ButtonTheme: t.ButtonTheme,
	}
	if colorScheme != nil {
		result.ColorScheme = *colorScheme
	}
	if textTheme != nil {
		result.TextTheme = *textTheme
	}
	if brightness != nil {
		result.Brightness = *brightness
	}
	return result
}

// ButtonThemeOf returns the button theme, deriving from ColorScheme if not set.
func (t *ThemeData) ButtonThemeOf() ButtonThemeData {
	if t.ButtonTheme != nil {
		return *t.ButtonTheme
	}
	return DefaultButtonTheme(t.ColorScheme)
}
