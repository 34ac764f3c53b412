package graphics

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// defaultFontSize is used when no font size is specified.
const defaultFontSize = 13

// TextStyle describes how text should be rendered.
type TextStyle struct {
	Color    Color
	FontSize float64
}

// WithColor returns a copy of the TextStyle with the specified color.
func (s TextStyle) WithColor(c Color) TextStyle {
	s.Color = c
	return s
}

// TextLine represents a single laid-out line of text.
type TextLine struct {
	Text  string
	Width float64
}

// TextLayout contains measured lines of text.
type TextLayout struct {
	Lines      []TextLine
	LineHeight float64
	Ascent     float64
	Size       Size
}

// TextMeasurer is the text-shaping collaborator. Implementations must be
// deterministic for a given input; the runtime calls them during resize.
type TextMeasurer interface {
	// Advance returns the width of a single line of text.
	Advance(text string, style TextStyle) float64
	// Metrics returns the line height and ascent for a style.
	Metrics(style TextStyle) (lineHeight, ascent float64)
}

// FaceMeasurer measures text with an x/image font.Face. Faces are fixed
// size, so advances are scaled linearly from the face's own height.
type FaceMeasurer struct {
	Face font.Face
}

// NewFaceMeasurer returns a measurer for face. A nil face selects the
// bundled 7x13 bitmap face.
func NewFaceMeasurer(face font.Face) *FaceMeasurer {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &FaceMeasurer{Face: face}
}

func (m *FaceMeasurer) scale(style TextStyle) float64 {
	size := style.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	h := fixedToFloat(m.Face.Metrics().Height)
	if h <= 0 {
		return 1
	}
	return size / h
}

// Advance implements TextMeasurer.
func (m *FaceMeasurer) Advance(text string, style TextStyle) float64 {
	return fixedToFloat(font.MeasureString(m.Face, text)) * m.scale(style)
}

// Metrics implements TextMeasurer.
func (m *FaceMeasurer) Metrics(style TextStyle) (lineHeight, ascent float64) {
	metrics := m.Face.Metrics()
	s := m.scale(style)
	return fixedToFloat(metrics.Height) * s, fixedToFloat(metrics.Ascent) * s
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// LayoutText measures text with m, greedily wrapping on spaces when
// maxWidth is finite. Explicit newlines always break. A single word wider
// than maxWidth is kept whole on its own line.
func LayoutText(m TextMeasurer, text string, style TextStyle, maxWidth float64) TextLayout {
	lineHeight, ascent := m.Metrics(style)
	wrap := !math.IsInf(maxWidth, 1) && maxWidth > 0

	var lines []TextLine
	for _, para := range strings.Split(text, "\n") {
		if !wrap {
			lines = append(lines, TextLine{Text: para, Width: m.Advance(para, style)})
			continue
		}
		words := strings.FieldsFunc(para, unicode.IsSpace)
		if len(words) == 0 {
			lines = append(lines, TextLine{})
			continue
		}
		current := words[0]
		for _, w := range words[1:] {
			candidate := current + " " + w
			if m.Advance(candidate, style) <= maxWidth {
				current = candidate
				continue
			}
			lines = append(lines, TextLine{Text: current, Width: m.Advance(current, style)})
			current = w
		}
		lines = append(lines, TextLine{Text: current, Width: m.Advance(current, style)})
	}

	width := 0.0
	for _, l := range lines {
		width = math.Max(width, l.Width)
	}
	return TextLayout{
		Lines:      lines,
		LineHeight: lineHeight,
		Ascent:     ascent,
		Size:       Size{Width: width, Height: lineHeight * float64(len(lines))},
	}
}
