package widgets

import (
	"math"

	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/layout"
)

// Text displays a string with a single style.
//
// Text wraps at the maximum width allowed by its constraints and never
// wraps when the width is unbounded. It is measured with the environment's
// TextMeasurer.
type Text struct {
	id      core.WidgetID
	content string
	style   graphics.TextStyle
	layout  graphics.TextLayout
}

// NewText creates a text leaf.
func NewText(id core.WidgetID, content string, style graphics.TextStyle) *Text {
	return &Text{id: id, content: content, style: style}
}

func (t *Text) ID() core.WidgetID { return t.id }

// Content returns the displayed string.
func (t *Text) Content() string { return t.content }

// Style returns the text style.
func (t *Text) Style() graphics.TextStyle { return t.style }

// SetContent replaces the displayed string and reports whether it changed.
func (t *Text) SetContent(s string) bool {
	if s == t.content {
		return false
	}
	t.content = s
	return true
}

// SetStyle replaces the style and reports whether it changed.
func (t *Text) SetStyle(s graphics.TextStyle) bool {
	if s == t.style {
		return false
	}
	t.style = s
	return true
}

func (t *Text) Resize(c layout.Constraints, h *core.ResizeHandle) graphics.Size {
	maxWidth := math.Inf(1)
	if adv, ok := c.MaxAdvance(); ok {
		maxWidth = float64(adv)
	}
	t.layout = graphics.LayoutText(h.Env().Measurer(), t.content, t.style, maxWidth)
	return c.Constrain(t.layout.Size)
}

func (t *Text) Render(scene *graphics.Scene, _ *core.RenderHandle) {
	if len(t.layout.Lines) == 0 {
		return
	}
	scene.DrawText(graphics.Offset{}, t.layout, t.style)
}

func (t *Text) Event(core.Event, *core.EventHandle) {}
