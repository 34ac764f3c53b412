package widgets

import (
	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/layout"
	"github.com/go-drift/strata/pkg/theme"
)

// Button decorates one child with a pressable background.
//
// Pressing inside the button captures the pointer, so the button keeps
// receiving pointer events while the press is held even outside its
// bounds. Releasing always ends the capture; OnPress runs only if the
// release happens inside the button. A disabled button ignores all events.
//
// The fill is chosen in this order: disabled, pressed and hovered,
// hovered, idle. While pressed, the background and content shift down by
// Style.PressedOffset. Disabled buttons are additionally screened with
// Style.DisabledOverlay.
//
//	btn := widgets.NewButton(id, label, th.ButtonThemeOf(), func() {
//	    count.Update(func(v int) int { return v + 1 })
//	})
type Button struct {
	id    core.WidgetID
	child core.Widget

	// Style supplies colors, padding and the pressed offset.
	Style theme.ButtonThemeData
	// OnPress is called when a press is released inside the button.
	OnPress func()

	disabled bool
}

// NewButton creates a button around child.
func NewButton(id core.WidgetID, child core.Widget, style theme.ButtonThemeData, onPress func()) *Button {
	return &Button{id: id, child: child, Style: style, OnPress: onPress}
}

func (b *Button) ID() core.WidgetID       { return b.id }
func (b *Button) Children() []core.Widget { return []core.Widget{b.child} }

// Disabled reports whether the button ignores input.
func (b *Button) Disabled() bool { return b.disabled }

// SetDisabled changes the disabled state and reports whether it changed.
func (b *Button) SetDisabled(disabled bool) bool {
	if b.disabled == disabled {
		return false
	}
	b.disabled = disabled
	return true
}

// FillColor returns the background color for the given interaction state.
func (b *Button) FillColor(active, hovered bool) graphics.Color {
	switch {
	case b.disabled:
		return b.Style.DisabledColor
	case active && hovered:
		return b.Style.ActiveColor
	case hovered:
		return b.Style.HoverColor
	default:
		return b.Style.BackgroundColor
	}
}

func (b *Button) Resize(c layout.Constraints, h *core.ResizeHandle) graphics.Size {
	padding := b.Style.Padding
	size := h.LayoutChild(b.child, padding.TopLeft(), c.Deset(padding))
	return c.Constrain(layout.Tight(size).Inset(padding).Min)
}

func (b *Button) Render(scene *graphics.Scene, h *core.RenderHandle) {
	active := h.IsActive(b.id)
	hovered := h.IsHovered(b.id)
	bounds := graphics.RectFromOriginSize(graphics.Offset{}, h.Rect(b.id).Size())

	layer := graphics.NewScene()
	layer.FillRRect(bounds, b.Style.BorderRadius, b.FillColor(active, hovered))
	h.RenderChild(layer, b.id, b.child)
	if b.disabled {
		layer.FillRectBlend(bounds, b.Style.BorderRadius, b.Style.DisabledOverlay, graphics.BlendScreen)
	}

	var offset graphics.Offset
	if active && !b.disabled {
		offset.Y = b.Style.PressedOffset
	}
	scene.Append(layer, offset)
}

func (b *Button) Event(e core.Event, h *core.EventHandle) {
	if b.disabled {
		return
	}
	if !h.IsTarget(b.id) {
		h.Propagate(e, b.Children())
		return
	}
	switch e := e.(type) {
	case core.PointerEvent:
		b.pointer(e, h)
	case core.ActiveChangeEvent:
		h.Invalidate(b.id)
	case core.HoverExitEvent:
		h.Invalidate(b.id)
		h.SetCursor(core.CursorDefault)
	default:
		h.Propagate(e, b.Children())
	}
}

func (b *Button) pointer(e core.PointerEvent, h *core.EventHandle) {
	inside := h.Contains(b.id, e.Position)
	switch e.Phase {
	case core.PointerDown:
		if !inside {
			return
		}
		h.SetActive(b.id, true)
		h.AddHover(b.id, e.Position)
		h.Invalidate(b.id)
	case core.PointerMove:
		if !inside {
			return
		}
		if h.AddHover(b.id, e.Position) {
			h.Invalidate(b.id)
		}
		h.SetCursor(core.CursorPointer)
	case core.PointerUp:
		if !h.IsActive(b.id) {
			return
		}
		h.SetActive(b.id, false)
		h.Invalidate(b.id)
		if inside && b.OnPress != nil {
			b.OnPress()
		}
	}
}
