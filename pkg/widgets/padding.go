package widgets

import (
	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/layout"
)

// Padding insets its child by the given amounts.
//
// The child is laid out with the constraints deflated by the insets and
// offset by the top-left inset; the padding's size is the child's size
// plus the insets.
type Padding struct {
	id     core.WidgetID
	insets layout.EdgeInsets
	child  core.Widget
}

// NewPadding wraps child.
func NewPadding(id core.WidgetID, insets layout.EdgeInsets, child core.Widget) *Padding {
	return &Padding{id: id, insets: insets, child: child}
}

func (p *Padding) ID() core.WidgetID       { return p.id }
func (p *Padding) Children() []core.Widget { return []core.Widget{p.child} }

// Insets returns the padding amounts.
func (p *Padding) Insets() layout.EdgeInsets { return p.insets }

func (p *Padding) Resize(c layout.Constraints, h *core.ResizeHandle) graphics.Size {
	size := h.LayoutChild(p.child, p.insets.TopLeft(), c.Deset(p.insets))
	return c.Constrain(layout.Tight(size).Inset(p.insets).Min)
}

func (p *Padding) Render(scene *graphics.Scene, h *core.RenderHandle) {
	h.RenderChild(scene, p.id, p.child)
}

func (p *Padding) Event(e core.Event, h *core.EventHandle) {
	h.Propagate(e, p.Children())
}
