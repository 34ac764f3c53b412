package testbed

import (
	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/layout"
)

// Box is a fixed-size colored leaf for layout testing.
type Box struct {
	id     core.WidgetID
	Width  float64
	Height float64
	Color  graphics.Color
}

// NewBox creates a box of the given size.
func NewBox(id core.WidgetID, width, height float64, color graphics.Color) *Box {
	return &Box{id: id, Width: width, Height: height, Color: color}
}

func (b *Box) ID() core.WidgetID { return b.id }

func (b *Box) Resize(c layout.Constraints, _ *core.ResizeHandle) graphics.Size {
	return c.Constrain(graphics.Size{Width: b.Width, Height: b.Height})
}

func (b *Box) Render(scene *graphics.Scene, h *core.RenderHandle) {
	if b.Color != 0 {
		scene.FillRect(graphics.RectFromOriginSize(graphics.Offset{}, h.Rect(b.id).Size()), b.Color)
	}
}

func (b *Box) Event(core.Event, *core.EventHandle) {}

// Static is a component without bindings around a fixed widget tree.
type Static struct {
	*core.Base
}

// NewStatic wraps root as a component instance.
func NewStatic(rid core.RuntimeID, root core.Widget, names map[string]core.WidgetID) *Static {
	return &Static{Base: core.NewBase(rid, root, names, nil)}
}

func (s *Static) UpdateVars(force bool, h *core.UpdateHandle) bool {
	return s.UpdateNested(force, h)
}
