package widgets

import (
	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/layout"
)

// Holder mounts a nested component instance.
//
// Until a RuntimeID is set the holder has zero size, paints nothing and
// swallows events. Once set, every phase is forwarded to the nested
// instance through the handle's Nested collaborator, at the holder's own
// origin.
type Holder struct {
	id  core.WidgetID
	rid core.RuntimeID
}

// NewHolder creates an empty holder.
func NewHolder(id core.WidgetID) *Holder {
	return &Holder{id: id}
}

func (w *Holder) ID() core.WidgetID { return w.id }

// Runtime returns the mounted instance, if any.
func (w *Holder) Runtime() (core.RuntimeID, bool) {
	return w.rid, w.rid != core.NoRuntime
}

// SetRuntime mounts rid and reports whether the mounted instance changed.
// Passing core.NoRuntime empties the holder.
func (w *Holder) SetRuntime(rid core.RuntimeID) bool {
	if w.rid == rid {
		return false
	}
	w.rid = rid
	return true
}

func (w *Holder) Resize(c layout.Constraints, h *core.ResizeHandle) graphics.Size {
	if w.rid == core.NoRuntime {
		return c.Constrain(graphics.Size{})
	}
	return h.ResizeNested(w.rid, c)
}

func (w *Holder) Render(scene *graphics.Scene, h *core.RenderHandle) {
	if w.rid == core.NoRuntime {
		return
	}
	h.RenderNested(scene, w.id, w.rid)
}

func (w *Holder) Event(e core.Event, h *core.EventHandle) {
	if w.rid == core.NoRuntime {
		return
	}
	h.PropagateNested(e, w.rid)
}
