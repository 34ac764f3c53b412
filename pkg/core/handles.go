package core

import (
	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/layout"
)

// handle is the state shared by every phase handle: the registry and
// environment it borrows, the tree used to resolve ancestry, and the
// component instance currently being processed.
//
// Handles are created by the driver at the start of a phase, re-scoped as
// the recursion enters nested component instances, and dropped when the
// phase returns. They must never be retained.
type handle struct {
	info   *WidgetInfo
	env    *Env
	tree   ParentResolver
	rid    RuntimeID
	nested MultiComponent
}

func (h *handle) scoped(rid RuntimeID, nested MultiComponent) handle {
	c := *h
	c.rid = rid
	c.nested = nested
	return c
}

// Runtime returns the component instance the handle is scoped to.
func (h *handle) Runtime() RuntimeID {
	return h.rid
}

// Ref addresses id within the current instance.
func (h *handle) Ref(id WidgetID) WidgetRef {
	return WidgetRef{Runtime: h.rid, Widget: id}
}

// Env returns the shared per-window resources.
func (h *handle) Env() *Env {
	return h.env
}

// Rect returns the global rectangle of id in the current instance.
func (h *handle) Rect(id WidgetID) graphics.Rect {
	return h.info.Rect(h.rid, id)
}

// Nested returns the nested component slots of the current instance.
// It is never nil.
func (h *handle) Nested() MultiComponent {
	if h.nested == nil {
		return Slots(nil)
	}
	return h.nested
}

// IsActive reports whether id captures the pointer.
func (h *handle) IsActive(id WidgetID) bool {
	return h.info.IsActive(h.Ref(id))
}

// IsHovered reports whether id is hovered.
func (h *handle) IsHovered(id WidgetID) bool {
	return h.info.IsHovered(h.Ref(id))
}

func (h *handle) invalidate(id WidgetID) {
	if h.env == nil || h.env.Window == nil {
		return
	}
	r := h.Rect(id)
	if r.IsEmpty() {
		h.env.Window.RequestRedraw()
		return
	}
	h.env.Window.Invalidate(r)
}

// leadsTo reports whether target is id itself or one of its descendants,
// following parents across instance boundaries.
func (h *handle) leadsTo(id WidgetID, target WidgetRef) bool {
	ref := h.Ref(id)
	cur := target
	for {
		if cur == ref {
			return true
		}
		if h.tree == nil {
			return false
		}
		next, ok := h.tree.Parent(cur)
		if !ok || next == cur {
			return false
		}
		cur = next
	}
}

// UpdateHandle is the update-phase context. Widgets whose bound values
// changed invalidate their region; a change that affects size requests a
// resize, which bubbles up as the result of the whole update pass.
type UpdateHandle struct {
	handle
	needsResize *bool
}

// NewUpdateHandle starts an update phase.
func NewUpdateHandle(info *WidgetInfo, env *Env, tree ParentResolver) *UpdateHandle {
	return &UpdateHandle{
		handle:      handle{info: info, env: env, tree: tree},
		needsResize: new(bool),
	}
}

// Scope returns a handle for the given component instance.
func (h *UpdateHandle) Scope(rid RuntimeID, nested MultiComponent) *UpdateHandle {
	return &UpdateHandle{handle: h.scoped(rid, nested), needsResize: h.needsResize}
}

// Invalidate marks the widget's region for repaint.
func (h *UpdateHandle) Invalidate(id WidgetID) {
	h.invalidate(id)
}

// RequestResize forces a layout pass before the next render.
func (h *UpdateHandle) RequestResize() {
	*h.needsResize = true
}

// NeedsResize reports whether any widget requested a resize in this phase.
func (h *UpdateHandle) NeedsResize() bool {
	return *h.needsResize
}

// ResizeHandle is the layout-phase context.
type ResizeHandle struct {
	handle
}

// NewResizeHandle starts a resize phase.
func NewResizeHandle(info *WidgetInfo, env *Env, tree ParentResolver) *ResizeHandle {
	return &ResizeHandle{handle: handle{info: info, env: env, tree: tree}}
}

// Scope returns a handle for the given component instance.
func (h *ResizeHandle) Scope(rid RuntimeID, nested MultiComponent) *ResizeHandle {
	return &ResizeHandle{handle: h.scoped(rid, nested)}
}

// LayoutChild lays out child with constraints, records its rectangle at
// origin relative to the calling widget, and returns the measured size.
func (h *ResizeHandle) LayoutChild(child Widget, origin graphics.Offset, c layout.Constraints) graphics.Size {
	size := child.Resize(c, h)
	h.info.PositionWidget(h.rid, child.ID(), graphics.RectFromOriginSize(origin, size))
	return size
}

// PlaceChild moves an already measured child to origin, keeping its size.
func (h *ResizeHandle) PlaceChild(id WidgetID, origin graphics.Offset) {
	size := h.info.Rect(h.rid, id).Size()
	h.info.PositionWidget(h.rid, id, graphics.RectFromOriginSize(origin, size))
}

// ResizeNested lays out a nested component instance.
func (h *ResizeHandle) ResizeNested(rid RuntimeID, c layout.Constraints) graphics.Size {
	return h.Nested().Resize(rid, c, h)
}

// RenderHandle is the render-phase context.
type RenderHandle struct {
	handle
}

// NewRenderHandle starts a render phase.
func NewRenderHandle(info *WidgetInfo, env *Env, tree ParentResolver) *RenderHandle {
	return &RenderHandle{handle: handle{info: info, env: env, tree: tree}}
}

// Scope returns a handle for the given component instance.
func (h *RenderHandle) Scope(rid RuntimeID, nested MultiComponent) *RenderHandle {
	return &RenderHandle{handle: h.scoped(rid, nested)}
}

// RenderChild paints child into its own scene at the origin and composites
// it into scene at the offset between parent's and child's global origins.
func (h *RenderHandle) RenderChild(scene *graphics.Scene, parent WidgetID, child Widget) {
	sub := graphics.NewScene()
	child.Render(sub, h)
	offset := h.Rect(child.ID()).Origin().Sub(h.Rect(parent).Origin())
	scene.Append(sub, offset)
}

// RenderChildren calls RenderChild for each child in order.
func (h *RenderHandle) RenderChildren(scene *graphics.Scene, parent WidgetID, children []Widget) {
	for _, child := range children {
		h.RenderChild(scene, parent, child)
	}
}

// RenderNested paints a nested component instance hosted by parent.
func (h *RenderHandle) RenderNested(scene *graphics.Scene, parent WidgetID, rid RuntimeID) {
	nested := h.Nested()
	root, ok := nested.Root(rid)
	if !ok {
		return
	}
	sub := graphics.NewScene()
	nested.Render(rid, sub, h)
	offset := h.info.Rect(rid, root).Origin().Sub(h.Rect(parent).Origin())
	scene.Append(sub, offset)
}

// EventHandle is the event-phase context. Besides hit testing it collects
// events addressed to other widgets; the driver delivers them once the
// current recursive dispatch has returned.
type EventHandle struct {
	handle
	queue  *[]QueuedEvent
	target *WidgetRef
}

// NewEventHandle starts an event phase.
func NewEventHandle(info *WidgetInfo, env *Env, tree ParentResolver) *EventHandle {
	return &EventHandle{
		handle: handle{info: info, env: env, tree: tree},
		queue:  new([]QueuedEvent),
	}
}

// Scope returns a handle for the given component instance.
func (h *EventHandle) Scope(rid RuntimeID, nested MultiComponent) *EventHandle {
	return &EventHandle{handle: h.scoped(rid, nested), queue: h.queue, target: h.target}
}

// WithTarget returns a handle that routes every event to target only.
func (h *EventHandle) WithTarget(target WidgetRef) *EventHandle {
	c := *h
	c.target = &target
	return &c
}

// Target returns the widget the current event is addressed to, if any.
func (h *EventHandle) Target() (WidgetRef, bool) {
	if h.target == nil {
		return WidgetRef{}, false
	}
	return *h.target, true
}

// IsTarget reports whether id should handle the current event itself:
// always for untargeted events, otherwise only when id is the target.
func (h *EventHandle) IsTarget(id WidgetID) bool {
	return h.target == nil || *h.target == h.Ref(id)
}

// Contains reports whether the global point lies within id's rectangle.
func (h *EventHandle) Contains(id WidgetID, p graphics.Offset) bool {
	return h.Rect(id).Contains(p)
}

// GlobalToLocal converts a window point into id's coordinate space.
func (h *EventHandle) GlobalToLocal(id WidgetID, p graphics.Offset) graphics.Offset {
	return p.Sub(h.Rect(id).Origin())
}

// SetActive captures or releases the pointer for id. A widget displaced
// from capture receives an ActiveChangeEvent after this dispatch.
func (h *EventHandle) SetActive(id WidgetID, active bool) {
	if displaced, ok := h.info.SetActive(h.Ref(id), active); ok {
		h.Queue(displaced, ActiveChangeEvent{})
	}
}

// AddHover marks id hovered if p is within its rectangle and reports
// whether it was newly hovered.
func (h *EventHandle) AddHover(id WidgetID, p graphics.Offset) bool {
	ref := h.Ref(id)
	was := h.info.IsHovered(ref)
	return h.info.AddHover(ref, p) && !was
}

// SetCursor forwards a cursor shape hint to the window.
func (h *EventHandle) SetCursor(c Cursor) {
	if h.env != nil && h.env.Window != nil {
		h.env.Window.SetCursor(c)
	}
}

// Invalidate marks the widget's region for repaint.
func (h *EventHandle) Invalidate(id WidgetID) {
	h.invalidate(id)
}

// Queue schedules e for delivery to target after the current dispatch.
func (h *EventHandle) Queue(target WidgetRef, e Event) {
	*h.queue = append(*h.queue, QueuedEvent{Target: target, Event: e})
}

// Drain returns and clears the queued events.
func (h *EventHandle) Drain() []QueuedEvent {
	q := *h.queue
	*h.queue = nil
	return q
}

// Propagate dispatches e to children.
//
// A targeted event goes to the single child that is or contains the
// target. A positional event goes to the child that contains the active
// widget when there is one, otherwise to the first child whose rectangle
// contains the point; later siblings are not visited. Any other event is
// broadcast to every child.
func (h *EventHandle) Propagate(e Event, children []Widget) {
	if h.target != nil {
		for _, c := range children {
			if h.leadsTo(c.ID(), *h.target) {
				c.Event(e, h)
				return
			}
		}
		return
	}
	pos, positional := PositionOf(e)
	if !positional {
		for _, c := range children {
			c.Event(e, h)
		}
		return
	}
	if active, ok := h.info.Active(); ok {
		for _, c := range children {
			if h.leadsTo(c.ID(), active) {
				c.Event(e, h)
				return
			}
		}
	}
	for _, c := range children {
		if h.Contains(c.ID(), pos) {
			c.Event(e, h)
			return
		}
	}
}

// PropagateNested dispatches e into a nested component instance.
func (h *EventHandle) PropagateNested(e Event, rid RuntimeID) {
	h.Nested().Event(rid, e, h)
}
