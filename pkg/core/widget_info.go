package core

import (
	"slices"

	"github.com/go-drift/strata/pkg/graphics"
)

// ParentResolver finds the parent of a widget, crossing component instance
// boundaries: the parent of a nested instance's root widget is the holder
// widget hosting it. The tree root has no parent.
type ParentResolver interface {
	Parent(ref WidgetRef) (WidgetRef, bool)
}

type slot struct {
	rect graphics.Rect
	set  bool
}

type instanceTable struct {
	component uint32
	slots     []slot
}

// WidgetInfo is the position and interaction registry for one running
// component tree.
//
// The resize pass records each widget's rectangle relative to its parent
// with PositionWidget. ConvertToGlobalPositions then rewrites the table into
// window coordinates, which every other lookup, hit test and render
// translation uses. WidgetInfo also owns the single active (pointer
// capturing) widget and the hovered set.
//
// WidgetInfo is not safe for concurrent use; the driver loop owns it.
type WidgetInfo struct {
	tables    map[RuntimeID]*instanceTable
	locals    map[RuntimeID]*instanceTable
	converted bool

	active    WidgetRef
	hasActive bool
	hovered   []WidgetRef
}

// NewWidgetInfo returns an empty registry.
func NewWidgetInfo() *WidgetInfo {
	return &WidgetInfo{tables: make(map[RuntimeID]*instanceTable)}
}

// PositionWidget stores rect for the widget, growing the instance's table
// with zero rectangles as needed. Tables never shrink implicitly.
func (w *WidgetInfo) PositionWidget(rid RuntimeID, id WidgetID, rect graphics.Rect) {
	if w.converted {
		// A new resize pass starts from scratch.
		w.tables = make(map[RuntimeID]*instanceTable)
		w.locals = nil
		w.converted = false
	}
	w.store(w.tables, rid, id, rect)
}

func (w *WidgetInfo) store(tables map[RuntimeID]*instanceTable, rid RuntimeID, id WidgetID, rect graphics.Rect) {
	t := tables[rid]
	if t == nil {
		t = &instanceTable{component: id.Component}
		tables[rid] = t
	}
	idx := int(id.Widget)
	if idx >= len(t.slots) {
		t.slots = append(t.slots, make([]slot, idx+1-len(t.slots))...)
	}
	t.slots[idx] = slot{rect: rect, set: true}
}

// Rect returns the widget's rectangle, or a zero Rect if it has not been
// laid out. Callers treat the zero Rect as "not yet laid out".
func (w *WidgetInfo) Rect(rid RuntimeID, id WidgetID) graphics.Rect {
	t := w.tables[rid]
	if t == nil || int(id.Widget) >= len(t.slots) {
		return graphics.Rect{}
	}
	return t.slots[id.Widget].rect
}

// RectOf is Rect addressed by reference.
func (w *WidgetInfo) RectOf(ref WidgetRef) graphics.Rect {
	return w.Rect(ref.Runtime, ref.Widget)
}

// ParentRect returns the rectangle of the widget's parent, or a zero Rect
// when the widget has no parent.
func (w *WidgetInfo) ParentRect(ref WidgetRef, parents ParentResolver) graphics.Rect {
	if parents == nil {
		return graphics.Rect{}
	}
	p, ok := parents.Parent(ref)
	if !ok {
		return graphics.Rect{}
	}
	return w.RectOf(p)
}

// ResetPositions clears every stored rectangle.
func (w *WidgetInfo) ResetPositions() {
	w.tables = make(map[RuntimeID]*instanceTable)
	w.locals = nil
	w.converted = false
}

// ConvertToGlobalPositions turns the parent-relative rectangles recorded by
// the resize pass into window coordinates.
//
// The root widget is pinned to window. Every other rectangle is translated
// by its parent's global origin, resolved through the parent chain and
// memoised, so the result does not depend on RuntimeID or widget order.
// Widgets without a parent, or whose chain does not reach the root, are
// dropped.
//
// Calling it again without new PositionWidget calls replays the same local
// snapshot, so the result is identical.
func (w *WidgetInfo) ConvertToGlobalPositions(window graphics.Rect, root WidgetRef, parents ParentResolver) {
	if !w.converted {
		w.store(w.tables, root.Runtime, root.Widget, window)
		w.locals = w.tables
		w.converted = true
	}
	w.tables = make(map[RuntimeID]*instanceTable, len(w.locals))
	w.store(w.tables, root.Runtime, root.Widget, window)
	if parents == nil {
		return
	}

	c := &conversion{
		info:    w,
		parents: parents,
		state:   make(map[WidgetRef]resolveState),
	}
	c.state[root] = resolved

	rids := make([]RuntimeID, 0, len(w.locals))
	for rid := range w.locals {
		rids = append(rids, rid)
	}
	slices.Sort(rids)
	for _, rid := range rids {
		t := w.locals[rid]
		for i, s := range t.slots {
			if s.set {
				c.resolve(WidgetRef{Runtime: rid, Widget: WidgetID{Component: t.component, Widget: uint32(i)}})
			}
		}
	}
}

type resolveState uint8

const (
	unresolved resolveState = iota
	resolving
	resolved
	dropped
)

// conversion is the state of one ConvertToGlobalPositions call.
type conversion struct {
	info    *WidgetInfo
	parents ParentResolver
	state   map[WidgetRef]resolveState
}

// resolve stores the global rectangle of ref and reports whether it has one.
func (c *conversion) resolve(ref WidgetRef) bool {
	switch c.state[ref] {
	case resolved:
		return true
	case resolving, dropped:
		// A cycle in the parent chain places nothing.
		return false
	}
	local, ok := c.local(ref)
	if !ok {
		c.state[ref] = dropped
		return false
	}
	c.state[ref] = resolving
	parent, ok := c.parents.Parent(ref)
	if !ok || !c.resolve(parent) {
		c.state[ref] = dropped
		return false
	}
	origin := c.info.RectOf(parent).Origin()
	c.info.store(c.info.tables, ref.Runtime, ref.Widget, local.Shift(origin))
	c.state[ref] = resolved
	return true
}

func (c *conversion) local(ref WidgetRef) (graphics.Rect, bool) {
	t := c.info.locals[ref.Runtime]
	if t == nil || int(ref.Widget.Widget) >= len(t.slots) || !t.slots[ref.Widget.Widget].set {
		return graphics.Rect{}, false
	}
	return t.slots[ref.Widget.Widget].rect, true
}

// SetActive makes ref the active widget, or releases it when active is
// false. Only one widget is active at a time. When a different widget held
// the capture it is returned as displaced so the caller can notify it.
// Re-activating the current widget displaces nothing. Releasing is a no-op
// unless ref is the current active widget.
func (w *WidgetInfo) SetActive(ref WidgetRef, active bool) (displaced WidgetRef, ok bool) {
	if !active {
		if w.hasActive && w.active == ref {
			w.hasActive = false
			w.active = WidgetRef{}
		}
		return WidgetRef{}, false
	}
	if w.hasActive && w.active == ref {
		return WidgetRef{}, false
	}
	displaced, ok = w.active, w.hasActive
	w.active, w.hasActive = ref, true
	return displaced, ok
}

// IsActive reports whether ref currently captures the pointer.
func (w *WidgetInfo) IsActive(ref WidgetRef) bool {
	return w.hasActive && w.active == ref
}

// Active returns the active widget, if any.
func (w *WidgetInfo) Active() (WidgetRef, bool) {
	return w.active, w.hasActive
}

// AddHover marks ref hovered if point lies within its global rectangle.
// It reports whether ref is hovered afterwards.
func (w *WidgetInfo) AddHover(ref WidgetRef, point graphics.Offset) bool {
	if !w.RectOf(ref).Contains(point) {
		return false
	}
	if !slices.Contains(w.hovered, ref) {
		w.hovered = append(w.hovered, ref)
	}
	return true
}

// IsHovered reports whether ref is in the hovered set.
func (w *WidgetInfo) IsHovered(ref WidgetRef) bool {
	return slices.Contains(w.hovered, ref)
}

// Hovered returns a copy of the hovered set in insertion order.
func (w *WidgetInfo) Hovered() []WidgetRef {
	return slices.Clone(w.hovered)
}

// RemoveUnHovered drops every hovered widget whose rectangle no longer
// contains point and returns the dropped widgets in insertion order.
func (w *WidgetInfo) RemoveUnHovered(point graphics.Offset) []WidgetRef {
	var removed []WidgetRef
	kept := w.hovered[:0]
	for _, ref := range w.hovered {
		if w.RectOf(ref).Contains(point) {
			kept = append(kept, ref)
		} else {
			removed = append(removed, ref)
		}
	}
	w.hovered = kept
	return removed
}

// RemoveRuntimeID forgets a torn-down component instance: its rectangles,
// and any active or hovered reference into it.
func (w *WidgetInfo) RemoveRuntimeID(rid RuntimeID) {
	delete(w.tables, rid)
	if w.locals != nil {
		delete(w.locals, rid)
	}
	if w.hasActive && w.active.Runtime == rid {
		w.hasActive = false
		w.active = WidgetRef{}
	}
	w.hovered = slices.DeleteFunc(w.hovered, func(ref WidgetRef) bool {
		return ref.Runtime == rid
	})
}

// Each calls fn for every positioned widget in ascending RuntimeID, then
// widget index order.
func (w *WidgetInfo) Each(fn func(ref WidgetRef, rect graphics.Rect)) {
	rids := make([]RuntimeID, 0, len(w.tables))
	for rid := range w.tables {
		rids = append(rids, rid)
	}
	slices.Sort(rids)
	for _, rid := range rids {
		t := w.tables[rid]
		for i, s := range t.slots {
			if s.set {
				fn(WidgetRef{Runtime: rid, Widget: WidgetID{Component: t.component, Widget: uint32(i)}}, s.rect)
			}
		}
	}
}
