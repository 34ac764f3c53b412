package core

import (
	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/layout"
)

// Widget is a node of a component's widget tree.
//
// Resize returns the widget's size within c and lays out its children with
// ResizeHandle.LayoutChild. Render paints in the widget's own coordinate
// space; the parent translates the result. Event receives events routed by
// the parent's EventHandle.Propagate.
type Widget interface {
	ID() WidgetID
	Resize(c layout.Constraints, h *ResizeHandle) graphics.Size
	Render(scene *graphics.Scene, h *RenderHandle)
	Event(e Event, h *EventHandle)
}

// Container is implemented by widgets with children.
type Container interface {
	Children() []Widget
}

// Component is a live instance of a component schema: a widget tree plus
// the variables bound to it.
type Component interface {
	// ID is the instance's RuntimeID.
	ID() RuntimeID
	// Root is the id of the tree's root widget.
	Root() WidgetID
	// UpdateVars pushes changed variables into widgets, or every variable
	// when force is set. It reports whether a resize is required.
	UpdateVars(force bool, h *UpdateHandle) bool
	Resize(c layout.Constraints, h *ResizeHandle) graphics.Size
	Render(scene *graphics.Scene, h *RenderHandle)
	Event(e Event, h *EventHandle)
	// Parent resolves the parent of ref, which may live in a nested
	// instance. The parent of a nested root is its host widget.
	Parent(ref WidgetRef) (WidgetRef, bool)
	// Lookup finds a widget by name, searching nested instances too.
	Lookup(name string) (WidgetRef, bool)
}

// MultiComponent is a set of nested component instances addressed by
// RuntimeID.
type MultiComponent interface {
	Root(rid RuntimeID) (WidgetID, bool)
	UpdateVars(rid RuntimeID, force bool, h *UpdateHandle) bool
	UpdateAllVars(force bool, h *UpdateHandle) bool
	Resize(rid RuntimeID, c layout.Constraints, h *ResizeHandle) graphics.Size
	Render(rid RuntimeID, scene *graphics.Scene, h *RenderHandle)
	Event(rid RuntimeID, e Event, h *EventHandle)
	Parent(ref WidgetRef) (WidgetRef, bool)
	Lookup(name string) (WidgetRef, bool)
}

// Base implements the tree plumbing shared by components: scoping handles
// to the instance, laying out and painting the root at its local origin,
// dispatching events from the root, and resolving parents and names.
// Concrete components embed it and add UpdateVars.
type Base struct {
	rid     RuntimeID
	root    Widget
	names   map[string]WidgetID
	parents map[WidgetID]WidgetID
	nested  MultiComponent
}

// NewBase builds the parent index of the tree rooted at root. names maps
// widget names to ids; nested may be nil.
func NewBase(rid RuntimeID, root Widget, names map[string]WidgetID, nested MultiComponent) *Base {
	b := &Base{
		rid:     rid,
		root:    root,
		names:   names,
		parents: make(map[WidgetID]WidgetID),
		nested:  nested,
	}
	b.index(root)
	return b
}

func (b *Base) index(w Widget) {
	c, ok := w.(Container)
	if !ok {
		return
	}
	for _, child := range c.Children() {
		b.parents[child.ID()] = w.ID()
		b.index(child)
	}
}

// ID returns the instance's RuntimeID.
func (b *Base) ID() RuntimeID { return b.rid }

// Root returns the root widget's id.
func (b *Base) Root() WidgetID { return b.root.ID() }

// RootWidget returns the root widget.
func (b *Base) RootWidget() Widget { return b.root }

// Nested returns the nested instances, never nil.
func (b *Base) Nested() MultiComponent {
	if b.nested == nil {
		return Slots(nil)
	}
	return b.nested
}

// UpdateNested runs the update phase of every nested instance.
func (b *Base) UpdateNested(force bool, h *UpdateHandle) bool {
	return b.Nested().UpdateAllVars(force, h.Scope(b.rid, b.nested))
}

func (b *Base) Resize(c layout.Constraints, h *ResizeHandle) graphics.Size {
	return h.Scope(b.rid, b.nested).LayoutChild(b.root, graphics.Offset{}, c)
}

func (b *Base) Render(scene *graphics.Scene, h *RenderHandle) {
	b.root.Render(scene, h.Scope(b.rid, b.nested))
}

func (b *Base) Event(e Event, h *EventHandle) {
	h.Scope(b.rid, b.nested).Propagate(e, []Widget{b.root})
}

func (b *Base) Parent(ref WidgetRef) (WidgetRef, bool) {
	if ref.Runtime == b.rid {
		p, ok := b.parents[ref.Widget]
		if !ok {
			return WidgetRef{}, false
		}
		return WidgetRef{Runtime: b.rid, Widget: p}, true
	}
	return b.Nested().Parent(ref)
}

func (b *Base) Lookup(name string) (WidgetRef, bool) {
	if id, ok := b.names[name]; ok {
		return WidgetRef{Runtime: b.rid, Widget: id}, true
	}
	return b.Nested().Lookup(name)
}
