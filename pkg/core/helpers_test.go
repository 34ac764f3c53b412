package core_test

import (
	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/layout"
)

func wid(i uint32) core.WidgetID {
	return core.WidgetID{Component: 1, Widget: i}
}

// box is a leaf with a fixed preferred size that records its events.
type box struct {
	id     core.WidgetID
	size   graphics.Size
	color  graphics.Color
	events []core.Event
}

func (b *box) ID() core.WidgetID { return b.id }

func (b *box) Resize(c layout.Constraints, _ *core.ResizeHandle) graphics.Size {
	return c.Constrain(b.size)
}

func (b *box) Render(s *graphics.Scene, _ *core.RenderHandle) {
	s.FillRect(graphics.RectFromOriginSize(graphics.Offset{}, b.size), b.color)
}

func (b *box) Event(e core.Event, _ *core.EventHandle) {
	b.events = append(b.events, e)
}

// row places each child at a fixed local origin.
type row struct {
	id       core.WidgetID
	children []core.Widget
	origins  []graphics.Offset
	events   []core.Event
}

func (r *row) ID() core.WidgetID       { return r.id }
func (r *row) Children() []core.Widget { return r.children }

func (r *row) Resize(c layout.Constraints, h *core.ResizeHandle) graphics.Size {
	size := c.Constrain(graphics.Size{Width: 200, Height: 100})
	for i, child := range r.children {
		h.LayoutChild(child, r.origins[i], layout.Loose(size))
	}
	return size
}

func (r *row) Render(s *graphics.Scene, h *core.RenderHandle) {
	h.RenderChildren(s, r.id, r.children)
}

func (r *row) Event(e core.Event, h *core.EventHandle) {
	r.events = append(r.events, e)
	h.Propagate(e, r.children)
}

// mount hosts a nested instance.
type mount struct {
	id  core.WidgetID
	rid core.RuntimeID
}

func (m *mount) ID() core.WidgetID { return m.id }

func (m *mount) Resize(c layout.Constraints, h *core.ResizeHandle) graphics.Size {
	return h.ResizeNested(m.rid, c)
}

func (m *mount) Render(s *graphics.Scene, h *core.RenderHandle) {
	h.RenderNested(s, m.id, m.rid)
}

func (m *mount) Event(e core.Event, h *core.EventHandle) {
	h.PropagateNested(e, m.rid)
}

type comp struct {
	*core.Base
	resize   bool
	updates  int
	received []int
}

func (c *comp) UpdateVars(force bool, h *core.UpdateHandle) bool {
	c.updates++
	nested := c.UpdateNested(force, h)
	return c.resize || nested
}

func (c *comp) Receive(msg int) {
	c.received = append(c.received, msg)
}

type fakeWindow struct {
	invalidated []graphics.Rect
	redraws     int
	cursor      core.Cursor
	presented   int
}

func (w *fakeWindow) Invalidate(r graphics.Rect) { w.invalidated = append(w.invalidated, r) }
func (w *fakeWindow) RequestRedraw()             { w.redraws++ }
func (w *fakeWindow) SetCursor(c core.Cursor)    { w.cursor = c }
func (w *fakeWindow) Present(*graphics.Scene)    { w.presented++ }

// fixture is an outer instance with two boxes and a mount hosting an inner
// instance:
//
//	outer row (0)            window 0,0 200x100
//	  left box (1)           0,0 40x40
//	  right box (2)          20,0 40x40 (overlaps left)
//	  mount (3)              50,20
//	    inner row (0)
//	      inner box (1)      +5,+5 10x10
type fixture struct {
	info                *core.WidgetInfo
	outer, inner        *comp
	outerRow, innerRow  *row
	left, right, nested *box
	mount               *mount
	holder              *core.CompHolder[*comp, int]
	window              *fakeWindow
	env                 *core.Env
}

func newFixture() *fixture {
	var ids core.RuntimeIDSource
	outerRID := ids.Next()
	innerRID := ids.Next()

	f := &fixture{info: core.NewWidgetInfo(), window: &fakeWindow{}}
	f.env = &core.Env{Window: f.window}

	f.nested = &box{id: core.WidgetID{Component: 2, Widget: 1}, size: graphics.Size{Width: 10, Height: 10}, color: graphics.ColorBlack}
	f.innerRow = &row{
		id:       core.WidgetID{Component: 2, Widget: 0},
		children: []core.Widget{f.nested},
		origins:  []graphics.Offset{{X: 5, Y: 5}},
	}
	f.inner = &comp{Base: core.NewBase(innerRID, f.innerRow, map[string]core.WidgetID{"inner": f.nested.id}, nil)}

	f.left = &box{id: wid(1), size: graphics.Size{Width: 40, Height: 40}, color: graphics.ColorWhite}
	f.right = &box{id: wid(2), size: graphics.Size{Width: 40, Height: 40}, color: graphics.ColorGray}
	f.mount = &mount{id: wid(3), rid: innerRID}
	f.outerRow = &row{
		id:       wid(0),
		children: []core.Widget{f.left, f.right, f.mount},
		origins:  []graphics.Offset{{}, {X: 20}, {X: 50, Y: 20}},
	}
	f.holder = core.NewCompHolder[*comp, int](core.WidgetRef{Runtime: outerRID, Widget: f.mount.id}, f.inner)
	f.outer = &comp{Base: core.NewBase(outerRID, f.outerRow, map[string]core.WidgetID{"left": wid(1), "right": wid(2)}, core.Slots{f.holder})}
	return f
}

var window = graphics.RectFromLTWH(0, 0, 200, 100)

func (f *fixture) layout() {
	h := core.NewResizeHandle(f.info, f.env, f.outer)
	f.outer.Resize(layout.Tight(window.Size()), h)
	f.info.ConvertToGlobalPositions(window, f.rootRef(), f.outer)
}

func (f *fixture) rootRef() core.WidgetRef {
	return core.WidgetRef{Runtime: f.outer.ID(), Widget: f.outer.Root()}
}

func (f *fixture) dispatch(e core.Event) *core.EventHandle {
	h := core.NewEventHandle(f.info, f.env, f.outer)
	f.outer.Event(e, h)
	return h
}

func (f *fixture) ref(c *comp, id core.WidgetID) core.WidgetRef {
	return core.WidgetRef{Runtime: c.ID(), Widget: id}
}
