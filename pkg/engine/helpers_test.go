package engine_test

import (
	"strconv"

	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/engine"
	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/layout"
	"github.com/go-drift/strata/pkg/theme"
	"github.com/go-drift/strata/pkg/widgets"
)

// monoMeasurer gives every rune an advance of 10 and lines a height of 20.
type monoMeasurer struct{}

func (monoMeasurer) Advance(text string, _ graphics.TextStyle) float64 {
	return float64(len([]rune(text))) * 10
}

func (monoMeasurer) Metrics(graphics.TextStyle) (float64, float64) { return 20, 15 }

type fakeWindow struct {
	invalidated []graphics.Rect
	redraws     int
	cursor      core.Cursor
	presented   []*graphics.Scene
}

func (w *fakeWindow) Invalidate(r graphics.Rect) { w.invalidated = append(w.invalidated, r) }
func (w *fakeWindow) RequestRedraw()             { w.redraws++ }
func (w *fakeWindow) SetCursor(c core.Cursor)    { w.cursor = c }
func (w *fakeWindow) Present(s *graphics.Scene)  { w.presented = append(w.presented, s) }

func wid(i uint32) core.WidgetID {
	return core.WidgetID{Component: 1, Widget: i}
}

// counter is a hand-wired component:
//
//	vertical stack (0)
//	  button (1)      0,0 40x30
//	    text "Add" (2) 5,5 30x20
//	  text count (3)  15,30 10x20
type counter struct {
	*core.Base
	count  *core.Updateable[int]
	button *widgets.Button
	label  *widgets.Text
}

func newCounter(rid core.RuntimeID) *counter {
	c := &counter{count: core.NewUpdateable(0)}
	style := theme.ButtonThemeData{
		BackgroundColor: graphics.ColorGray,
		HoverColor:      graphics.ColorWhite,
		ActiveColor:     graphics.ColorBlack,
		Padding:         layout.EdgeInsetsAll(5),
		PressedOffset:   1,
	}
	c.button = widgets.NewButton(wid(1), widgets.NewText(wid(2), "Add", graphics.TextStyle{}), style, func() {
		c.count.Update(func(v int) int { return v + 1 })
	})
	c.label = widgets.NewText(wid(3), "", graphics.TextStyle{})
	root := widgets.NewStack(wid(0), widgets.AxisVertical, 0, c.button, c.label)
	c.Base = core.NewBase(rid, root, map[string]core.WidgetID{"add": wid(1), "count": wid(3)}, nil)
	return c
}

func (c *counter) UpdateVars(force bool, h *core.UpdateHandle) bool {
	h = h.Scope(c.ID(), c.Nested())
	resize := false
	if c.count.IsUpdated() || force {
		if c.label.SetContent(strconv.Itoa(c.count.Value())) {
			h.Invalidate(c.label.ID())
			resize = true
		}
	}
	return c.UpdateNested(force, h) || resize
}

var windowSize = graphics.Size{Width: 200, Height: 100}

func newRuntime(opts ...engine.Option) (*counter, *fakeWindow, *engine.Runtime) {
	var ids core.RuntimeIDSource
	c := newCounter(ids.Next())
	w := &fakeWindow{}
	env := &core.Env{Window: w, Text: monoMeasurer{}}
	return c, w, engine.New(c, env, windowSize, opts...)
}

func down(x, y float64) core.PointerEvent {
	return core.PointerEvent{Phase: core.PointerDown, Position: graphics.Offset{X: x, Y: y}}
}

func move(x, y float64) core.PointerEvent {
	return core.PointerEvent{Phase: core.PointerMove, Position: graphics.Offset{X: x, Y: y}}
}

func up(x, y float64) core.PointerEvent {
	return core.PointerEvent{Phase: core.PointerUp, Position: graphics.Offset{X: x, Y: y}}
}
