package testing

import (
	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/graphics"
)

// FakeWindow records everything the runtime asks of a window.
type FakeWindow struct {
	// Invalidated lists invalidated regions in call order.
	Invalidated []graphics.Rect
	// Redraws counts full redraw requests.
	Redraws int
	// Cursor is the last cursor shape set.
	Cursor core.Cursor
	// Cursors lists every cursor change in call order.
	Cursors []core.Cursor
	// Presented counts presented frames.
	Presented int
	// Last is the most recently presented scene.
	Last *graphics.Scene
}

func (w *FakeWindow) Invalidate(r graphics.Rect) {
	w.Invalidated = append(w.Invalidated, r)
}

func (w *FakeWindow) RequestRedraw() {
	w.Redraws++
}

func (w *FakeWindow) SetCursor(c core.Cursor) {
	w.Cursor = c
	w.Cursors = append(w.Cursors, c)
}

func (w *FakeWindow) Present(scene *graphics.Scene) {
	w.Presented++
	w.Last = scene
}

// Reset forgets all recorded calls.
func (w *FakeWindow) Reset() {
	*w = FakeWindow{}
}
