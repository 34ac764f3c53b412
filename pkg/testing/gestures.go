package testing

import (
	"fmt"

	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/graphics"
)

// Tap simulates a press and release at the center of the first widget
// matched by finder.
func (t *Tester) Tap(finder Finder) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Tap: finder matched no widgets: %s", finder.Description())
	}
	return t.TapAt(result.Center())
}

// TapAt simulates a tap at the given window position. The pointer moves
// there first so hover-dependent widgets see it arrive.
func (t *Tester) TapAt(pos graphics.Offset) error {
	if err := t.PointerMove(pos); err != nil {
		return err
	}
	if err := t.PointerDown(pos); err != nil {
		return err
	}
	return t.PointerUp(pos)
}

// Drag simulates a drag from the center of the first widget matched by
// finder.
func (t *Tester) Drag(finder Finder, delta graphics.Offset) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Drag: finder matched no widgets: %s", finder.Description())
	}
	return t.DragFrom(result.Center(), delta)
}

// DragFrom simulates a press at start, a move by delta, and a release at
// the end point.
func (t *Tester) DragFrom(start, delta graphics.Offset) error {
	if err := t.PointerMove(start); err != nil {
		return err
	}
	if err := t.PointerDown(start); err != nil {
		return err
	}
	end := start.Add(delta)
	if err := t.PointerMove(end); err != nil {
		return err
	}
	return t.PointerUp(end)
}

// HoverAt moves the pointer to pos without pressing.
func (t *Tester) HoverAt(pos graphics.Offset) error {
	return t.PointerMove(pos)
}

// PointerDown sends a primary button press at pos.
func (t *Tester) PointerDown(pos graphics.Offset) error {
	return t.SendEvent(core.PointerEvent{Phase: core.PointerDown, Position: pos})
}

// PointerMove sends a pointer motion to pos.
func (t *Tester) PointerMove(pos graphics.Offset) error {
	return t.SendEvent(core.PointerEvent{Phase: core.PointerMove, Position: pos})
}

// PointerUp sends a primary button release at pos.
func (t *Tester) PointerUp(pos graphics.Offset) error {
	return t.SendEvent(core.PointerEvent{Phase: core.PointerUp, Position: pos})
}

// SendEvent dispatches e and runs the frame that follows it. It returns
// the panic recovered while handling the event, if any.
func (t *Tester) SendEvent(e core.Event) error {
	if t.rt == nil {
		return ErrNoComponent
	}
	before := t.recorder.count()
	t.rt.HandleEvent(e)
	return t.recorder.since(before)
}
