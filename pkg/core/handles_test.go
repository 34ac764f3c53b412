package core_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/graphics"
)

func down(x, y float64) core.PointerEvent {
	return core.PointerEvent{Phase: core.PointerDown, Position: graphics.Offset{X: x, Y: y}}
}

func TestResizeHandle_RecordsGlobalRects(t *testing.T) {
	f := newFixture()
	f.layout()

	tests := []struct {
		name string
		ref  core.WidgetRef
		want graphics.Rect
	}{
		{"root", f.rootRef(), window},
		{"left", f.ref(f.outer, f.left.id), graphics.RectFromLTWH(0, 0, 40, 40)},
		{"right", f.ref(f.outer, f.right.id), graphics.RectFromLTWH(20, 0, 40, 40)},
		{"inner row", f.ref(f.inner, f.innerRow.id), graphics.RectFromLTWH(50, 20, 200, 100)},
		{"inner box", f.ref(f.inner, f.nested.id), graphics.RectFromLTWH(55, 25, 10, 10)},
	}
	for _, tt := range tests {
		if got := f.info.RectOf(tt.ref); got != tt.want {
			t.Errorf("%s: rect = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEventHandle_FirstContainingChildWins(t *testing.T) {
	f := newFixture()
	f.layout()

	f.dispatch(down(30, 10))
	if len(f.left.events) != 1 || len(f.right.events) != 0 {
		t.Errorf("overlap: left got %d, right got %d; want 1, 0", len(f.left.events), len(f.right.events))
	}

	f.dispatch(down(45, 10))
	if len(f.right.events) != 1 {
		t.Errorf("right got %d events, want 1", len(f.right.events))
	}

	f.dispatch(down(62, 30))
	if len(f.nested.events) != 1 {
		t.Errorf("nested box got %d events, want 1", len(f.nested.events))
	}

	f.dispatch(down(150, 10))
	if got := len(f.left.events) + len(f.right.events) + len(f.nested.events); got != 3 {
		t.Errorf("miss was delivered to a leaf, total = %d", got)
	}
}

func TestEventHandle_ActiveCapturesAcrossInstances(t *testing.T) {
	f := newFixture()
	f.layout()
	f.info.SetActive(f.ref(f.inner, f.nested.id), true)

	f.dispatch(down(5, 5))
	if len(f.left.events) != 0 {
		t.Errorf("left got %d events while another widget was active", len(f.left.events))
	}
	if len(f.nested.events) != 1 {
		t.Errorf("active widget got %d events, want 1", len(f.nested.events))
	}
}

func TestEventHandle_Targeted(t *testing.T) {
	f := newFixture()
	f.layout()

	h := core.NewEventHandle(f.info, f.env, f.outer).WithTarget(f.ref(f.outer, f.right.id))
	f.outer.Event(core.CustomEvent{Name: "ping"}, h)

	if len(f.right.events) != 1 || len(f.left.events) != 0 || len(f.nested.events) != 0 {
		t.Errorf("targeted delivery: left=%d right=%d nested=%d; want 0 1 0",
			len(f.left.events), len(f.right.events), len(f.nested.events))
	}
	scoped := h.Scope(f.outer.ID(), f.outer.Nested())
	if !scoped.IsTarget(f.right.id) || scoped.IsTarget(f.left.id) {
		t.Error("IsTarget does not match the target")
	}
}

func TestEventHandle_BroadcastsNonPositional(t *testing.T) {
	f := newFixture()
	f.layout()

	f.dispatch(core.KeyEvent{Key: "a", Down: true})
	for name, b := range map[string]*box{"left": f.left, "right": f.right, "nested": f.nested} {
		if len(b.events) != 1 {
			t.Errorf("%s got %d events, want 1", name, len(b.events))
		}
	}
}

func TestEventHandle_SetActiveQueuesActiveChange(t *testing.T) {
	f := newFixture()
	f.layout()

	h := core.NewEventHandle(f.info, f.env, f.outer).Scope(f.outer.ID(), f.outer.Nested())
	h.SetActive(f.left.id, true)
	h.SetActive(f.left.id, true)
	if got := h.Drain(); len(got) != 0 {
		t.Fatalf("queued %v, want nothing", got)
	}
	h.SetActive(f.right.id, true)
	want := []core.QueuedEvent{{Target: f.ref(f.outer, f.left.id), Event: core.ActiveChangeEvent{}}}
	if diff := cmp.Diff(want, h.Drain()); diff != "" {
		t.Errorf("queue mismatch (-want +got):\n%s", diff)
	}
	if got := h.Drain(); len(got) != 0 {
		t.Errorf("Drain did not clear the queue: %v", got)
	}
}

func TestEventHandle_HoverAndCursor(t *testing.T) {
	f := newFixture()
	f.layout()

	h := core.NewEventHandle(f.info, f.env, f.outer).Scope(f.outer.ID(), f.outer.Nested())
	p := graphics.Offset{X: 30, Y: 10}
	if !h.AddHover(f.left.id, p) {
		t.Error("first AddHover should report a new hover")
	}
	if h.AddHover(f.left.id, p) {
		t.Error("second AddHover should not report a new hover")
	}
	if !h.IsHovered(f.left.id) {
		t.Error("left not hovered")
	}
	h.SetCursor(core.CursorPointer)
	if f.window.cursor != core.CursorPointer {
		t.Errorf("cursor = %v, want pointer", f.window.cursor)
	}
	if got, want := h.GlobalToLocal(f.right.id, p), (graphics.Offset{X: 10, Y: 10}); got != want {
		t.Errorf("GlobalToLocal = %v, want %v", got, want)
	}
}

func TestRenderHandle_TranslatesNestedScenes(t *testing.T) {
	f := newFixture()
	f.layout()

	scene := graphics.NewScene()
	f.outer.Render(scene, core.NewRenderHandle(f.info, f.env, f.outer))

	want := []graphics.Op{
		graphics.FillOp{Rect: graphics.RectFromLTWH(0, 0, 40, 40), Color: graphics.ColorWhite},
		graphics.FillOp{Rect: graphics.RectFromLTWH(20, 0, 40, 40), Color: graphics.ColorGray},
		graphics.FillOp{Rect: graphics.RectFromLTWH(55, 25, 10, 10), Color: graphics.ColorBlack},
	}
	if diff := cmp.Diff(want, scene.Ops()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateHandle_InvalidateAndResize(t *testing.T) {
	f := newFixture()
	f.layout()

	h := core.NewUpdateHandle(f.info, f.env, f.outer)
	if f.outer.UpdateVars(false, h) {
		t.Error("UpdateVars requested a resize")
	}
	f.inner.resize = true
	if !f.outer.UpdateVars(false, h) {
		t.Error("nested resize request did not bubble up")
	}
	if f.inner.updates != 2 {
		t.Errorf("inner updated %d times, want 2", f.inner.updates)
	}

	scoped := h.Scope(f.outer.ID(), f.outer.Nested())
	scoped.Invalidate(f.right.id)
	scoped.Invalidate(wid(9))
	if diff := cmp.Diff([]graphics.Rect{graphics.RectFromLTWH(20, 0, 40, 40)}, f.window.invalidated); diff != "" {
		t.Errorf("invalidated mismatch (-want +got):\n%s", diff)
	}
	if f.window.redraws != 1 {
		t.Errorf("redraws = %d, want 1 for a widget without a rect", f.window.redraws)
	}
	scoped.RequestResize()
	if !h.NeedsResize() {
		t.Error("RequestResize on a scoped handle is not visible to the root handle")
	}
}
