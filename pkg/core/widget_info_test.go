package core_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/graphics"
)

// parents is a ParentResolver backed by a map.
type parents map[core.WidgetRef]core.WidgetRef

func (p parents) Parent(ref core.WidgetRef) (core.WidgetRef, bool) {
	r, ok := p[ref]
	return r, ok
}

func ref(rid core.RuntimeID, i uint32) core.WidgetRef {
	return core.WidgetRef{Runtime: rid, Widget: wid(i)}
}

func TestWidgetInfo_RectDefaultsToZero(t *testing.T) {
	info := core.NewWidgetInfo()
	if got := info.Rect(1, wid(3)); got != (graphics.Rect{}) {
		t.Errorf("Rect on empty registry = %v, want zero", got)
	}
	info.PositionWidget(1, wid(3), graphics.RectFromLTWH(1, 2, 3, 4))
	for i := uint32(0); i < 3; i++ {
		if got := info.Rect(1, wid(i)); got != (graphics.Rect{}) {
			t.Errorf("Rect(%d) = %v, want zero filler", i, got)
		}
	}
	if got, want := info.Rect(1, wid(3)), graphics.RectFromLTWH(1, 2, 3, 4); got != want {
		t.Errorf("Rect(3) = %v, want %v", got, want)
	}
	if got := info.Rect(2, wid(3)); got != (graphics.Rect{}) {
		t.Errorf("Rect in other instance = %v, want zero", got)
	}
}

func TestWidgetInfo_ConvertToGlobalPositions(t *testing.T) {
	info := core.NewWidgetInfo()
	tree := parents{
		ref(1, 1): ref(1, 0),
		ref(1, 2): ref(1, 1),
		ref(2, 0): ref(1, 2),
		ref(2, 1): ref(2, 0),
	}
	info.PositionWidget(1, wid(0), graphics.RectFromLTWH(0, 0, 100, 100))
	info.PositionWidget(1, wid(1), graphics.RectFromLTWH(10, 10, 50, 50))
	info.PositionWidget(1, wid(2), graphics.RectFromLTWH(5, 5, 20, 20))
	info.PositionWidget(2, wid(0), graphics.RectFromLTWH(0, 0, 20, 20))
	info.PositionWidget(2, wid(1), graphics.RectFromLTWH(2, 3, 4, 4))
	// Orphan widget: no parent, dropped by conversion.
	info.PositionWidget(1, wid(5), graphics.RectFromLTWH(1, 1, 1, 1))

	win := graphics.RectFromLTWH(0, 0, 300, 200)
	want := map[core.WidgetRef]graphics.Rect{
		ref(1, 0): win,
		ref(1, 1): graphics.RectFromLTWH(10, 10, 50, 50),
		ref(1, 2): graphics.RectFromLTWH(15, 15, 20, 20),
		ref(2, 0): graphics.RectFromLTWH(15, 15, 20, 20),
		ref(2, 1): graphics.RectFromLTWH(17, 18, 4, 4),
		ref(1, 5): {},
	}
	for pass := 1; pass <= 2; pass++ {
		info.ConvertToGlobalPositions(win, ref(1, 0), tree)
		got := make(map[core.WidgetRef]graphics.Rect)
		for r := range want {
			got[r] = info.RectOf(r)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("pass %d: global rects mismatch (-want +got):\n%s", pass, diff)
		}
	}
	if got, want := info.ParentRect(ref(2, 1), tree), graphics.RectFromLTWH(15, 15, 20, 20); got != want {
		t.Errorf("ParentRect = %v, want %v", got, want)
	}
	if got := info.ParentRect(ref(1, 0), tree); got != (graphics.Rect{}) {
		t.Errorf("ParentRect of root = %v, want zero", got)
	}
}

func TestWidgetInfo_HostWithHigherRuntimeID(t *testing.T) {
	info := core.NewWidgetInfo()
	// Instance 1 is nested in a holder of instance 5.
	tree := parents{
		ref(5, 1): ref(5, 0),
		ref(1, 0): ref(5, 1),
		ref(1, 1): ref(1, 0),
	}
	info.PositionWidget(5, wid(0), graphics.RectFromLTWH(0, 0, 100, 100))
	info.PositionWidget(5, wid(1), graphics.RectFromLTWH(30, 40, 20, 20))
	info.PositionWidget(1, wid(0), graphics.RectFromLTWH(0, 0, 20, 20))
	info.PositionWidget(1, wid(1), graphics.RectFromLTWH(2, 3, 4, 4))

	info.ConvertToGlobalPositions(graphics.RectFromLTWH(0, 0, 100, 100), ref(5, 0), tree)
	want := map[core.WidgetRef]graphics.Rect{
		ref(5, 1): graphics.RectFromLTWH(30, 40, 20, 20),
		ref(1, 0): graphics.RectFromLTWH(30, 40, 20, 20),
		ref(1, 1): graphics.RectFromLTWH(32, 43, 4, 4),
	}
	got := make(map[core.WidgetRef]graphics.Rect)
	for r := range want {
		got[r] = info.RectOf(r)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("global rects mismatch (-want +got):\n%s", diff)
	}
}

func TestWidgetInfo_ParentCycleIsDropped(t *testing.T) {
	info := core.NewWidgetInfo()
	tree := parents{
		ref(1, 1): ref(1, 2),
		ref(1, 2): ref(1, 1),
	}
	info.PositionWidget(1, wid(1), graphics.RectFromLTWH(1, 1, 1, 1))
	info.PositionWidget(1, wid(2), graphics.RectFromLTWH(2, 2, 2, 2))
	info.ConvertToGlobalPositions(graphics.RectFromLTWH(0, 0, 10, 10), ref(1, 0), tree)
	for _, r := range []core.WidgetRef{ref(1, 1), ref(1, 2)} {
		if got := info.RectOf(r); got != (graphics.Rect{}) {
			t.Errorf("Rect(%v) = %v, want zero", r, got)
		}
	}
}

func TestWidgetInfo_PositionAfterConversionStartsFresh(t *testing.T) {
	info := core.NewWidgetInfo()
	tree := parents{ref(1, 1): ref(1, 0)}
	info.PositionWidget(1, wid(1), graphics.RectFromLTWH(10, 0, 5, 5))
	info.ConvertToGlobalPositions(graphics.RectFromLTWH(0, 0, 50, 50), ref(1, 0), tree)

	info.PositionWidget(1, wid(1), graphics.RectFromLTWH(20, 0, 5, 5))
	info.ConvertToGlobalPositions(graphics.RectFromLTWH(0, 0, 50, 50), ref(1, 0), tree)
	if got, want := info.Rect(1, wid(1)), graphics.RectFromLTWH(20, 0, 5, 5); got != want {
		t.Errorf("Rect = %v, want %v", got, want)
	}
}

func TestWidgetInfo_ResetPositions(t *testing.T) {
	info := core.NewWidgetInfo()
	info.PositionWidget(1, wid(0), graphics.RectFromLTWH(0, 0, 5, 5))
	info.ResetPositions()
	if got := info.Rect(1, wid(0)); got != (graphics.Rect{}) {
		t.Errorf("Rect after reset = %v, want zero", got)
	}
}

func TestWidgetInfo_SetActiveIsExclusive(t *testing.T) {
	info := core.NewWidgetInfo()
	a, b := ref(1, 1), ref(1, 2)

	if _, ok := info.SetActive(a, true); ok {
		t.Error("first activation displaced something")
	}
	if _, ok := info.SetActive(a, true); ok {
		t.Error("re-activating the active widget displaced it")
	}
	displaced, ok := info.SetActive(b, true)
	if !ok || displaced != a {
		t.Errorf("SetActive(b) displaced %v, %v; want %v, true", displaced, ok, a)
	}
	if info.IsActive(a) || !info.IsActive(b) {
		t.Error("b should be the only active widget")
	}

	info.SetActive(a, false)
	if !info.IsActive(b) {
		t.Error("releasing a non-active widget cleared the capture")
	}
	info.SetActive(b, false)
	if _, ok := info.Active(); ok {
		t.Error("capture not released")
	}
}

func TestWidgetInfo_RemoveUnHovered(t *testing.T) {
	info := core.NewWidgetInfo()
	a, b, c := ref(1, 0), ref(1, 1), ref(1, 2)
	info.PositionWidget(1, a.Widget, graphics.RectFromLTWH(0, 0, 100, 100))
	info.PositionWidget(1, b.Widget, graphics.RectFromLTWH(50, 50, 10, 10))
	info.PositionWidget(1, c.Widget, graphics.RectFromLTWH(0, 0, 20, 20))

	p := graphics.Offset{X: 55, Y: 55}
	for _, r := range []core.WidgetRef{a, b} {
		if !info.AddHover(r, p) {
			t.Fatalf("AddHover(%v) = false", r)
		}
	}
	if info.AddHover(c, p) {
		t.Error("AddHover outside the rect succeeded")
	}

	removed := info.RemoveUnHovered(graphics.Offset{X: 10, Y: 10})
	if diff := cmp.Diff([]core.WidgetRef{b}, removed); diff != "" {
		t.Errorf("removed mismatch (-want +got):\n%s", diff)
	}
	if !info.IsHovered(a) || info.IsHovered(b) {
		t.Errorf("hovered = %v, want [%v]", info.Hovered(), a)
	}
}

func TestWidgetInfo_RemoveRuntimeID(t *testing.T) {
	info := core.NewWidgetInfo()
	info.PositionWidget(1, wid(0), graphics.RectFromLTWH(0, 0, 10, 10))
	info.PositionWidget(2, wid(0), graphics.RectFromLTWH(0, 0, 10, 10))
	info.AddHover(ref(2, 0), graphics.Offset{X: 1, Y: 1})
	info.AddHover(ref(1, 0), graphics.Offset{X: 1, Y: 1})
	info.SetActive(ref(2, 0), true)

	info.RemoveRuntimeID(2)

	if got := info.Rect(2, wid(0)); got != (graphics.Rect{}) {
		t.Errorf("rect survived removal: %v", got)
	}
	if _, ok := info.Active(); ok {
		t.Error("active widget survived removal")
	}
	if diff := cmp.Diff([]core.WidgetRef{ref(1, 0)}, info.Hovered()); diff != "" {
		t.Errorf("hovered mismatch (-want +got):\n%s", diff)
	}
	if got := info.Rect(1, wid(0)); got.IsEmpty() {
		t.Error("unrelated instance was purged")
	}
}

func TestWidgetInfo_EachVisitsInOrder(t *testing.T) {
	info := core.NewWidgetInfo()
	info.PositionWidget(2, wid(0), graphics.RectFromLTWH(0, 0, 1, 1))
	info.PositionWidget(1, wid(2), graphics.RectFromLTWH(0, 0, 2, 2))
	info.PositionWidget(1, wid(0), graphics.RectFromLTWH(0, 0, 3, 3))

	var got []core.WidgetRef
	info.Each(func(r core.WidgetRef, _ graphics.Rect) {
		got = append(got, r)
	})
	want := []core.WidgetRef{ref(1, 0), ref(1, 2), ref(2, 0)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Each order mismatch (-want +got):\n%s", diff)
	}
}
