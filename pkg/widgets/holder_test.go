package widgets_test

import (
	"testing"

	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/layout"
	"github.com/go-drift/strata/pkg/widgets"
)

const nestedRuntime core.RuntimeID = 2

func nestedID(i uint32) core.WidgetID {
	return core.WidgetID{Component: 3, Widget: i}
}

func TestHolder_EmptyIsInert(t *testing.T) {
	holder := widgets.NewHolder(wid(2))
	stack := widgets.NewStack(wid(0), widgets.AxisVertical, 0, fixed(wid(1), 10, 10), holder)
	tester := pump(t, graphics.Size{Width: 100, Height: 100}, loose(stack), nil)

	if _, ok := holder.Runtime(); ok {
		t.Error("new holder reports a runtime")
	}
	if got := rectOf(tester, wid(2)).Size(); !got.IsZero() {
		t.Errorf("empty holder size = %v, want zero", got)
	}
	if err := tester.TapAt(graphics.Offset{X: 5, Y: 10}); err != nil {
		t.Fatal(err)
	}
	if tester.Scene().Len() != 0 {
		t.Errorf("expected nothing painted, got %d ops", tester.Scene().Len())
	}
}

func TestHolder_ForwardsToNested(t *testing.T) {
	presses := 0
	style := testButtonStyle()
	style.Padding = layout.EdgeInsets{}
	button := widgets.NewButton(nestedID(0), fixed(nestedID(1), 20, 20), style, func() { presses++ })
	nested := &tree{Base: core.NewBase(nestedRuntime, button, map[string]core.WidgetID{"inner": nestedID(0)}, nil)}

	holder := widgets.NewHolder(wid(2))
	if !holder.SetRuntime(nestedRuntime) {
		t.Fatal("SetRuntime reported no change")
	}
	if holder.SetRuntime(nestedRuntime) {
		t.Error("SetRuntime with the same id reported a change")
	}
	host := core.WidgetRef{Runtime: rootRuntime, Widget: wid(2)}
	slots := core.Slots{core.NewCompHolder[*tree, struct{}](host, nested)}

	//	stack (0)
	//	  fixed 10x10 (1)   5,0
	//	  holder (2)        0,10 20x20
	//	    button (3:0)    0,10 20x20
	stack := widgets.NewStack(wid(0), widgets.AxisVertical, 0, fixed(wid(1), 10, 10), holder)
	tester := pump(t, graphics.Size{Width: 100, Height: 100}, loose(stack), slots)

	want := graphics.RectFromLTWH(0, 10, 20, 20)
	if got := rectOf(tester, wid(2)); got != want {
		t.Errorf("holder rect = %v, want %v", got, want)
	}
	inner := core.WidgetRef{Runtime: nestedRuntime, Widget: nestedID(0)}
	if got := tester.Info().RectOf(inner); got != want {
		t.Errorf("nested root rect = %v, want %v", got, want)
	}
	if got := tester.RectOf("inner"); got != want {
		t.Errorf("RectOf(inner) = %v, want %v", got, want)
	}

	ops := fills(tester.Scene())
	if len(ops) != 1 || ops[0].Rect != want {
		t.Errorf("nested fill ops = %+v, want one at %v", ops, want)
	}

	if err := tester.TapAt(graphics.Offset{X: 10, Y: 20}); err != nil {
		t.Fatal(err)
	}
	if presses != 1 {
		t.Errorf("nested button pressed %d times, want 1", presses)
	}
}

func TestHolder_Unmount(t *testing.T) {
	nested := &tree{Base: core.NewBase(nestedRuntime, fixed(nestedID(0), 20, 20), nil, nil)}
	holder := widgets.NewHolder(wid(1))
	holder.SetRuntime(nestedRuntime)
	host := core.WidgetRef{Runtime: rootRuntime, Widget: wid(1)}
	slots := core.Slots{core.NewCompHolder[*tree, struct{}](host, nested)}
	tester := pump(t, graphics.Size{Width: 100, Height: 100}, loose(holder), slots)

	if got := rectOf(tester, wid(1)).Size(); got != (graphics.Size{Width: 20, Height: 20}) {
		t.Fatalf("mounted holder size = %v, want 20x20", got)
	}

	if !holder.SetRuntime(core.NoRuntime) {
		t.Fatal("SetRuntime(NoRuntime) reported no change")
	}
	tester.Runtime().RequestResize()
	if err := tester.Pump(); err != nil {
		t.Fatal(err)
	}
	if got := rectOf(tester, wid(1)).Size(); !got.IsZero() {
		t.Errorf("unmounted holder size = %v, want zero", got)
	}
}
