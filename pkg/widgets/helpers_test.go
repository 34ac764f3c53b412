package widgets_test

import (
	"testing"

	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/graphics"
	stratatest "github.com/go-drift/strata/pkg/testing"
	"github.com/go-drift/strata/pkg/widgets"
)

const rootRuntime core.RuntimeID = 1

func wid(i uint32) core.WidgetID {
	return core.WidgetID{Component: 1, Widget: i}
}

// tree is a component without bindings.
type tree struct {
	*core.Base
}

func (c *tree) UpdateVars(force bool, h *core.UpdateHandle) bool {
	return c.UpdateNested(force, h)
}

// mono measures every rune as 10 wide and every line as 20 high.
type mono struct{}

func (mono) Advance(text string, _ graphics.TextStyle) float64 {
	return float64(len([]rune(text))) * 10
}

func (mono) Metrics(graphics.TextStyle) (float64, float64) { return 20, 15 }

// fixed is a leaf with a preferred size.
func fixed(id core.WidgetID, width, height float64) *widgets.Image {
	img := widgets.NewImage(id, nil)
	img.Width, img.Height = width, height
	return img
}

// loose wraps child in a single-child vertical stack so it is laid out
// with loose constraints instead of the window's tight ones. The wrapper
// always takes id 100.
func loose(child core.Widget) core.Widget {
	return widgets.NewStack(wid(100), widgets.AxisVertical, 0, child)
}

func pump(t *testing.T, size graphics.Size, root core.Widget, nested core.MultiComponent) *stratatest.Tester {
	t.Helper()
	tester := stratatest.NewTesterWithT(t)
	tester.SetSize(size)
	tester.SetMeasurer(mono{})
	comp := &tree{Base: core.NewBase(rootRuntime, root, nil, nested)}
	if err := tester.PumpComponent(comp); err != nil {
		t.Fatal(err)
	}
	return tester
}

func rectOf(tester *stratatest.Tester, id core.WidgetID) graphics.Rect {
	return tester.Info().Rect(rootRuntime, id)
}

func fills(scene *graphics.Scene) []graphics.FillOp {
	var out []graphics.FillOp
	for _, op := range scene.Ops() {
		if f, ok := op.(graphics.FillOp); ok {
			out = append(out, f)
		}
	}
	return out
}
