package schema_test

import (
	"testing"

	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/schema"
	stratatest "github.com/go-drift/strata/pkg/testing"
	"github.com/go-drift/strata/pkg/widgets"
)

// mono measures every rune as 10 wide and every line as 20 high.
type mono struct{}

func (mono) Advance(text string, _ graphics.TextStyle) float64 {
	return float64(len([]rune(text))) * 10
}

func (mono) Metrics(graphics.TextStyle) (float64, float64) { return 20, 15 }

func instantiate(t *testing.T, reg *schema.Registry, rid core.RuntimeID, src string, opts ...schema.Option) *schema.Instance {
	t.Helper()
	inst, err := schema.Instantiate(mustCompile(t, reg, src), rid, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return inst
}

func mount(t *testing.T, root core.Component) *stratatest.Tester {
	t.Helper()
	tester := stratatest.NewTesterWithT(t)
	tester.SetMeasurer(mono{})
	if err := tester.PumpComponent(root); err != nil {
		t.Fatal(err)
	}
	return tester
}

func textOf(t *testing.T, inst *schema.Instance, name string) string {
	t.Helper()
	w, ok := inst.Widget(name)
	if !ok {
		t.Fatalf("no widget named %q", name)
	}
	text, ok := w.(*widgets.Text)
	if !ok {
		t.Fatalf("%q is a %T, not a text", name, w)
	}
	return text.Content()
}
