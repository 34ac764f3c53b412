package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/testing/internal/testbed"
	"github.com/go-drift/strata/pkg/widgets"
)

var (
	red  = graphics.RGB(255, 0, 0)
	blue = graphics.RGB(0, 0, 255)
)

// pumpBoxes mounts a horizontal stack of two boxes in a 100x50 window:
//
//	stack (0)        0,0 100x50
//	  box (1) 20x10  0,15
//	  box (2) 30x40  30,0
func pumpBoxes(t *testing.T, first graphics.Color) *Tester {
	t.Helper()
	tester := NewTesterWithT(t)
	tester.SetSize(graphics.Size{Width: 100, Height: 50})
	stack := widgets.NewStack(box(0), widgets.AxisHorizontal, 10,
		testbed.NewBox(box(1), 20, 10, first),
		testbed.NewBox(box(2), 30, 40, blue),
	)
	if err := tester.PumpComponent(testbed.NewStatic(2, stack, nil)); err != nil {
		t.Fatal(err)
	}
	return tester
}

func fillOp(l, t, r, b float64, c graphics.Color) DisplayOp {
	return DisplayOp{Op: "fill", Params: map[string]any{
		"rect":  map[string]any{"left": l, "top": t, "right": r, "bottom": b},
		"color": serializeColor(c),
	}}
}

func TestCaptureSnapshot_Contents(t *testing.T) {
	tester := pumpBoxes(t, red)

	got := tester.CaptureSnapshot()
	want := &Snapshot{
		Layout: []LayoutNode{
			{Ref: "2/2:0", Rect: [4]float64{0, 0, 100, 50}},
			{Ref: "2/2:1", Rect: [4]float64{0, 15, 20, 10}},
			{Ref: "2/2:2", Rect: [4]float64{30, 0, 30, 40}},
		},
		DisplayOps: []DisplayOp{
			fillOp(0, 15, 20, 25, red),
			fillOp(30, 0, 60, 40, blue),
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestCaptureSnapshot_TextOps(t *testing.T) {
	tester, _ := newCounterTester(t)

	var texts []string
	for _, op := range tester.CaptureSnapshot().DisplayOps {
		if op.Op == "text" {
			texts = append(texts, op.Params["lines"].([]string)...)
		}
	}
	if diff := cmp.Diff([]string{"+", "0"}, texts); diff != "" {
		t.Errorf("text ops mismatch (-want +got):\n%s", diff)
	}
}

func TestCaptureSnapshot_BeforeMount(t *testing.T) {
	tester := NewTesterWithT(t)

	snap := tester.CaptureSnapshot()
	if snap == nil || len(snap.Layout) != 0 || len(snap.DisplayOps) != 0 {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
}

func TestSnapshot_Diff_Equal(t *testing.T) {
	a := pumpBoxes(t, red).CaptureSnapshot()
	b := pumpBoxes(t, red).CaptureSnapshot()

	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical trees, got:\n%s", diff)
	}
}

func TestSnapshot_Diff_Different(t *testing.T) {
	a := pumpBoxes(t, red).CaptureSnapshot()
	b := pumpBoxes(t, graphics.RGB(0, 255, 0)).CaptureSnapshot()

	if a.Diff(b) == "" {
		t.Error("expected diff for different colors")
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	t.Setenv(updateSnapshotsEnv, "")
	snap := pumpBoxes(t, red).CaptureSnapshot()

	path := filepath.Join(t.TempDir(), "testdata", "boxes.snapshot.json")
	if err := snap.UpdateFile(path); err != nil {
		t.Fatal(err)
	}
	snap.MatchesFile(t, path)
}

func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv(updateSnapshotsEnv, "")
	snap := pumpBoxes(t, red).CaptureSnapshot()

	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	snap.MatchesFile(sub, filepath.Join(t.TempDir(), "missing.json"))

	if !failed {
		t.Error("expected MatchesFile to fail for missing file")
	}
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv(updateSnapshotsEnv, "")
	path := filepath.Join(t.TempDir(), "snap.json")
	if err := pumpBoxes(t, red).CaptureSnapshot().UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	second := pumpBoxes(t, blue).CaptureSnapshot()
	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	second.MatchesFile(sub, path)

	if !errored {
		t.Error("expected MatchesFile to report error for mismatch")
	}
}

func TestSnapshot_UpdateMode(t *testing.T) {
	snap := pumpBoxes(t, red).CaptureSnapshot()
	path := filepath.Join(t.TempDir(), "update.snapshot.json")

	t.Setenv(updateSnapshotsEnv, "1")
	snap.MatchesFile(t, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

func TestSnapshot_RecordsInteraction(t *testing.T) {
	tester, _ := newCounterTester(t)
	if err := tester.PointerDown(tester.Find(ByName("increment")).Center()); err != nil {
		t.Fatal(err)
	}

	ref := core.WidgetRef{Runtime: 1, Widget: core.WidgetID{Component: testbed.CounterComponent, Widget: 1}}.String()
	for _, n := range tester.CaptureSnapshot().Layout {
		if n.Ref == ref {
			if !n.Active || !n.Hovered {
				t.Errorf("button node = %+v, want active and hovered", n)
			}
			return
		}
	}
	t.Errorf("no layout node for %s", ref)
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
