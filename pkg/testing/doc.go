// Package testing drives strata component trees headlessly.
//
// # Quick Start
//
// Create a tester, pump a component, and make assertions:
//
//	func TestCounter(t *testing.T) {
//	    tester := stratatest.NewTesterWithT(t)
//	    if err := tester.PumpComponent(counter); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    if err := tester.Tap(stratatest.ByName("increment")); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    if got := tester.RectOf("count"); got.IsEmpty() {
//	        t.Error("count label was not laid out")
//	    }
//	}
//
// Every gesture runs the event phase followed by a full frame, exactly as
// a window would. Panics recovered by the runtime are returned as errors.
//
// # Snapshot Testing
//
// Capture and compare layout and scene snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/counter.snapshot.json")
//
// Update snapshots with:
//
//	STRATA_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Frame Timings
//
// Frame samples are timed with a FakeClock, so recorded phase durations
// are zero unless the test advances the clock.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import stratatest "github.com/go-drift/strata/pkg/testing"
package testing
