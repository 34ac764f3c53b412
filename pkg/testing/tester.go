package testing

import (
	"errors"
	"image"
	"sync"
	"testing"

	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/engine"
	strataerrors "github.com/go-drift/strata/pkg/errors"
	"github.com/go-drift/strata/pkg/graphics"
)

const (
	// DefaultTestWidth is the default logical width for the test surface.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default logical height for the test surface.
	DefaultTestHeight = 600
)

// ErrNoComponent is returned when input or frames are requested before
// PumpComponent.
var ErrNoComponent = errors.New("no component mounted")

// Tester drives a component tree headlessly.
//
// It runs the same engine.Runtime a real window does, but against a
// FakeWindow and a FakeClock, and records every panic the runtime
// recovers so tests can fail on them.
type Tester struct {
	env        *core.Env
	window     *FakeWindow
	clock      *FakeClock
	trace      *engine.FrameTraceBuffer
	size       graphics.Size
	background graphics.Color
	rt         *engine.Runtime

	recorder *panicRecorder
	prev     strataerrors.ErrorHandler
}

// NewTester creates a tester with the default test environment.
// Call Cleanup() when done, or use NewTesterWithT() instead.
func NewTester() *Tester {
	window := &FakeWindow{}
	t := &Tester{
		env:        &core.Env{Window: window},
		window:     window,
		clock:      NewFakeClock(),
		trace:      engine.NewFrameTraceBuffer(0, 0),
		size:       graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight},
		background: graphics.ColorWhite,
		prev:       strataerrors.DefaultHandler,
	}
	t.recorder = &panicRecorder{next: t.prev}
	strataerrors.SetHandler(t.recorder)
	return t
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T) *Tester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the global error handler.
func (t *Tester) Cleanup() {
	strataerrors.SetHandler(t.prev)
	t.rt = nil
}

// SetSize sets the logical surface size. After PumpComponent it resizes
// the window and the next frame lays out again.
func (t *Tester) SetSize(size graphics.Size) {
	t.size = size
	if t.rt != nil {
		t.rt.SetWindowSize(size)
	}
}

// SetMeasurer replaces the text measurer. Must be called before
// PumpComponent.
func (t *Tester) SetMeasurer(m graphics.TextMeasurer) {
	t.env.Text = m
}

// SetMessages installs a message formatter. Must be called before
// PumpComponent.
func (t *Tester) SetMessages(m core.MessageFormatter) {
	t.env.Messages = m
}

// SetBackground sets the color Image clears to.
func (t *Tester) SetBackground(c graphics.Color) {
	t.background = c
}

// Env returns the environment shared with the runtime.
func (t *Tester) Env() *core.Env { return t.env }

// Window returns the fake window.
func (t *Tester) Window() *FakeWindow { return t.window }

// Clock returns the fake clock used for frame timings.
func (t *Tester) Clock() *FakeClock { return t.clock }

// Runtime returns the runtime, or nil before PumpComponent.
func (t *Tester) Runtime() *engine.Runtime { return t.rt }

// PumpComponent mounts root, replacing any previous tree, and runs the
// first frame.
func (t *Tester) PumpComponent(root core.Component) error {
	t.window.Reset()
	t.trace = engine.NewFrameTraceBuffer(0, 0)
	t.rt = engine.New(root, t.env, t.size, engine.WithClock(t.clock), engine.WithFrameTrace(t.trace))
	return t.Pump()
}

// Pump runs one frame. It returns the last panic recovered during the
// frame, if any.
func (t *Tester) Pump() error {
	if t.rt == nil {
		return ErrNoComponent
	}
	before := t.recorder.count()
	t.rt.Frame()
	return t.recorder.since(before)
}

// Info returns the runtime's position registry.
func (t *Tester) Info() *core.WidgetInfo {
	if t.rt == nil {
		return nil
	}
	return t.rt.Info()
}

// Scene returns the scene of the last frame.
func (t *Tester) Scene() *graphics.Scene {
	if t.rt == nil {
		return graphics.NewScene()
	}
	return t.rt.Scene()
}

// Image rasterizes the last frame.
func (t *Tester) Image() (*image.RGBA, error) {
	return graphics.Rasterize(t.Scene(), t.size, t.background)
}

// Frames returns the recorded frame samples, oldest first.
func (t *Tester) Frames() []engine.FrameSample {
	return t.trace.Snapshot().Samples
}

// Panics returns every panic recovered since the tester was created.
func (t *Tester) Panics() []*strataerrors.PanicError {
	t.recorder.mu.Lock()
	defer t.recorder.mu.Unlock()
	return append([]*strataerrors.PanicError(nil), t.recorder.panics...)
}

// RectOf returns the global rectangle of the named widget, or a zero Rect
// when no widget has that name.
func (t *Tester) RectOf(name string) graphics.Rect {
	r := t.Find(ByName(name))
	if !r.Exists() {
		return graphics.Rect{}
	}
	return r.Rect()
}

// Find evaluates a finder against the mounted tree.
func (t *Tester) Find(finder Finder) FinderResult {
	if t.rt == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		refs:   finder.Evaluate(t.rt),
		finder: finder,
		info:   t.rt.Info(),
	}
}

// panicRecorder keeps recovered panics and forwards everything else.
type panicRecorder struct {
	mu     sync.Mutex
	panics []*strataerrors.PanicError
	next   strataerrors.ErrorHandler
}

func (r *panicRecorder) HandleError(err *strataerrors.Error) {
	if r.next != nil {
		r.next.HandleError(err)
	}
}

func (r *panicRecorder) HandlePanic(err *strataerrors.PanicError) {
	r.mu.Lock()
	r.panics = append(r.panics, err)
	r.mu.Unlock()
}

func (r *panicRecorder) HandleSchemaError(err *strataerrors.SchemaError) {
	if r.next != nil {
		r.next.HandleSchemaError(err)
	}
}

func (r *panicRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.panics)
}

func (r *panicRecorder) since(n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.panics) > n {
		return r.panics[len(r.panics)-1]
	}
	return nil
}
