package engine

import (
	"sync"
	"time"

	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/errors"
	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/layout"
)

// defaultDeliveryRounds bounds how many times queued events may cause
// further queued events within one dispatch.
const defaultDeliveryRounds = 8

// Clock supplies the time used for frame timings.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Option configures a Runtime.
type Option func(*Runtime)

// WithFrameTrace records per-frame phase timings into buf.
func WithFrameTrace(buf *FrameTraceBuffer) Option {
	return func(r *Runtime) { r.trace = buf }
}

// WithClock replaces the wall clock used for frame timings.
func WithClock(c Clock) Option {
	return func(r *Runtime) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithDeliveryRounds overrides the number of queued-event delivery rounds
// run after each dispatch. Values below one are ignored.
func WithDeliveryRounds(n int) Option {
	return func(r *Runtime) {
		if n > 0 {
			r.rounds = n
		}
	}
}

// Runtime drives one component tree in one window.
//
// Each Frame runs the update, resize and render phases in that order;
// resize runs only when something asked for it. HandleEvent dispatches
// input through the tree, delivers the events widgets queued for each
// other, and then runs a frame.
//
// All phases run under a single lock, so a Runtime may be inspected from
// another goroutine (see NewDebugHandler) but never runs two phases at
// once.
type Runtime struct {
	mu sync.Mutex

	info  *core.WidgetInfo
	env   *core.Env
	root  core.Component
	size  graphics.Size
	scene *graphics.Scene

	frames      int
	needsResize bool
	rounds      int

	clock    Clock
	trace    *FrameTraceBuffer
	dispatch time.Duration
	queued   int
}

// New creates a runtime for root in a window of the given size. env may be
// nil for a headless runtime.
func New(root core.Component, env *core.Env, size graphics.Size, opts ...Option) *Runtime {
	if env == nil {
		env = &core.Env{}
	}
	r := &Runtime{
		info:   core.NewWidgetInfo(),
		env:    env,
		root:   root,
		size:   size,
		scene:  graphics.NewScene(),
		rounds: defaultDeliveryRounds,
		clock:  systemClock{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Info returns the position registry.
func (r *Runtime) Info() *core.WidgetInfo { return r.info }

// Env returns the shared environment.
func (r *Runtime) Env() *core.Env { return r.env }

// Root returns the root component.
func (r *Runtime) Root() core.Component { return r.root }

// RootRef addresses the root component's root widget.
func (r *Runtime) RootRef() core.WidgetRef {
	return core.WidgetRef{Runtime: r.root.ID(), Widget: r.root.Root()}
}

// Trace returns the frame trace buffer, or nil when tracing is off.
func (r *Runtime) Trace() *FrameTraceBuffer { return r.trace }

// Scene returns the scene produced by the last frame.
func (r *Runtime) Scene() *graphics.Scene {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scene
}

// Size returns the window size.
func (r *Runtime) Size() graphics.Size {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Frames returns the number of completed frames.
func (r *Runtime) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// SetWindowSize changes the window size. The next frame lays the tree out
// again even if the size is unchanged.
func (r *Runtime) SetWindowSize(size graphics.Size) {
	r.mu.Lock()
	r.size = size
	r.needsResize = true
	r.mu.Unlock()
}

// RequestResize forces a resize pass on the next frame.
func (r *Runtime) RequestResize() {
	r.mu.Lock()
	r.needsResize = true
	r.mu.Unlock()
}

// Frame runs one update, resize and render cycle and presents the scene.
// The first frame forces every binding to refresh and always lays out.
func (r *Runtime) Frame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frame()
}

func (r *Runtime) frame() {
	// A frame that panicked may have left rects half written.
	defer errors.RecoverWithCallback("engine.Frame", func(any) { r.needsResize = true })

	start := r.clock.Now()
	forced := r.frames == 0

	uh := core.NewUpdateHandle(r.info, r.env, r.root)
	changed := r.root.UpdateVars(forced, uh)
	updated := r.clock.Now()

	resized := forced || changed || r.needsResize || uh.NeedsResize()
	if resized {
		r.layout()
	}
	laidOut := r.clock.Now()

	scene := graphics.NewScene()
	r.root.Render(scene, core.NewRenderHandle(r.info, r.env, r.root))
	r.scene = scene
	rendered := r.clock.Now()

	if r.env.Window != nil {
		r.env.Window.Present(scene)
	}
	r.frames++

	if r.trace != nil {
		end := r.clock.Now()
		sample := FrameSample{
			Timestamp: start.UnixMilli(),
			FrameMs:   durationToMillis(end.Sub(start) + r.dispatch),
			Phases: FramePhaseTimings{
				DispatchMs: durationToMillis(r.dispatch),
				UpdateMs:   durationToMillis(updated.Sub(start)),
				LayoutMs:   durationToMillis(laidOut.Sub(updated)),
				RenderMs:   durationToMillis(rendered.Sub(laidOut)),
				PresentMs:  durationToMillis(end.Sub(rendered)),
			},
			Counts: FrameCounts{
				Ops:          scene.Len(),
				Hovered:      len(r.info.Hovered()),
				QueuedEvents: r.queued,
			},
			Flags: FrameFlags{Forced: forced, Resized: resized},
		}
		r.trace.Add(sample, end.Sub(start)+r.dispatch)
	}
	r.dispatch, r.queued = 0, 0
}

func (r *Runtime) layout() {
	r.root.Resize(layout.Tight(r.size), core.NewResizeHandle(r.info, r.env, r.root))
	window := graphics.RectFromOriginSize(graphics.Offset{}, r.size)
	r.info.ConvertToGlobalPositions(window, r.RootRef(), r.root)
	r.needsResize = false
}

// HandleEvent dispatches e through the tree and then runs a frame.
//
// Pointer moves first drop hovered widgets the pointer has left; each of
// them receives a HoverExitEvent. Events queued during dispatch are
// delivered to their targets after the recursive pass returns, for a
// bounded number of rounds. Panics raised by widgets are recovered and
// reported.
func (r *Runtime) HandleEvent(e core.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := r.clock.Now()
	r.handle(e)
	r.dispatch += r.clock.Now().Sub(start)
	r.frame()
}

func (r *Runtime) handle(e core.Event) {
	defer errors.Recover("engine.HandleEvent")

	h := core.NewEventHandle(r.info, r.env, r.root)
	if p, ok := e.(core.PointerEvent); ok && p.Phase == core.PointerMove {
		for _, ref := range r.info.RemoveUnHovered(p.Position) {
			h.Queue(ref, core.HoverExitEvent{})
		}
	}
	r.root.Event(e, h)
	r.deliver(h)
}

func (r *Runtime) deliver(h *core.EventHandle) {
	for range r.rounds {
		queued := h.Drain()
		if len(queued) == 0 {
			return
		}
		r.queued += len(queued)
		for _, q := range queued {
			r.root.Event(q.Event, h.WithTarget(q.Target))
		}
	}
	if rest := h.Drain(); len(rest) > 0 {
		r.env.Log().Printf("engine: dropped %d queued events after %d rounds", len(rest), r.rounds)
	}
}

// WidgetLayout is one widget's global rectangle and interaction state.
type WidgetLayout struct {
	Ref     core.WidgetRef
	Rect    graphics.Rect
	Active  bool
	Hovered bool
}

// Layout returns every positioned widget in RuntimeID, then widget index
// order.
func (r *Runtime) Layout() []WidgetLayout {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []WidgetLayout
	r.info.Each(func(ref core.WidgetRef, rect graphics.Rect) {
		out = append(out, WidgetLayout{
			Ref:     ref,
			Rect:    rect,
			Active:  r.info.IsActive(ref),
			Hovered: r.info.IsHovered(ref),
		})
	})
	return out
}
