package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-drift/strata/pkg/graphics"
)

// SafeFloat wraps a float64 to handle Inf/NaN in JSON encoding.
type SafeFloat float64

func (f SafeFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 1) {
		return []byte(`"Infinity"`), nil
	}
	if math.IsInf(v, -1) {
		return []byte(`"-Infinity"`), nil
	}
	if math.IsNaN(v) {
		return []byte(`"NaN"`), nil
	}
	return json.Marshal(v)
}

// SafeSize is a JSON-safe version of graphics.Size.
type SafeSize struct {
	Width  SafeFloat `json:"width"`
	Height SafeFloat `json:"height"`
}

// SafeRect is a JSON-safe version of graphics.Rect.
type SafeRect struct {
	Left   SafeFloat `json:"left"`
	Top    SafeFloat `json:"top"`
	Width  SafeFloat `json:"width"`
	Height SafeFloat `json:"height"`
}

func safeRect(r graphics.Rect) SafeRect {
	return SafeRect{
		Left:   SafeFloat(r.Left),
		Top:    SafeFloat(r.Top),
		Width:  SafeFloat(r.Width()),
		Height: SafeFloat(r.Height()),
	}
}

// LayoutNode is one entry of the /layout response.
type LayoutNode struct {
	Runtime   uint64   `json:"runtime"`
	Component uint32   `json:"component"`
	Widget    uint32   `json:"widget"`
	Rect      SafeRect `json:"rect"`
	Active    bool     `json:"active,omitempty"`
	Hovered   bool     `json:"hovered,omitempty"`
}

// LayoutNodes converts a layout dump to its JSON shape.
func LayoutNodes(entries []WidgetLayout) []LayoutNode {
	nodes := make([]LayoutNode, len(entries))
	for i, e := range entries {
		nodes[i] = LayoutNode{
			Runtime:   uint64(e.Ref.Runtime),
			Component: e.Ref.Widget.Component,
			Widget:    e.Ref.Widget.Widget,
			Rect:      safeRect(e.Rect),
			Active:    e.Active,
			Hovered:   e.Hovered,
		}
	}
	return nodes
}

// NewDebugHandler serves runtime inspection endpoints:
//
//	/health  liveness
//	/debug   window size, frame count and root instance
//	/layout  global widget rectangles
//	/frames  recent frame timings (requires WithFrameTrace)
func NewDebugHandler(rt *Runtime) http.Handler {
	d := &debugHandler{rt: rt}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", d.health)
	mux.HandleFunc("/debug", d.debug)
	mux.HandleFunc("/layout", d.layout)
	mux.HandleFunc("/frames", d.frames)
	return mux
}

type debugHandler struct {
	rt *Runtime
}

func (d *debugHandler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (d *debugHandler) debug(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	size := d.rt.Size()
	info := struct {
		Window  SafeSize `json:"window"`
		Frames  int      `json:"frames"`
		Root    uint64   `json:"root"`
		Tracing bool     `json:"tracing"`
	}{
		Window:  SafeSize{Width: SafeFloat(size.Width), Height: SafeFloat(size.Height)},
		Frames:  d.rt.Frames(),
		Root:    uint64(d.rt.Root().ID()),
		Tracing: d.rt.Trace() != nil,
	}
	writeJSON(w, info)
}

func (d *debugHandler) layout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if d.rt.Frames() == 0 {
		http.Error(w, "no frame rendered yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, LayoutNodes(d.rt.Layout()))
}

func (d *debugHandler) frames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	trace := d.rt.Trace()
	if trace == nil {
		http.Error(w, "frame tracing disabled", http.StatusServiceUnavailable)
		return
	}
	resp := trace.Snapshot()
	applyFrameFilters(r, &resp)
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	// Encode to a buffer first so encoding errors can still set the status.
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func applyFrameFilters(r *http.Request, resp *FrameTimeline) {
	limit := 0
	if value := r.URL.Query().Get("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	var filters []func(FrameSample) bool
	if v := parseFloatQuery(r, "min_ms"); v > 0 {
		filters = append(filters, func(s FrameSample) bool { return s.FrameMs >= v })
	}
	if v := parseFloatQuery(r, "layout_ms"); v > 0 {
		filters = append(filters, func(s FrameSample) bool { return s.Phases.LayoutMs >= v })
	}
	if v := parseFloatQuery(r, "render_ms"); v > 0 {
		filters = append(filters, func(s FrameSample) bool { return s.Phases.RenderMs >= v })
	}
	if value := r.URL.Query().Get("resized"); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil && parsed {
			filters = append(filters, func(s FrameSample) bool { return s.Flags.Resized })
		}
	}

	if len(filters) > 0 {
		filtered := make([]FrameSample, 0, len(resp.Samples))
	outer:
		for _, sample := range resp.Samples {
			for _, f := range filters {
				if !f(sample) {
					continue outer
				}
			}
			filtered = append(filtered, sample)
		}
		resp.Samples = filtered
	}

	if limit > 0 && len(resp.Samples) > limit {
		resp.Samples = resp.Samples[len(resp.Samples)-limit:]
	}
}

func parseFloatQuery(r *http.Request, key string) float64 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// DebugServer serves NewDebugHandler over TCP.
type DebugServer struct {
	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// StartDebugServer listens on the loopback port (0 picks an ephemeral
// port) and serves the runtime's debug endpoints in the background.
func StartDebugServer(rt *Runtime, port int) (*DebugServer, error) {
	// Bind first to fail fast on port conflicts.
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("debug server listen: %w", err)
	}
	server := &http.Server{Handler: NewDebugHandler(rt)}
	s := &DebugServer{server: server, listener: listener}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			rt.Env().Log().Printf("debug server error: %v", err)
		}
	}()
	return s, nil
}

// Port returns the bound port.
func (s *DebugServer) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return 0
	}
	return s.listener.Addr().(*net.TCPAddr).Port
}

// Stop gracefully shuts the server down. It is safe to call twice.
func (s *DebugServer) Stop() {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	if server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}
