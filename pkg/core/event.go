package core

import "github.com/go-drift/strata/pkg/graphics"

// Event is delivered to widgets during the event phase.
type Event interface {
	event()
}

// PointerPhase identifies the kind of pointer event.
type PointerPhase int

const (
	// PointerDown is a button press.
	PointerDown PointerPhase = iota
	// PointerUp is a button release.
	PointerUp
	// PointerMove is a motion with or without buttons held.
	PointerMove
)

func (p PointerPhase) String() string {
	switch p {
	case PointerDown:
		return "down"
	case PointerUp:
		return "up"
	case PointerMove:
		return "move"
	default:
		return "unknown"
	}
}

// PointerEvent is a positional input event in window coordinates.
type PointerEvent struct {
	Phase    PointerPhase
	Position graphics.Offset
	Button   int
}

// ActiveChangeEvent tells the previous active widget that it lost pointer
// capture to another widget.
type ActiveChangeEvent struct{}

// HoverExitEvent tells a widget the pointer left its rectangle.
type HoverExitEvent struct{}

// KeyEvent is a keyboard event. It is not positional and is broadcast.
type KeyEvent struct {
	Key  string
	Down bool
}

// CustomEvent carries an application-defined payload between widgets,
// usually through EventHandle.Queue.
type CustomEvent struct {
	Name    string
	Payload any
}

func (PointerEvent) event()      {}
func (ActiveChangeEvent) event() {}
func (HoverExitEvent) event()    {}
func (KeyEvent) event()          {}
func (CustomEvent) event()       {}

// PositionOf returns the window position of a positional event.
func PositionOf(e Event) (graphics.Offset, bool) {
	if p, ok := e.(PointerEvent); ok {
		return p.Position, true
	}
	return graphics.Offset{}, false
}

// QueuedEvent is an event addressed to a specific widget, delivered after
// the current dispatch pass completes.
type QueuedEvent struct {
	Target WidgetRef
	Event  Event
}
