package core

import (
	"sync"

	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/layout"
)

// Receiver is implemented by components that accept messages of type M
// through their CompHolder.
type Receiver[M any] interface {
	Receive(msg M)
}

// Slot is one nested component instance as seen by its owner.
type Slot interface {
	// Held returns the live component.
	Held() Component
	// Host is the holder widget the component is mounted in.
	Host() WidgetRef
	// FlushMessages delivers queued messages to the component.
	FlushMessages()
}

// CompHolder owns a live component and the queue of messages addressed to
// it. Messages may be sent from any goroutine; they are delivered on the
// driver goroutine right before the component's update phase.
type CompHolder[T Component, M any] struct {
	comp T
	host WidgetRef

	mu    sync.Mutex
	queue []M
}

// NewCompHolder mounts comp in the holder widget host.
func NewCompHolder[T Component, M any](host WidgetRef, comp T) *CompHolder[T, M] {
	return &CompHolder[T, M]{comp: comp, host: host}
}

// Component returns the held component.
func (c *CompHolder[T, M]) Component() T { return c.comp }

// Held returns the held component as a Component.
func (c *CompHolder[T, M]) Held() Component { return c.comp }

// Host returns the hosting holder widget.
func (c *CompHolder[T, M]) Host() WidgetRef { return c.host }

// Send queues msg for the held component.
func (c *CompHolder[T, M]) Send(msg M) {
	c.mu.Lock()
	c.queue = append(c.queue, msg)
	c.mu.Unlock()
}

// Pending returns the number of queued messages.
func (c *CompHolder[T, M]) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// FlushMessages delivers queued messages in send order. Messages for a
// component that is not a Receiver[M] are dropped.
func (c *CompHolder[T, M]) FlushMessages() {
	c.mu.Lock()
	msgs := c.queue
	c.queue = nil
	c.mu.Unlock()

	r, ok := any(c.comp).(Receiver[M])
	if !ok {
		return
	}
	for _, m := range msgs {
		r.Receive(m)
	}
}

// Replace swaps in a new component. The old instance's rectangles and any
// active or hover state pointing into it are purged from info, and pending
// messages are dropped.
func (c *CompHolder[T, M]) Replace(info *WidgetInfo, comp T) T {
	old := c.comp
	if info != nil {
		info.RemoveRuntimeID(old.ID())
	}
	c.comp = comp
	c.mu.Lock()
	c.queue = nil
	c.mu.Unlock()
	return old
}

// Dispose tears the held component down.
func (c *CompHolder[T, M]) Dispose(info *WidgetInfo) {
	if info != nil {
		info.RemoveRuntimeID(c.comp.ID())
	}
	c.mu.Lock()
	c.queue = nil
	c.mu.Unlock()
}

// Slots is the MultiComponent over a list of nested instances. Calls are
// routed by RuntimeID; calls for unknown ids are no-ops.
type Slots []Slot

func (s Slots) find(rid RuntimeID) Component {
	for _, slot := range s {
		if c := slot.Held(); c != nil && c.ID() == rid {
			return c
		}
	}
	return nil
}

func (s Slots) Root(rid RuntimeID) (WidgetID, bool) {
	if c := s.find(rid); c != nil {
		return c.Root(), true
	}
	return WidgetID{}, false
}

func (s Slots) UpdateVars(rid RuntimeID, force bool, h *UpdateHandle) bool {
	for _, slot := range s {
		if c := slot.Held(); c != nil && c.ID() == rid {
			slot.FlushMessages()
			return c.UpdateVars(force, h)
		}
	}
	return false
}

// UpdateAllVars updates every instance, flushing its messages first. It
// reports whether any of them needs a resize.
func (s Slots) UpdateAllVars(force bool, h *UpdateHandle) bool {
	resize := false
	for _, slot := range s {
		c := slot.Held()
		if c == nil {
			continue
		}
		slot.FlushMessages()
		if c.UpdateVars(force, h) {
			resize = true
		}
	}
	return resize
}

func (s Slots) Resize(rid RuntimeID, c layout.Constraints, h *ResizeHandle) graphics.Size {
	if comp := s.find(rid); comp != nil {
		return comp.Resize(c, h)
	}
	return graphics.Size{}
}

func (s Slots) Render(rid RuntimeID, scene *graphics.Scene, h *RenderHandle) {
	if comp := s.find(rid); comp != nil {
		comp.Render(scene, h)
	}
}

func (s Slots) Event(rid RuntimeID, e Event, h *EventHandle) {
	if comp := s.find(rid); comp != nil {
		comp.Event(e, h)
	}
}

// Parent returns the host widget for a nested root, and otherwise asks each
// instance in order. The first answer wins.
func (s Slots) Parent(ref WidgetRef) (WidgetRef, bool) {
	for _, slot := range s {
		c := slot.Held()
		if c == nil {
			continue
		}
		if ref.Runtime == c.ID() && ref.Widget == c.Root() {
			return slot.Host(), true
		}
		if p, ok := c.Parent(ref); ok {
			return p, true
		}
	}
	return WidgetRef{}, false
}

// Lookup asks each instance in order. The first answer wins.
func (s Slots) Lookup(name string) (WidgetRef, bool) {
	for _, slot := range s {
		if c := slot.Held(); c != nil {
			if ref, ok := c.Lookup(name); ok {
				return ref, true
			}
		}
	}
	return WidgetRef{}, false
}
