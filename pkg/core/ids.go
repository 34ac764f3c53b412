package core

import (
	"fmt"
	"sync/atomic"
)

// WidgetID addresses a widget within a component schema.
//
// Component identifies the schema and is fixed when the schema is
// registered. Widget is a dense, zero-based pre-order index: the root is 0
// and every widget, containers included, gets the next free index.
type WidgetID struct {
	Component uint32
	Widget    uint32
}

func (id WidgetID) String() string {
	return fmt.Sprintf("%d:%d", id.Component, id.Widget)
}

// RuntimeID identifies a live component instance. The zero value is never
// allocated and means "no instance".
type RuntimeID uint64

// NoRuntime is the zero RuntimeID.
const NoRuntime RuntimeID = 0

// RuntimeIDSource allocates RuntimeIDs monotonically. It is safe for
// concurrent use. Instances created earlier always receive smaller ids,
// which global position conversion relies on.
type RuntimeIDSource struct {
	last atomic.Uint64
}

// Next consumes and returns the next id.
func (s *RuntimeIDSource) Next() RuntimeID {
	return RuntimeID(s.last.Add(1))
}

var defaultRuntimeIDs RuntimeIDSource

// NextRuntimeID allocates from the process-wide source.
func NextRuntimeID() RuntimeID {
	return defaultRuntimeIDs.Next()
}

// WidgetRef addresses a widget inside a specific component instance.
type WidgetRef struct {
	Runtime RuntimeID
	Widget  WidgetID
}

func (r WidgetRef) String() string {
	return fmt.Sprintf("%d/%s", r.Runtime, r.Widget)
}
