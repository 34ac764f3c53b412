// Package core provides the runtime widget tree engine: widget addressing,
// the reactive Updateable cell, the WidgetInfo position registry, and the
// phase handles that widgets and components receive.
//
// # Addressing
//
// A WidgetID names a widget inside a component schema. Widget indexes are
// assigned in pre-order, so a parent's index is always smaller than its
// children's. A RuntimeID names a live instance of a schema, and a
// WidgetRef combines both into a globally addressable widget.
//
// # Frame protocol
//
// Each frame runs up to four phases, each with its own handle:
//
//	UpdateVars(force, *UpdateHandle)   // push changed variables into widgets
//	Resize(constraints, *ResizeHandle) // only when a resize was requested
//	Render(scene, *RenderHandle)
//	Event(e, *EventHandle)             // per input event
//
// Resize records rectangles relative to the parent. The driver then calls
// WidgetInfo.ConvertToGlobalPositions once, and render and event dispatch
// work with window coordinates from there on.
//
// # Nesting
//
// Components can host other components through holder widgets. A
// CompHolder owns a nested instance and its message queue, and Slots routes
// phase calls to the instance with a given RuntimeID:
//
//	counter := core.NewCompHolder[*Counter, CounterMsg](host, NewCounter(core.NextRuntimeID()))
//	counter.Send(Increment{})
//	nested := core.Slots{counter}
//
// Handles are created by the driver for one phase, re-scoped with Scope
// when entering a nested instance, and must not be retained.
package core
