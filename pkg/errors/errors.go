// Package errors provides structured error handling for the strata runtime.
//
// Errors fall into three classes. Programmer errors (invalid constraints)
// panic at the call site. Schema errors are returned as [*SchemaError] from
// the schema loader and block startup. Resource failures are wrapped in
// [*Error] with [KindInit] and reported through the global [ErrorHandler].
// Lookup misses are never errors.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInit indicates a resource acquisition failure (font face, surface, files).
	KindInit
	// KindSchema indicates a malformed or inconsistent component schema.
	KindSchema
	// KindConfig indicates an invalid configuration, theme, or catalog file.
	KindConfig
	// KindRender indicates a rendering or rasterization error.
	KindRender
	// KindEvent indicates a failure while dispatching an event.
	KindEvent
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindInit:
		return "init"
	case KindSchema:
		return "schema"
	case KindConfig:
		return "config"
	case KindRender:
		return "render"
	case KindEvent:
		return "event"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Error represents a structured error raised by the runtime.
type Error struct {
	// Op is the operation that failed (e.g., "graphics.Rasterize").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Component is the component schema name, if applicable.
	Component string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("%s [%s] component=%s: %v", e.Op, e.Kind, e.Component, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "engine.HandleEvent").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// SchemaError reports an authoring mistake in a component schema.
type SchemaError struct {
	// Schema is the component schema name, or the file it was read from.
	Schema string
	// Path locates the offending node (e.g., "tree.children[2]").
	Path string
	// Msg describes the problem.
	Msg string
	// Err is the underlying decode error, if any.
	Err error
}

func (e *SchemaError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
	}
	switch {
	case e.Schema != "" && e.Path != "":
		return fmt.Sprintf("schema %s at %s: %s", e.Schema, e.Path, msg)
	case e.Schema != "":
		return fmt.Sprintf("schema %s: %s", e.Schema, msg)
	case e.Path != "":
		return fmt.Sprintf("schema at %s: %s", e.Path, msg)
	}
	return "schema: " + msg
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleSchemaError is called when a schema fails to load.
	HandleSchemaError(err *SchemaError)
}
