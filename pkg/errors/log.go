package errors

import "log"

// LogHandler is an ErrorHandler that writes reports through a standard logger.
type LogHandler struct {
	// Logger receives the reports. Nil means log.Default().
	Logger *log.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

func (h *LogHandler) logger() *log.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return log.Default()
}

// HandleError logs an Error.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	l := h.logger()
	if !h.Verbose {
		l.Printf("[strata error] %s: %v", err.Op, err.Err)
		return
	}
	if err.Component != "" {
		l.Printf("[strata error] %s [%s] component=%s: %v", err.Op, err.Kind, err.Component, err.Err)
	} else {
		l.Printf("[strata error] %s [%s]: %v", err.Op, err.Kind, err.Err)
	}
	if err.StackTrace != "" {
		l.Printf("Stack trace:\n%s", err.StackTrace)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	l := h.logger()
	if err.Op != "" {
		l.Printf("[strata panic] %s: %v", err.Op, err.Value)
	} else {
		l.Printf("[strata panic] %v", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		l.Printf("Stack trace:\n%s", err.StackTrace)
	}
}

// HandleSchemaError logs a SchemaError.
func (h *LogHandler) HandleSchemaError(err *SchemaError) {
	if err == nil {
		return
	}
	h.logger().Printf("[strata schema] %s", err.Error())
}
