package core

import (
	"log"

	"github.com/go-drift/strata/pkg/graphics"
)

// Cursor is a pointer shape hint.
type Cursor int

const (
	// CursorDefault is the platform arrow.
	CursorDefault Cursor = iota
	// CursorPointer indicates a pressable target.
	CursorPointer
)

func (c Cursor) String() string {
	if c == CursorPointer {
		return "pointer"
	}
	return "default"
}

// Window is the native window collaborator. The runtime asks it to repaint,
// to change the cursor, and hands it each finished frame.
type Window interface {
	// Invalidate marks a window region for repaint.
	Invalidate(r graphics.Rect)
	// RequestRedraw asks for a full repaint.
	RequestRedraw()
	// SetCursor changes the pointer shape.
	SetCursor(c Cursor)
	// Present receives the scene of a completed frame.
	Present(scene *graphics.Scene)
}

// MessageFormatter is the localization collaborator. It is only consulted
// during the update phase, when a bound text argument changes.
type MessageFormatter interface {
	Format(key string, args map[string]any) string
}

// Env holds the per-window resources every phase handle borrows.
type Env struct {
	Window   Window
	Text     graphics.TextMeasurer
	Messages MessageFormatter
	Logger   *log.Logger
}

// Log returns the environment logger, defaulting to the standard logger.
func (e *Env) Log() *log.Logger {
	if e == nil || e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}

// Measurer returns the text measurer, defaulting to the bundled bitmap face.
func (e *Env) Measurer() graphics.TextMeasurer {
	if e == nil || e.Text == nil {
		return graphics.NewFaceMeasurer(nil)
	}
	return e.Text
}
