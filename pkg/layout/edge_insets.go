package layout

import "github.com/go-drift/strata/pkg/graphics"

// EdgeInsets holds per-edge padding in logical pixels.
type EdgeInsets struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// EdgeInsetsAll returns insets with the same value on every edge.
func EdgeInsetsAll(v float64) EdgeInsets {
	return EdgeInsets{Left: v, Top: v, Right: v, Bottom: v}
}

// EdgeInsetsSymmetric returns insets with horizontal values on left and
// right and vertical values on top and bottom.
func EdgeInsetsSymmetric(horizontal, vertical float64) EdgeInsets {
	return EdgeInsets{Left: horizontal, Top: vertical, Right: horizontal, Bottom: vertical}
}

// Horizontal returns the total of the left and right insets.
func (e EdgeInsets) Horizontal() float64 {
	return e.Left + e.Right
}

// Vertical returns the total of the top and bottom insets.
func (e EdgeInsets) Vertical() float64 {
	return e.Top + e.Bottom
}

// TopLeft returns the offset of the content origin.
func (e EdgeInsets) TopLeft() graphics.Offset {
	return graphics.Offset{X: e.Left, Y: e.Top}
}

// Grow returns size enlarged by the insets on every edge.
func (e EdgeInsets) Grow(size graphics.Size) graphics.Size {
	return graphics.Size{Width: size.Width + e.Horizontal(), Height: size.Height + e.Vertical()}
}
