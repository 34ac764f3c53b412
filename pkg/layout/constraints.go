package layout

import (
	"fmt"
	"math"

	"github.com/go-drift/strata/pkg/graphics"
)

// Constraints is an immutable box of allowed sizes.
//
// Invariant: Min.Width <= Max.Width and Min.Height <= Max.Height, with no
// negative or NaN dimension. Max dimensions may be +Inf. Every method
// returns a value that satisfies the invariant.
type Constraints struct {
	Min graphics.Size
	Max graphics.Size
}

// Unbounded allows any size from zero to infinity on both axes.
var Unbounded = Constraints{Max: graphics.Size{Width: math.Inf(1), Height: math.Inf(1)}}

// NewConstraints returns constraints spanning min to max. Negative and NaN
// dimensions are clamped to zero first. It panics if min exceeds max on
// either axis: that is a programming error in the calling widget.
func NewConstraints(min, max graphics.Size) Constraints {
	min = sanitize(min)
	max = sanitize(max)
	if min.Width > max.Width || min.Height > max.Height {
		panic(fmt.Sprintf("layout: invalid constraints: min %vx%v exceeds max %vx%v",
			min.Width, min.Height, max.Width, max.Height))
	}
	return Constraints{Min: min, Max: max}
}

// Tight returns constraints that only allow size.
func Tight(size graphics.Size) Constraints {
	return NewConstraints(size, size)
}

// Loose returns constraints from zero up to size.
func Loose(size graphics.Size) Constraints {
	return NewConstraints(graphics.Size{}, size)
}

func sanitize(s graphics.Size) graphics.Size {
	return graphics.Size{Width: nonNegative(s.Width), Height: nonNegative(s.Height)}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// normalized restores the invariant after an arbitrary transformation by
// raising max to min where they crossed.
func normalized(min, max graphics.Size) Constraints {
	min = sanitize(min)
	max = sanitize(max)
	max.Width = math.Max(max.Width, min.Width)
	max.Height = math.Max(max.Height, min.Height)
	return Constraints{Min: min, Max: max}
}

// GetMin returns the minimum size.
func (c Constraints) GetMin() graphics.Size { return c.Min }

// GetMax returns the maximum size.
func (c Constraints) GetMax() graphics.Size { return c.Max }

// IsTight reports whether only a single size is allowed.
func (c Constraints) IsTight() bool {
	return c.Min == c.Max
}

// HasBoundedWidth reports whether the maximum width is finite.
func (c Constraints) HasBoundedWidth() bool {
	return !math.IsInf(c.Max.Width, 1)
}

// HasBoundedHeight reports whether the maximum height is finite.
func (c Constraints) HasBoundedHeight() bool {
	return !math.IsInf(c.Max.Height, 1)
}

// Deset shrinks both bounds by the insets, the way a container reserves
// room for its padding before laying out a child. Min is floored at zero
// and an infinite max stays infinite.
func (c Constraints) Deset(insets EdgeInsets) Constraints {
	h, v := insets.Horizontal(), insets.Vertical()
	return normalized(
		graphics.Size{Width: c.Min.Width - h, Height: c.Min.Height - v},
		graphics.Size{Width: c.Max.Width - h, Height: c.Max.Height - v},
	)
}

// Inset grows both bounds by the insets. It undoes Deset whenever Deset did
// not have to floor min at zero.
func (c Constraints) Inset(insets EdgeInsets) Constraints {
	h, v := insets.Horizontal(), insets.Vertical()
	return normalized(
		graphics.Size{Width: c.Min.Width + h, Height: c.Min.Height + v},
		graphics.Size{Width: c.Max.Width + h, Height: c.Max.Height + v},
	)
}

// MinClamp raises the minimum to at least size. Max follows where needed.
func (c Constraints) MinClamp(size graphics.Size) Constraints {
	return normalized(
		graphics.Size{Width: math.Max(c.Min.Width, size.Width), Height: math.Max(c.Min.Height, size.Height)},
		c.Max,
	)
}

// MaxClamp lowers the maximum to at most size. Min follows where needed.
func (c Constraints) MaxClamp(size graphics.Size) Constraints {
	size = sanitize(size)
	max := graphics.Size{Width: math.Min(c.Max.Width, size.Width), Height: math.Min(c.Max.Height, size.Height)}
	min := graphics.Size{Width: math.Min(c.Min.Width, max.Width), Height: math.Min(c.Min.Height, max.Height)}
	return Constraints{Min: min, Max: max}
}

// Map applies fn to both bounds.
func (c Constraints) Map(fn func(graphics.Size) graphics.Size) Constraints {
	return normalized(fn(c.Min), fn(c.Max))
}

// Constrain returns the size closest to size that fits the box.
func (c Constraints) Constrain(size graphics.Size) graphics.Size {
	return graphics.Size{
		Width:  clamp(size.Width, c.Min.Width, c.Max.Width),
		Height: clamp(size.Height, c.Min.Height, c.Max.Height),
	}
}

// MaxAdvance returns the maximum width as a text-wrapping limit. The
// second result is false when the width is unbounded.
func (c Constraints) MaxAdvance() (float32, bool) {
	if !c.HasBoundedWidth() {
		return 0, false
	}
	return float32(c.Max.Width), true
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (c Constraints) String() string {
	return fmt.Sprintf("Constraints(%vx%v .. %vx%v)", c.Min.Width, c.Min.Height, c.Max.Width, c.Max.Height)
}
