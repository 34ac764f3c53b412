package widgets

import (
	"fmt"
	"math"

	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/layout"
)

// Axis represents the layout direction.
type Axis int

const (
	// AxisHorizontal lays children out left to right.
	AxisHorizontal Axis = iota
	// AxisVertical lays children out top to bottom.
	AxisVertical
)

// String returns a human-readable representation of the axis.
func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Stack lays its children out one after another along an axis.
//
// # Sizing Behavior
//
// Children are measured in order. Child i may use up to remaining/(N-i) of
// the main axis, where remaining starts as the maximum extent minus all
// spacing and shrinks by each measured child, so a child that takes less
// than its share leaves more for later siblings. Every child may use the
// full cross axis.
//
// The stack is as long as its children plus spacing and as thick as its
// thickest child. Children are centered on the cross axis.
type Stack struct {
	id       core.WidgetID
	axis     Axis
	spacing  float64
	children []core.Widget
}

// NewStack creates a stack of children.
func NewStack(id core.WidgetID, axis Axis, spacing float64, children ...core.Widget) *Stack {
	return &Stack{id: id, axis: axis, spacing: math.Max(spacing, 0), children: children}
}

func (s *Stack) ID() core.WidgetID       { return s.id }
func (s *Stack) Children() []core.Widget { return s.children }

// Axis returns the main axis.
func (s *Stack) Axis() Axis { return s.axis }

// Spacing returns the gap between adjacent children.
func (s *Stack) Spacing() float64 { return s.spacing }

func (s *Stack) mainAxis(size graphics.Size) float64 {
	if s.axis == AxisHorizontal {
		return size.Width
	}
	return size.Height
}

func (s *Stack) crossAxis(size graphics.Size) float64 {
	if s.axis == AxisHorizontal {
		return size.Height
	}
	return size.Width
}

func (s *Stack) makeSize(main, cross float64) graphics.Size {
	if s.axis == AxisHorizontal {
		return graphics.Size{Width: main, Height: cross}
	}
	return graphics.Size{Width: cross, Height: main}
}

func (s *Stack) makeOffset(main, cross float64) graphics.Offset {
	if s.axis == AxisHorizontal {
		return graphics.Offset{X: main, Y: cross}
	}
	return graphics.Offset{X: cross, Y: main}
}

func (s *Stack) Resize(c layout.Constraints, h *core.ResizeHandle) graphics.Size {
	n := len(s.children)
	if n == 0 {
		return c.Constrain(graphics.Size{})
	}
	totalSpacing := s.spacing * float64(n-1)
	maxCross := s.crossAxis(c.Max)
	remaining := math.Max(s.mainAxis(c.Max)-totalSpacing, 0)

	sizes := make([]graphics.Size, n)
	mainSize, crossSize := totalSpacing, 0.0
	for i, child := range s.children {
		share := remaining / float64(n-i)
		size := h.LayoutChild(child, graphics.Offset{}, layout.Loose(s.makeSize(share, maxCross)))
		sizes[i] = size
		remaining = math.Max(remaining-s.mainAxis(size), 0)
		mainSize += s.mainAxis(size)
		crossSize = math.Max(crossSize, s.crossAxis(size))
	}

	cursor := 0.0
	for i, child := range s.children {
		cross := (crossSize - s.crossAxis(sizes[i])) / 2
		h.PlaceChild(child.ID(), s.makeOffset(cursor, cross))
		cursor += s.mainAxis(sizes[i]) + s.spacing
	}
	return c.Constrain(s.makeSize(mainSize, crossSize))
}

func (s *Stack) Render(scene *graphics.Scene, h *core.RenderHandle) {
	h.RenderChildren(scene, s.id, s.children)
}

func (s *Stack) Event(e core.Event, h *core.EventHandle) {
	h.Propagate(e, s.children)
}
