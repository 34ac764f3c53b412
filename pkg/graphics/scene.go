package graphics

import "image"

// BlendMode selects how a paint operation combines with what is below it.
type BlendMode int

const (
	// BlendSrcOver paints the source over the destination.
	BlendSrcOver BlendMode = iota
	// BlendScreen brightens the destination by the source, used for
	// washed-out overlays such as disabled states.
	BlendScreen
)

// String returns a human-readable representation of the blend mode.
func (b BlendMode) String() string {
	switch b {
	case BlendScreen:
		return "screen"
	default:
		return "src_over"
	}
}

// Op is a single recorded paint command. Ops are immutable values; a
// translated copy is produced when a scene is appended to another.
type Op interface {
	// Bounds returns the area the op paints, in scene coordinates.
	Bounds() Rect
	translate(o Offset) Op
}

// FillOp fills a (optionally rounded) rectangle with a solid color.
type FillOp struct {
	Rect   Rect
	Radius float64
	Color  Color
	Blend  BlendMode
}

// Bounds implements Op.
func (f FillOp) Bounds() Rect { return f.Rect }

func (f FillOp) translate(o Offset) Op {
	f.Rect = f.Rect.Shift(o)
	return f
}

// TextOp draws laid-out text with its top-left corner at Origin.
type TextOp struct {
	Origin Offset
	Layout TextLayout
	Style  TextStyle
}

// Bounds implements Op.
func (t TextOp) Bounds() Rect { return RectFromOriginSize(t.Origin, t.Layout.Size) }

func (t TextOp) translate(o Offset) Op {
	t.Origin = t.Origin.Add(o)
	return t
}

// ImageOp draws an image scaled into Rect.
type ImageOp struct {
	Rect  Rect
	Image image.Image
}

// Bounds implements Op.
func (i ImageOp) Bounds() Rect { return i.Rect }

func (i ImageOp) translate(o Offset) Op {
	i.Rect = i.Rect.Shift(o)
	return i
}

// Scene is an ordered list of paint commands in local coordinates.
//
// Widgets paint into their own Scene at the origin; parents composite
// child scenes with [Scene.Append], which translates every command by the
// child's offset. No widget ever needs to know its ancestors' offsets.
type Scene struct {
	ops []Op
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// FillRect records a solid rectangle.
func (s *Scene) FillRect(r Rect, c Color) {
	s.ops = append(s.ops, FillOp{Rect: r, Color: c})
}

// FillRRect records a rounded rectangle with a uniform corner radius.
func (s *Scene) FillRRect(r Rect, radius float64, c Color) {
	s.ops = append(s.ops, FillOp{Rect: r, Radius: radius, Color: c})
}

// FillRectBlend records a rectangle using the given blend mode.
func (s *Scene) FillRectBlend(r Rect, radius float64, c Color, blend BlendMode) {
	s.ops = append(s.ops, FillOp{Rect: r, Radius: radius, Color: c, Blend: blend})
}

// DrawText records a text layout at origin.
func (s *Scene) DrawText(origin Offset, layout TextLayout, style TextStyle) {
	s.ops = append(s.ops, TextOp{Origin: origin, Layout: layout, Style: style})
}

// DrawImage records an image scaled into r.
func (s *Scene) DrawImage(r Rect, img image.Image) {
	if img == nil {
		return
	}
	s.ops = append(s.ops, ImageOp{Rect: r, Image: img})
}

// Append composites child into s translated by offset.
func (s *Scene) Append(child *Scene, offset Offset) {
	if child == nil {
		return
	}
	for _, op := range child.ops {
		s.ops = append(s.ops, op.translate(offset))
	}
}

// Ops returns the recorded commands. The slice must not be modified.
func (s *Scene) Ops() []Op {
	return s.ops
}

// Len returns the number of recorded commands.
func (s *Scene) Len() int {
	return len(s.ops)
}

// Bounds returns the union of all command bounds, or a zero Rect if empty.
func (s *Scene) Bounds() Rect {
	var out Rect
	for i, op := range s.ops {
		if i == 0 {
			out = op.Bounds()
			continue
		}
		out = out.Union(op.Bounds())
	}
	return out
}

// Reset clears the scene for reuse.
func (s *Scene) Reset() {
	s.ops = s.ops[:0]
}
