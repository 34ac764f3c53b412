package widgets

import (
	"image"

	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/layout"
)

// Image paints a bitmap scaled to its laid-out size.
//
// The natural size is the source's pixel size unless Width or Height
// override it; the result is then clamped to the constraints.
type Image struct {
	id     core.WidgetID
	source image.Image
	// Width overrides the natural width if non-zero.
	Width float64
	// Height overrides the natural height if non-zero.
	Height float64

	size graphics.Size
}

// NewImage creates an image leaf. source may be nil.
func NewImage(id core.WidgetID, source image.Image) *Image {
	return &Image{id: id, source: source}
}

func (i *Image) ID() core.WidgetID { return i.id }

// Source returns the bitmap.
func (i *Image) Source() image.Image { return i.source }

// SetSource replaces the bitmap and reports whether its natural size
// changed.
func (i *Image) SetSource(src image.Image) bool {
	before := i.naturalSize()
	i.source = src
	return i.naturalSize() != before
}

func (i *Image) naturalSize() graphics.Size {
	var size graphics.Size
	if i.source != nil {
		b := i.source.Bounds()
		size = graphics.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
	}
	if i.Width > 0 {
		size.Width = i.Width
	}
	if i.Height > 0 {
		size.Height = i.Height
	}
	return size
}

func (i *Image) Resize(c layout.Constraints, _ *core.ResizeHandle) graphics.Size {
	i.size = c.Constrain(i.naturalSize())
	return i.size
}

func (i *Image) Render(scene *graphics.Scene, _ *core.RenderHandle) {
	if i.source == nil || i.size.IsZero() {
		return
	}
	scene.DrawImage(graphics.RectFromOriginSize(graphics.Offset{}, i.size), i.source)
}

func (i *Image) Event(core.Event, *core.EventHandle) {}
