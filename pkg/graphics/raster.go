package graphics

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/go-drift/strata/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// maxRasterDimension bounds software surfaces to keep allocations sane.
const maxRasterDimension = 8192

// Rasterizer paints scenes into RGBA images. It is the bundled software
// backend used by snapshots and the CLI; text is drawn with Face at its
// native size.
type Rasterizer struct {
	Face font.Face
}

// Rasterize paints scene onto a new surface of the given size using the
// default bitmap face.
func Rasterize(scene *Scene, size Size, background Color) (*image.RGBA, error) {
	r := Rasterizer{Face: basicfont.Face7x13}
	return r.Rasterize(scene, size, background)
}

// Rasterize paints scene onto a new surface of the given size.
func (r Rasterizer) Rasterize(scene *Scene, size Size, background Color) (*image.RGBA, error) {
	if !size.IsFinite() || size.Width < 0 || size.Height < 0 ||
		size.Width > maxRasterDimension || size.Height > maxRasterDimension {
		return nil, &errors.Error{
			Op:   "graphics.Rasterize",
			Kind: errors.KindInit,
			Err:  fmt.Errorf("invalid surface size %vx%v", size.Width, size.Height),
		}
	}
	w, h := int(math.Ceil(size.Width)), int(math.Ceil(size.Height))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(background.NRGBA()), image.Point{}, draw.Src)

	face := r.Face
	if face == nil {
		face = basicfont.Face7x13
	}
	if scene == nil {
		return dst, nil
	}
	for _, op := range scene.Ops() {
		switch op := op.(type) {
		case FillOp:
			fill(dst, op)
		case TextOp:
			drawText(dst, face, op)
		case ImageOp:
			draw.BiLinear.Scale(dst, pixelRect(op.Rect), op.Image, op.Image.Bounds(), draw.Over, nil)
		}
	}
	return dst, nil
}

func pixelRect(r Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Left)), int(math.Floor(r.Top)),
		int(math.Ceil(r.Right)), int(math.Ceil(r.Bottom)),
	)
}

func fill(dst *image.RGBA, op FillOp) {
	bounds := pixelRect(op.Rect).Intersect(dst.Bounds())
	if bounds.Empty() {
		return
	}
	if op.Blend == BlendScreen {
		var mask *image.Alpha
		if op.Radius > 0 {
			mask = image.NewAlpha(dst.Bounds())
			z := vector.NewRasterizer(dst.Bounds().Dx(), dst.Bounds().Dy())
			roundedRect(z, op.Rect, op.Radius)
			z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
		}
		screen(dst, bounds, op.Color, mask)
		return
	}
	src := image.NewUniform(op.Color.NRGBA())
	if op.Radius <= 0 {
		draw.Draw(dst, bounds, src, image.Point{}, draw.Over)
		return
	}
	z := vector.NewRasterizer(dst.Bounds().Dx(), dst.Bounds().Dy())
	roundedRect(z, op.Rect, op.Radius)
	z.DrawOp = draw.Over
	z.Draw(dst, dst.Bounds(), src, image.Point{})
}

func roundedRect(z *vector.Rasterizer, r Rect, radius float64) {
	radius = math.Min(radius, math.Min(r.Width(), r.Height())/2)
	l, t := float32(r.Left), float32(r.Top)
	rt, b := float32(r.Right), float32(r.Bottom)
	rad := float32(radius)
	z.MoveTo(l+rad, t)
	z.LineTo(rt-rad, t)
	z.QuadTo(rt, t, rt, t+rad)
	z.LineTo(rt, b-rad)
	z.QuadTo(rt, b, rt-rad, b)
	z.LineTo(l+rad, b)
	z.QuadTo(l, b, l, b-rad)
	z.LineTo(l, t+rad)
	z.QuadTo(l, t, l+rad, t)
	z.ClosePath()
}

// screen applies 1-(1-s)(1-d) per channel, weighted by the source alpha
// and, when mask is set, by its coverage.
func screen(dst *image.RGBA, bounds image.Rectangle, c Color, mask *image.Alpha) {
	sr, sg, sb, sa := c.Components()
	alpha := float64(sa) / maxByte
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := alpha
			if mask != nil {
				if a *= float64(mask.AlphaAt(x, y).A) / maxByte; a == 0 {
					continue
				}
			}
			blend := func(d, s uint8) uint8 {
				df, sf := float64(d)/maxByte, float64(s)/maxByte
				out := 1 - (1-sf)*(1-df)
				return uint8(math.Round((df + (out-df)*a) * maxByte))
			}
			d := dst.RGBAAt(x, y)
			dst.SetRGBA(x, y, color.RGBA{
				R: blend(d.R, sr),
				G: blend(d.G, sg),
				B: blend(d.B, sb),
				A: d.A,
			})
		}
	}
}

func drawText(dst *image.RGBA, face font.Face, op TextOp) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(op.Style.Color.NRGBA()),
		Face: face,
	}
	ascent := face.Metrics().Ascent
	for i, line := range op.Layout.Lines {
		y := op.Origin.Y + float64(i)*op.Layout.LineHeight
		d.Dot = fixed.Point26_6{
			X: fixed.Int26_6(op.Origin.X * 64),
			Y: fixed.Int26_6(y*64) + ascent,
		}
		d.DrawString(line.Text)
	}
}
