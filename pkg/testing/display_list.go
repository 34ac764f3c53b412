package testing

import (
	"fmt"
	"math"

	"github.com/go-drift/strata/pkg/graphics"
)

// DisplayOp represents a serialized scene operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// serializeScene converts scene ops to their stable JSON form.
func serializeScene(scene *graphics.Scene) []DisplayOp {
	if scene == nil {
		return nil
	}
	ops := make([]DisplayOp, 0, scene.Len())
	for _, op := range scene.Ops() {
		ops = append(ops, serializeOp(op))
	}
	return ops
}

func serializeOp(op graphics.Op) DisplayOp {
	switch op := op.(type) {
	case graphics.FillOp:
		params := sortedMap("rect", serializeRect(op.Rect), "color", serializeColor(op.Color))
		if op.Radius != 0 {
			params["radius"] = round2(op.Radius)
		}
		if op.Blend != graphics.BlendSrcOver {
			params["blend"] = op.Blend.String()
		}
		return DisplayOp{Op: "fill", Params: params}
	case graphics.TextOp:
		lines := make([]string, len(op.Layout.Lines))
		for i, l := range op.Layout.Lines {
			lines[i] = l.Text
		}
		return DisplayOp{
			Op: "text",
			Params: sortedMap(
				"origin", sortedMap("x", round2(op.Origin.X), "y", round2(op.Origin.Y)),
				"lines", lines,
				"color", serializeColor(op.Style.Color),
				"fontSize", round2(op.Style.FontSize),
			),
		}
	case graphics.ImageOp:
		params := sortedMap("rect", serializeRect(op.Rect))
		if op.Image != nil {
			b := op.Image.Bounds()
			params["width"] = b.Dx()
			params["height"] = b.Dy()
		}
		return DisplayOp{Op: "image", Params: params}
	default:
		return DisplayOp{Op: fmt.Sprintf("%T", op), Params: sortedMap("bounds", serializeRect(op.Bounds()))}
	}
}

func serializeRect(r graphics.Rect) map[string]any {
	return sortedMap(
		"left", round2(r.Left),
		"top", round2(r.Top),
		"right", round2(r.Right),
		"bottom", round2(r.Bottom),
	)
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedMap creates a map from alternating key-value pairs. JSON encoding
// sorts the keys.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}
