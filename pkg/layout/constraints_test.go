package layout_test

import (
	"math"
	"testing"

	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/layout"
)

func size(w, h float64) graphics.Size {
	return graphics.Size{Width: w, Height: h}
}

func TestNewConstraints_RoundTrip(t *testing.T) {
	tests := []struct {
		min, max graphics.Size
	}{
		{size(0, 0), size(0, 0)},
		{size(10, 20), size(10, 20)},
		{size(0, 5), size(100, 50)},
		{size(3, 4), size(math.Inf(1), math.Inf(1))},
	}
	for _, tt := range tests {
		c := layout.NewConstraints(tt.min, tt.max)
		if c.GetMin() != tt.min || c.GetMax() != tt.max {
			t.Errorf("NewConstraints(%v, %v) = %v", tt.min, tt.max, c)
		}
	}
}

func TestNewConstraints_PanicsWhenMinExceedsMax(t *testing.T) {
	for _, tt := range []struct {
		name     string
		min, max graphics.Size
	}{
		{"width", size(11, 0), size(10, 10)},
		{"height", size(0, 11), size(10, 10)},
	} {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			layout.NewConstraints(tt.min, tt.max)
		})
	}
}

func TestNewConstraints_ClampsNegativeAndNaN(t *testing.T) {
	c := layout.NewConstraints(size(-5, math.NaN()), size(10, -1))
	if c.Min != size(0, 0) || c.Max != size(10, 0) {
		t.Errorf("got %v, want min 0x0 max 10x0", c)
	}
}

func TestConstraints_DesetInsetInverse(t *testing.T) {
	base := layout.NewConstraints(size(40, 30), size(200, math.Inf(1)))
	for _, p := range []layout.EdgeInsets{
		layout.EdgeInsetsAll(0),
		layout.EdgeInsetsAll(5),
		layout.EdgeInsetsSymmetric(20, 15),
		{Left: 1, Top: 2, Right: 3, Bottom: 4},
	} {
		got := base.Deset(p).Inset(p)
		if got != base {
			t.Errorf("Deset(%v).Inset = %v, want %v", p, got, base)
		}
	}
}

func TestConstraints_DesetFloorsAtZero(t *testing.T) {
	c := layout.NewConstraints(size(4, 4), size(6, 6)).Deset(layout.EdgeInsetsAll(5))
	if c.Min != size(0, 0) || c.Max != size(0, 0) {
		t.Errorf("got %v, want all zero", c)
	}
}

func TestConstraints_DesetKeepsInfinity(t *testing.T) {
	c := layout.Unbounded.Deset(layout.EdgeInsetsAll(10))
	if c.HasBoundedWidth() || c.HasBoundedHeight() {
		t.Errorf("got %v, want unbounded max", c)
	}
}

func TestConstraints_MinClamp(t *testing.T) {
	c := layout.NewConstraints(size(10, 10), size(50, 20)).MinClamp(size(30, 40))
	if c.Min != size(30, 40) {
		t.Errorf("Min = %v, want 30x40", c.Min)
	}
	if c.Max != size(50, 40) {
		t.Errorf("Max = %v, want 50x40 (raised to keep invariant)", c.Max)
	}
}

func TestConstraints_MaxClamp(t *testing.T) {
	c := layout.NewConstraints(size(10, 30), size(50, 60)).MaxClamp(size(20, 20))
	if c.Max != size(20, 20) {
		t.Errorf("Max = %v, want 20x20", c.Max)
	}
	if c.Min != size(10, 20) {
		t.Errorf("Min = %v, want 10x20 (lowered to keep invariant)", c.Min)
	}
}

func TestConstraints_MapPreservesInvariant(t *testing.T) {
	c := layout.NewConstraints(size(10, 10), size(20, 20)).Map(func(s graphics.Size) graphics.Size {
		return graphics.Size{Width: 30 - s.Width, Height: s.Height * 2}
	})
	if c.Min.Width > c.Max.Width || c.Min.Height > c.Max.Height {
		t.Errorf("invariant broken: %v", c)
	}
	if c.Max.Height != 40 {
		t.Errorf("Max.Height = %v, want 40", c.Max.Height)
	}
}

func TestConstrain(t *testing.T) {
	c := layout.NewConstraints(size(10, 10), size(20, 20))
	tests := []struct{ in, want graphics.Size }{
		{size(5, 5), size(10, 10)},
		{size(15, 25), size(15, 20)},
		{size(math.NaN(), 12), size(10, 12)},
	}
	for _, tt := range tests {
		if got := c.Constrain(tt.in); got != tt.want {
			t.Errorf("Constrain(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConstraints_MaxAdvance(t *testing.T) {
	if _, ok := layout.Unbounded.MaxAdvance(); ok {
		t.Error("Unbounded.MaxAdvance should report no limit")
	}
	adv, ok := layout.Loose(size(120.5, 10)).MaxAdvance()
	if !ok || adv != 120.5 {
		t.Errorf("MaxAdvance = %v, %v; want 120.5, true", adv, ok)
	}
}

func TestTight(t *testing.T) {
	c := layout.Tight(size(3, 4))
	if !c.IsTight() {
		t.Error("expected tight constraints")
	}
	if layout.Unbounded.IsTight() {
		t.Error("Unbounded should not be tight")
	}
}
