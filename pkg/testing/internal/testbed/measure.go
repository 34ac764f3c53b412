package testbed

import "github.com/go-drift/strata/pkg/graphics"

// Mono measures every rune as 10 wide and every line as 20 high, so test
// layouts can be computed by hand.
type Mono struct{}

func (Mono) Advance(text string, _ graphics.TextStyle) float64 {
	return float64(len([]rune(text))) * 10
}

func (Mono) Metrics(graphics.TextStyle) (lineHeight, ascent float64) { return 20, 15 }
