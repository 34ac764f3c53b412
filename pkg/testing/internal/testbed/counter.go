// Package testbed provides internal test components for the testing framework.
package testbed

import (
	"strconv"

	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/layout"
	"github.com/go-drift/strata/pkg/theme"
	"github.com/go-drift/strata/pkg/widgets"
)

// CounterComponent is the schema id used by Counter widgets.
const CounterComponent = 7

// Counter displays a count and increments it when its button is pressed.
//
//	stack (0)
//	  button "increment" (1)
//	    text "+" (2)
//	  text "count" (3)
type Counter struct {
	*core.Base
	Count *core.Updateable[int]
	OnTap func(count int)

	label *widgets.Text
}

// NewCounter creates a counter instance starting at initial.
func NewCounter(rid core.RuntimeID, initial int) *Counter {
	id := func(i uint32) core.WidgetID { return core.WidgetID{Component: CounterComponent, Widget: i} }

	c := &Counter{Count: core.NewUpdateable(initial)}
	style := theme.ButtonThemeData{
		BackgroundColor: graphics.RGB(0, 0, 200),
		HoverColor:      graphics.RGB(0, 0, 255),
		ActiveColor:     graphics.RGB(0, 0, 120),
		Padding:         layout.EdgeInsetsAll(4),
		PressedOffset:   1,
	}
	button := widgets.NewButton(id(1), widgets.NewText(id(2), "+", graphics.TextStyle{}), style, func() {
		c.Count.Update(func(v int) int { return v + 1 })
		if c.OnTap != nil {
			c.OnTap(c.Count.Value())
		}
	})
	c.label = widgets.NewText(id(3), "", graphics.TextStyle{})
	root := widgets.NewStack(id(0), widgets.AxisVertical, 0, button, c.label)
	c.Base = core.NewBase(rid, root, map[string]core.WidgetID{"increment": id(1), "count": id(3)}, nil)
	return c
}

// Label returns the displayed count.
func (c *Counter) Label() string { return c.label.Content() }

func (c *Counter) UpdateVars(force bool, h *core.UpdateHandle) bool {
	h = h.Scope(c.ID(), c.Nested())
	if !c.Count.IsUpdated() && !force {
		return false
	}
	if !c.label.SetContent(strconv.Itoa(c.Count.Value())) {
		return false
	}
	h.Invalidate(c.label.ID())
	return true
}
