// Package widgets provides the concrete widgets a component tree is built
// from: display leaves (Text, Image), layout containers (Stack, Padding),
// the Button decorator, and Holder, which mounts a nested component.
//
// Widgets are long-lived pointers owned by their component. Each carries
// the WidgetID assigned when the schema was compiled, and bound values are
// pushed into them by the component's UpdateVars through setters that
// report whether anything changed:
//
//	label := widgets.NewText(core.WidgetID{Component: 1, Widget: 2}, "0", style)
//	add := widgets.NewButton(core.WidgetID{Component: 1, Widget: 1}, label, th.ButtonThemeOf(), onAdd)
//	row := widgets.NewStack(core.WidgetID{Component: 1, Widget: 0}, widgets.AxisHorizontal, 8, add)
//
//	if label.SetContent(strconv.Itoa(count.Value())) {
//	    h.Invalidate(label.ID())
//	    h.RequestResize()
//	}
//
// Containers implement core.Container so that parents and hit-test
// ancestry can be derived from the tree.
package widgets
