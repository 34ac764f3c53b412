// Package layout provides the box constraint algebra used by every resize
// call in the widget tree.
//
// A parent hands each child a [Constraints] value describing the smallest and
// largest size it may take. The child returns a size inside that box. Padding
// is modelled by shrinking the box before laying out a child ([Constraints.Deset])
// and growing the child's answer afterwards ([Constraints.Inset] or
// [EdgeInsets.Grow]).
package layout
