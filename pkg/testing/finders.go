package testing

import (
	"fmt"
	"slices"

	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/engine"
	"github.com/go-drift/strata/pkg/graphics"
)

// Finder locates widgets in a running tree.
type Finder interface {
	// Evaluate returns all matching widgets in RuntimeID, then widget
	// index order.
	Evaluate(rt *engine.Runtime) []core.WidgetRef
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	refs   []core.WidgetRef
	finder Finder
	info   *core.WidgetInfo
}

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() core.WidgetRef {
	if len(r.refs) == 0 {
		panic(fmt.Sprintf("Finder found no widgets: %s", r.describe()))
	}
	return r.refs[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) core.WidgetRef {
	if index < 0 || index >= len(r.refs) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.refs), r.describe()))
	}
	return r.refs[index]
}

// All returns all matches.
func (r FinderResult) All() []core.WidgetRef {
	return r.refs
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.refs)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.refs) > 0
}

// Rect returns the global rectangle of the first match. Panics if no
// matches.
func (r FinderResult) Rect() graphics.Rect {
	return r.info.RectOf(r.First())
}

// Center returns the center of the first match. Panics if no matches.
func (r FinderResult) Center() graphics.Offset {
	return r.Rect().Center()
}

// --- Concrete finders ---

type nameFinder struct {
	name string
}

func (f nameFinder) Evaluate(rt *engine.Runtime) []core.WidgetRef {
	if ref, ok := rt.Root().Lookup(f.name); ok {
		return []core.WidgetRef{ref}
	}
	return nil
}

func (f nameFinder) Description() string {
	return fmt.Sprintf("ByName(%q)", f.name)
}

// ByName matches the widget a component exposes under name, searching
// nested instances in declaration order.
func ByName(name string) Finder {
	return nameFinder{name: name}
}

type refFinder struct {
	ref core.WidgetRef
}

func (f refFinder) Evaluate(rt *engine.Runtime) []core.WidgetRef {
	for _, l := range rt.Layout() {
		if l.Ref == f.ref {
			return []core.WidgetRef{f.ref}
		}
	}
	return nil
}

func (f refFinder) Description() string {
	return fmt.Sprintf("ByRef(%s)", f.ref)
}

// ByRef matches ref if it has been laid out.
func ByRef(ref core.WidgetRef) Finder {
	return refFinder{ref: ref}
}

type pointFinder struct {
	point graphics.Offset
}

func (f pointFinder) Evaluate(rt *engine.Runtime) []core.WidgetRef {
	var out []core.WidgetRef
	for _, l := range rt.Layout() {
		if l.Rect.Contains(f.point) {
			out = append(out, l.Ref)
		}
	}
	return out
}

func (f pointFinder) Description() string {
	return fmt.Sprintf("AtPoint(%v, %v)", f.point.X, f.point.Y)
}

// AtPoint matches every widget whose rectangle contains p.
func AtPoint(p graphics.Offset) Finder {
	return pointFinder{point: p}
}

type activeFinder struct{}

func (activeFinder) Evaluate(rt *engine.Runtime) []core.WidgetRef {
	if ref, ok := rt.Info().Active(); ok {
		return []core.WidgetRef{ref}
	}
	return nil
}

func (activeFinder) Description() string { return "Active()" }

// Active matches the widget holding pointer capture.
func Active() Finder {
	return activeFinder{}
}

type hoveredFinder struct{}

func (hoveredFinder) Evaluate(rt *engine.Runtime) []core.WidgetRef {
	refs := rt.Info().Hovered()
	slices.SortFunc(refs, compareRefs)
	return refs
}

func (hoveredFinder) Description() string { return "Hovered()" }

// Hovered matches every hovered widget.
func Hovered() Finder {
	return hoveredFinder{}
}

func compareRefs(a, b core.WidgetRef) int {
	switch {
	case a.Runtime != b.Runtime:
		return cmpUint(uint64(a.Runtime), uint64(b.Runtime))
	default:
		return cmpUint(uint64(a.Widget.Widget), uint64(b.Widget.Widget))
	}
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
