package schema

import (
	"fmt"
	"sync"

	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/layout"
	"github.com/go-drift/strata/pkg/widgets"
)

// Registry assigns component ids to schema names. Ids are handed out in
// registration order starting at 1, so a program that registers the same
// schemas in the same order always sees the same ids.
type Registry struct {
	mu    sync.Mutex
	ids   map[string]uint32
	names []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]uint32)}
}

// Register returns the id for name, assigning the next one on first use.
func (r *Registry) Register(name string) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.ids[name]; ok {
		return id
	}
	r.names = append(r.names, name)
	id := uint32(len(r.names))
	r.ids[name] = id
	return id
}

// Lookup returns the id of a registered name.
func (r *Registry) Lookup(name string) (uint32, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.ids[name]
	return id, ok
}

// Names returns the registered names in id order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

// CompiledNode is a tree node with its assigned id.
type CompiledNode struct {
	ID   core.WidgetID
	Node *Node
	// Parent is the index of the parent node, or -1 for the root.
	Parent int
	// Path locates the node in the document, e.g. "tree.children[1]".
	Path string
}

// Schema is a validated document with widget ids assigned.
type Schema struct {
	Doc       *Document
	Component uint32
	// Nodes lists the tree in pre-order; Nodes[i].ID.Widget == i.
	Nodes []CompiledNode

	names map[string]core.WidgetID
	slots []string
}

// Compile validates d and assigns ids: the component id comes from reg and
// widget ids are dense pre-order indexes.
func Compile(d *Document, reg *Registry) (*Schema, error) {
	if err := Validate(d); err != nil {
		return nil, err
	}
	s := &Schema{
		Doc:       d,
		Component: reg.Register(d.Name),
		names:     make(map[string]core.WidgetID),
	}
	s.walk(d.Tree, -1, "tree")
	return s, nil
}

func (s *Schema) walk(n *Node, parent int, path string) {
	id := core.WidgetID{Component: s.Component, Widget: uint32(len(s.Nodes))}
	index := len(s.Nodes)
	s.Nodes = append(s.Nodes, CompiledNode{ID: id, Node: n, Parent: parent, Path: path})
	if n.Name != "" {
		s.names[n.Name] = id
	}
	if n.Kind == KindHolder {
		s.slots = append(s.slots, n.Slot)
	}
	for i, c := range n.Children {
		s.walk(c, index, fmt.Sprintf("%s.children[%d]", path, i))
	}
	if n.Child != nil {
		s.walk(n.Child, index, path+".child")
	}
}

// Name returns the component name.
func (s *Schema) Name() string { return s.Doc.Name }

// ID returns the id of the widget called name.
func (s *Schema) ID(name string) (core.WidgetID, bool) {
	id, ok := s.names[name]
	return id, ok
}

// Slots returns the holder slot names in tree order.
func (s *Schema) Slots() []string { return append([]string(nil), s.slots...) }

func parseAxis(s string) (widgets.Axis, error) {
	switch s {
	case "", "vertical":
		return widgets.AxisVertical, nil
	case "horizontal":
		return widgets.AxisHorizontal, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

// parseInsets accepts one value (all sides), two (horizontal, vertical) or
// four (left, top, right, bottom).
func parseInsets(v []float64) (layout.EdgeInsets, error) {
	for _, x := range v {
		if x < 0 {
			return layout.EdgeInsets{}, fmt.Errorf("negative inset %v", x)
		}
	}
	switch len(v) {
	case 0:
		return layout.EdgeInsets{}, nil
	case 1:
		return layout.EdgeInsetsAll(v[0]), nil
	case 2:
		return layout.EdgeInsetsSymmetric(v[0], v[1]), nil
	case 4:
		return layout.EdgeInsets{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}, nil
	}
	return layout.EdgeInsets{}, fmt.Errorf("want 1, 2 or 4 values, got %d", len(v))
}
