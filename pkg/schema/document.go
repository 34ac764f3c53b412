// Package schema loads component schemas written in YAML and turns them into
// live components.
//
// A schema names its variables, the handlers Go code may bind, and a widget
// tree:
//
//	name: counter
//	version: v1.0.0
//	vars:
//	  count: {type: int, init: 0}
//	handlers: [add]
//	tree:
//	  kind: stack
//	  children:
//	    - kind: button
//	      name: add
//	      press: add
//	      child: {kind: text, text: "Add"}
//	    - kind: text
//	      name: count
//	      var: count
//
// [Parse] decodes and validates a document, [Compile] assigns widget ids and
// [Instantiate] builds an [*Instance] implementing core.Component.
package schema

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/strata/pkg/errors"
)

// Node kinds.
const (
	KindStack   = "stack"
	KindButton  = "button"
	KindText    = "text"
	KindImage   = "image"
	KindPadding = "padding"
	KindHolder  = "holder"
)

// Document is a decoded component schema.
type Document struct {
	Name     string         `yaml:"name"`
	Version  string         `yaml:"version"`
	Vars     map[string]Var `yaml:"vars,omitempty"`
	Handlers []string       `yaml:"handlers,omitempty"`
	Tree     *Node          `yaml:"tree"`

	// source is the file the document was read from, if any.
	source string
}

// Var declares a variable. Init is normalized by validation to the Go type
// matching Type.
type Var struct {
	Type VarType `yaml:"type"`
	Init any     `yaml:"init,omitempty"`
}

// Node is one widget of the tree. Which fields apply depends on Kind.
type Node struct {
	Kind string `yaml:"kind"`
	Name string `yaml:"name,omitempty"`

	// stack
	Axis     string  `yaml:"axis,omitempty"`
	Spacing  float64 `yaml:"spacing,omitempty"`
	Children []*Node `yaml:"children,omitempty"`

	// button and padding
	Child *Node `yaml:"child,omitempty"`

	// button
	Press    string `yaml:"press,omitempty"`
	Disabled string `yaml:"disabled,omitempty"`

	// text
	Text    string            `yaml:"text,omitempty"`
	Var     string            `yaml:"var,omitempty"`
	Message string            `yaml:"message,omitempty"`
	Args    map[string]string `yaml:"args,omitempty"`
	Style   string            `yaml:"style,omitempty"`

	// image
	Src    string  `yaml:"src,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`

	// padding
	Insets []float64 `yaml:"insets,omitempty"`

	// holder
	Slot string `yaml:"slot,omitempty"`
}

// Source returns the file the document was read from, or "".
func (d *Document) Source() string { return d.source }

// label names the document in errors.
func (d *Document) label() string {
	if d.Name != "" {
		return d.Name
	}
	return d.source
}

// ParseFile reads and validates the schema at path.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.Error{Op: "schema.ParseFile", Kind: errors.KindInit, Err: err}
	}
	doc, err := decode(data, path)
	if err != nil {
		return nil, err
	}
	return doc, Validate(doc)
}

// Parse decodes and validates a schema document. Unknown fields are
// rejected.
func Parse(data []byte) (*Document, error) {
	doc, err := decode(data, "")
	if err != nil {
		return nil, err
	}
	return doc, Validate(doc)
}

func decode(data []byte, source string) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	doc := &Document{source: source}
	if err := dec.Decode(doc); err != nil {
		if err == io.EOF {
			return nil, &errors.SchemaError{Schema: source, Msg: "empty document"}
		}
		return nil, &errors.SchemaError{Schema: source, Msg: "decode", Err: err}
	}
	doc.source = source
	return doc, nil
}
