package schema

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/mod/semver"

	"github.com/go-drift/strata/pkg/errors"
)

// SupportedMajor is the schema format major version this package reads.
const SupportedMajor = "v1"

// fields lists, per kind, the node fields beyond kind and name that may be
// set.
var fields = map[string][]string{
	KindStack:   {"axis", "spacing", "children"},
	KindButton:  {"child", "press", "disabled"},
	KindText:    {"text", "var", "message", "args", "style"},
	KindImage:   {"src", "width", "height"},
	KindPadding: {"child", "insets"},
	KindHolder:  {"slot"},
}

// setFields returns the names of n's kind-specific fields that are set.
func setFields(n *Node) []string {
	var set []string
	add := func(name string, ok bool) {
		if ok {
			set = append(set, name)
		}
	}
	add("axis", n.Axis != "")
	add("spacing", n.Spacing != 0)
	add("children", n.Children != nil)
	add("child", n.Child != nil)
	add("press", n.Press != "")
	add("disabled", n.Disabled != "")
	add("text", n.Text != "")
	add("var", n.Var != "")
	add("message", n.Message != "")
	add("args", n.Args != nil)
	add("style", n.Style != "")
	add("src", n.Src != "")
	add("width", n.Width != 0)
	add("height", n.Height != 0)
	add("insets", n.Insets != nil)
	add("slot", n.Slot != "")
	return set
}

type validator struct {
	doc      *Document
	handlers map[string]bool
	names    map[string]string
	slots    map[string]string
}

func (v *validator) fail(path, format string, args ...any) error {
	return &errors.SchemaError{Schema: v.doc.label(), Path: path, Msg: fmt.Sprintf(format, args...)}
}

// Validate checks a document and normalizes variable initial values. It
// returns the first problem found as an *errors.SchemaError.
func Validate(d *Document) error {
	v := &validator{
		doc:      d,
		handlers: make(map[string]bool),
		names:    make(map[string]string),
		slots:    make(map[string]string),
	}
	if !isIdent(d.Name) {
		return v.fail("name", "invalid component name %q", d.Name)
	}
	if err := v.version(); err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(d.Vars)) {
		path := "vars." + name
		if !isIdent(name) {
			return v.fail(path, "invalid variable name")
		}
		decl := d.Vars[name]
		if !decl.Type.Valid() {
			return v.fail(path, "unknown type %q", decl.Type)
		}
		init, err := coerce(decl.Type, decl.Init)
		if err != nil {
			return v.fail(path+".init", "%v", err)
		}
		decl.Init = init
		d.Vars[name] = decl
	}
	for i, h := range d.Handlers {
		path := fmt.Sprintf("handlers[%d]", i)
		if !isIdent(h) {
			return v.fail(path, "invalid handler name %q", h)
		}
		if v.handlers[h] {
			return v.fail(path, "duplicate handler %q", h)
		}
		v.handlers[h] = true
	}
	if d.Tree == nil {
		return v.fail("tree", "missing tree")
	}
	return v.node(d.Tree, "tree")
}

func (v *validator) version() error {
	ver := v.doc.Version
	switch {
	case ver == "":
		return v.fail("version", "missing version")
	case !semver.IsValid(ver):
		return v.fail("version", "invalid semantic version %q", ver)
	case semver.Major(ver) != SupportedMajor:
		return v.fail("version", "unsupported version %s (want %s.x)", ver, SupportedMajor)
	}
	return nil
}

func (v *validator) node(n *Node, path string) error {
	if n == nil {
		return v.fail(path, "empty node")
	}
	allowed, ok := fields[n.Kind]
	if !ok {
		return v.fail(path, "unknown node kind %q", n.Kind)
	}
	for _, f := range setFields(n) {
		if !slices.Contains(allowed, f) {
			return v.fail(path, "%s does not take %q", n.Kind, f)
		}
	}
	if n.Name != "" {
		if prev, dup := v.names[n.Name]; dup {
			return v.fail(path, "duplicate name %q (first used at %s)", n.Name, prev)
		}
		v.names[n.Name] = path
	}

	switch n.Kind {
	case KindStack:
		if _, err := parseAxis(n.Axis); err != nil {
			return v.fail(path+".axis", "%v", err)
		}
		for i, c := range n.Children {
			if err := v.node(c, fmt.Sprintf("%s.children[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil

	case KindButton:
		if n.Press != "" && !v.handlers[n.Press] {
			return v.fail(path+".press", "unknown handler %q", n.Press)
		}
		if n.Disabled != "" {
			if err := v.varOfType(path+".disabled", n.Disabled, TypeBool); err != nil {
				return err
			}
		}
		if n.Child == nil {
			return v.fail(path, "button requires a child")
		}
		return v.node(n.Child, path+".child")

	case KindText:
		sources := 0
		for _, set := range []bool{n.Text != "", n.Var != "", n.Message != ""} {
			if set {
				sources++
			}
		}
		if sources > 1 {
			return v.fail(path, "text takes only one of text, var and message")
		}
		if n.Var != "" {
			if err := v.varOfType(path+".var", n.Var, ""); err != nil {
				return err
			}
		}
		if n.Args != nil && n.Message == "" {
			return v.fail(path+".args", "args require a message")
		}
		for _, arg := range slices.Sorted(maps.Keys(n.Args)) {
			if err := v.varOfType(path+".args."+arg, n.Args[arg], ""); err != nil {
				return err
			}
		}
		switch n.Style {
		case "", "body", "label":
		default:
			return v.fail(path+".style", "unknown text style %q", n.Style)
		}
		return nil

	case KindImage:
		if n.Width < 0 || n.Height < 0 {
			return v.fail(path, "negative image size")
		}
		return nil

	case KindPadding:
		if _, err := parseInsets(n.Insets); err != nil {
			return v.fail(path+".insets", "%v", err)
		}
		if n.Child == nil {
			return v.fail(path, "padding requires a child")
		}
		return v.node(n.Child, path+".child")

	case KindHolder:
		if !isIdent(n.Slot) {
			return v.fail(path+".slot", "invalid slot name %q", n.Slot)
		}
		if prev, dup := v.slots[n.Slot]; dup {
			return v.fail(path+".slot", "duplicate slot %q (first used at %s)", n.Slot, prev)
		}
		v.slots[n.Slot] = path
		return nil
	}
	return nil
}

// varOfType checks that name is declared, and of type want unless want is
// empty.
func (v *validator) varOfType(path, name string, want VarType) error {
	decl, ok := v.doc.Vars[name]
	if !ok {
		return v.fail(path, "unknown variable %q", name)
	}
	if want != "" && decl.Type != want {
		return v.fail(path, "variable %q is %s, want %s", name, decl.Type, want)
	}
	return nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '-'):
		default:
			return false
		}
	}
	return !strings.HasSuffix(s, "-")
}
