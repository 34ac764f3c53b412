package schema

import (
	"fmt"
	"image"
	"maps"
	"slices"

	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/errors"
	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/theme"
	"github.com/go-drift/strata/pkg/widgets"
)

// Handler runs when a button bound to it is pressed.
type Handler func(inst *Instance)

// Message sets a variable of a nested instance. It is delivered through the
// instance's CompHolder right before the instance updates.
type Message struct {
	Var   string
	Value any
}

// Holder is the CompHolder type that mounts an instance in a slot.
type Holder = core.CompHolder[*Instance, Message]

// Option configures Instantiate.
type Option func(*config)

type config struct {
	theme    *theme.ThemeData
	assetDir string
	images   map[string]image.Image
}

// WithTheme sets the theme used to style buttons and text.
func WithTheme(t *theme.ThemeData) Option {
	return func(c *config) { c.theme = t }
}

// WithAssetDir sets the directory image sources are resolved against. It
// defaults to the directory of the schema file.
func WithAssetDir(dir string) Option {
	return func(c *config) { c.assetDir = dir }
}

// WithImage supplies the image for src instead of reading it from disk.
func WithImage(src string, img image.Image) Option {
	return func(c *config) {
		if c.images == nil {
			c.images = make(map[string]image.Image)
		}
		c.images[src] = img
	}
}

type textBinding struct {
	widget *widgets.Text
	node   *Node
	deps   []string
}

type disabledBinding struct {
	widget *widgets.Button
	v      string
}

// slotTable is the instance's nested MultiComponent. It is shared by
// pointer so mounting after construction is visible to the handles.
type slotTable struct {
	core.Slots
}

// Instance is a live component built from a Schema.
type Instance struct {
	*core.Base

	schema   *Schema
	vars     map[string]variable
	order    []string
	texts    []textBinding
	disabled []disabledBinding
	handlers map[string]Handler
	holders  map[string]*widgets.Holder
	mounted  map[string]*Holder
	slots    *slotTable

	// fresh forces the first update so bound text is formatted with the
	// window's message catalog.
	fresh    bool
	relayout bool
}

// Instantiate builds a live instance of s. A zero rid draws a fresh one
// from core.NextRuntimeID.
func Instantiate(s *Schema, rid core.RuntimeID, opts ...Option) (*Instance, error) {
	cfg := &config{}
	if src := s.Doc.Source(); src != "" {
		cfg.assetDir = dirOf(src)
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.theme == nil {
		cfg.theme = theme.DefaultLightTheme()
	}
	if rid == core.NoRuntime {
		rid = core.NextRuntimeID()
	}

	inst := &Instance{
		schema:   s,
		vars:     make(map[string]variable, len(s.Doc.Vars)),
		order:    slices.Sorted(maps.Keys(s.Doc.Vars)),
		handlers: make(map[string]Handler),
		holders:  make(map[string]*widgets.Holder),
		mounted:  make(map[string]*Holder),
		slots:    &slotTable{},
		fresh:    true,
	}
	for _, name := range inst.order {
		inst.vars[name] = newVariable(s.Doc.Vars[name])
	}

	b := &builder{inst: inst, cfg: cfg}
	root, err := b.build(s.Doc.Tree, false)
	if err != nil {
		return nil, err
	}
	inst.Base = core.NewBase(rid, root, maps.Clone(s.names), inst.slots)
	return inst, nil
}

// Schema returns the compiled schema the instance was built from.
func (i *Instance) Schema() *Schema { return i.schema }

// Widget returns the widget called name.
func (i *Instance) Widget(name string) (core.Widget, bool) {
	id, ok := i.schema.ID(name)
	if !ok {
		return nil, false
	}
	return findWidget(i.RootWidget(), id)
}

func findWidget(w core.Widget, id core.WidgetID) (core.Widget, bool) {
	if w.ID() == id {
		return w, true
	}
	if c, ok := w.(core.Container); ok {
		for _, child := range c.Children() {
			if found, ok := findWidget(child, id); ok {
				return found, true
			}
		}
	}
	return nil, false
}

// Handle binds fn to a declared handler, replacing any previous binding.
func (i *Instance) Handle(name string, fn Handler) error {
	if !slices.Contains(i.schema.Doc.Handlers, name) {
		return &errors.SchemaError{Schema: i.schema.Name(), Path: "handlers", Msg: fmt.Sprintf("unknown handler %q", name)}
	}
	i.handlers[name] = fn
	return nil
}

func (i *Instance) press(name string) func() {
	if name == "" {
		return nil
	}
	return func() {
		if fn := i.handlers[name]; fn != nil {
			fn(i)
		}
	}
}

// Value returns the current value of a variable.
func (i *Instance) Value(name string) (any, bool) {
	v, ok := i.vars[name]
	if !ok {
		return nil, false
	}
	return v.get(), true
}

// Set assigns a variable, converting between int and float as needed.
func (i *Instance) Set(name string, value any) error {
	v, ok := i.vars[name]
	if !ok {
		return fmt.Errorf("schema %s: unknown variable %q", i.schema.Name(), name)
	}
	if err := v.set(value); err != nil {
		return fmt.Errorf("schema %s: variable %q: %w", i.schema.Name(), name, err)
	}
	return nil
}

// Receive applies a message. Invalid messages are reported to the error
// handler and otherwise ignored.
func (i *Instance) Receive(msg Message) {
	if err := i.Set(msg.Var, msg.Value); err != nil {
		errors.Report(&errors.Error{
			Op:        "schema.Receive",
			Kind:      errors.KindEvent,
			Err:       err,
			Component: i.schema.Name(),
		})
	}
}

// UpdateVars pushes changed variables into their widgets. Every variable's
// flag is consumed, so a change is observed exactly once.
func (i *Instance) UpdateVars(force bool, h *core.UpdateHandle) bool {
	h = h.Scope(i.ID(), i.slots)
	force = force || i.fresh
	i.fresh = false

	changed := make(map[string]bool, len(i.vars))
	for _, name := range i.order {
		if i.vars[name].consume() {
			changed[name] = true
		}
	}

	resize := i.relayout
	i.relayout = false
	for _, b := range i.texts {
		if !force && !slices.ContainsFunc(b.deps, func(d string) bool { return changed[d] }) {
			continue
		}
		if b.widget.SetContent(i.format(b.node, h.Env())) {
			h.Invalidate(b.widget.ID())
			resize = true
		}
	}
	for _, b := range i.disabled {
		if !force && !changed[b.v] {
			continue
		}
		if b.widget.SetDisabled(i.vars[b.v].get().(bool)) {
			h.Invalidate(b.widget.ID())
		}
	}
	return i.UpdateNested(force, h) || resize
}

func (i *Instance) format(n *Node, env *core.Env) string {
	if n.Var != "" {
		return formatValue(i.vars[n.Var].get())
	}
	if env == nil || env.Messages == nil {
		return n.Message
	}
	args := make(map[string]any, len(n.Args))
	for arg, name := range n.Args {
		args[arg] = i.vars[name].get()
	}
	return env.Messages.Format(n.Message, args)
}

// Mount places child in the named holder slot. The slot must be empty.
func (i *Instance) Mount(slot string, child *Instance) (*Holder, error) {
	w, ok := i.holders[slot]
	if !ok {
		return nil, fmt.Errorf("schema %s: unknown slot %q", i.schema.Name(), slot)
	}
	if _, busy := i.mounted[slot]; busy {
		return nil, fmt.Errorf("schema %s: slot %q is occupied", i.schema.Name(), slot)
	}
	if child.ID() == i.ID() {
		return nil, fmt.Errorf("schema %s: cannot mount an instance in itself", i.schema.Name())
	}
	holder := core.NewCompHolder[*Instance, Message](core.WidgetRef{Runtime: i.ID(), Widget: w.ID()}, child)
	i.slots.Slots = append(i.slots.Slots, holder)
	i.mounted[slot] = holder
	w.SetRuntime(child.ID())
	i.relayout = true
	return holder, nil
}

// Slot returns the holder mounted in slot.
func (i *Instance) Slot(slot string) (*Holder, bool) {
	h, ok := i.mounted[slot]
	return h, ok
}

// Replace swaps the instance mounted in slot for child and returns the old
// one. info, usually the runtime's WidgetInfo, is purged of the old
// instance's state.
func (i *Instance) Replace(slot string, child *Instance, info *core.WidgetInfo) (*Instance, error) {
	holder, ok := i.mounted[slot]
	if !ok {
		return nil, fmt.Errorf("schema %s: slot %q is empty", i.schema.Name(), slot)
	}
	old := holder.Replace(info, child)
	i.holders[slot].SetRuntime(child.ID())
	i.relayout = true
	return old, nil
}

// Unmount disposes of the instance in slot.
func (i *Instance) Unmount(slot string, info *core.WidgetInfo) error {
	holder, ok := i.mounted[slot]
	if !ok {
		return fmt.Errorf("schema %s: slot %q is empty", i.schema.Name(), slot)
	}
	holder.Dispose(info)
	delete(i.mounted, slot)
	i.slots.Slots = slices.DeleteFunc(i.slots.Slots, func(s core.Slot) bool { return s == core.Slot(holder) })
	i.holders[slot].SetRuntime(core.NoRuntime)
	i.relayout = true
	return nil
}

type builder struct {
	inst *Instance
	cfg  *config
	next int
}

func (b *builder) id() core.WidgetID {
	id := b.inst.schema.Nodes[b.next].ID
	b.next++
	return id
}

func (b *builder) build(n *Node, inButton bool) (core.Widget, error) {
	id := b.id()
	switch n.Kind {
	case KindStack:
		axis, _ := parseAxis(n.Axis)
		children := make([]core.Widget, 0, len(n.Children))
		for _, c := range n.Children {
			w, err := b.build(c, inButton)
			if err != nil {
				return nil, err
			}
			children = append(children, w)
		}
		return widgets.NewStack(id, axis, n.Spacing, children...), nil

	case KindButton:
		child, err := b.build(n.Child, true)
		if err != nil {
			return nil, err
		}
		btn := widgets.NewButton(id, child, b.cfg.theme.ButtonThemeOf(), b.inst.press(n.Press))
		if n.Disabled != "" {
			btn.SetDisabled(b.inst.vars[n.Disabled].get().(bool))
			b.inst.disabled = append(b.inst.disabled, disabledBinding{widget: btn, v: n.Disabled})
		}
		return btn, nil

	case KindText:
		text := widgets.NewText(id, n.Text, b.textStyle(n, inButton))
		switch {
		case n.Var != "":
			b.inst.texts = append(b.inst.texts, textBinding{widget: text, node: n, deps: []string{n.Var}})
		case n.Message != "":
			deps := slices.Sorted(maps.Values(n.Args))
			b.inst.texts = append(b.inst.texts, textBinding{widget: text, node: n, deps: deps})
		}
		return text, nil

	case KindImage:
		src, err := b.cfg.image(n.Src)
		if err != nil {
			return nil, &errors.Error{Op: "schema.Instantiate", Kind: errors.KindInit, Err: err, Component: b.inst.schema.Name()}
		}
		img := widgets.NewImage(id, src)
		img.Width, img.Height = n.Width, n.Height
		return img, nil

	case KindPadding:
		insets, _ := parseInsets(n.Insets)
		child, err := b.build(n.Child, inButton)
		if err != nil {
			return nil, err
		}
		return widgets.NewPadding(id, insets, child), nil

	case KindHolder:
		h := widgets.NewHolder(id)
		b.inst.holders[n.Slot] = h
		return h, nil
	}
	panic(fmt.Sprintf("schema: unvalidated node kind %q", n.Kind))
}

func (b *builder) textStyle(n *Node, inButton bool) graphics.TextStyle {
	tt := b.cfg.theme.TextTheme
	style := tt.Body
	if n.Style == "label" {
		style = tt.Label
	}
	if inButton {
		bt := b.cfg.theme.ButtonThemeOf()
		style = style.WithColor(bt.ForegroundColor)
		if bt.FontSize > 0 {
			style.FontSize = bt.FontSize
		}
	}
	return style
}
