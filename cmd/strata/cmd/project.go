package cmd

import (
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-drift/strata/cmd/strata/internal/config"
	"github.com/go-drift/strata/pkg/core"
	"github.com/go-drift/strata/pkg/engine"
	"github.com/go-drift/strata/pkg/graphics"
	"github.com/go-drift/strata/pkg/l10n"
	"github.com/go-drift/strata/pkg/schema"
	"github.com/go-drift/strata/pkg/theme"
)

// project is the resolved configuration around a schema file.
type project struct {
	cfg      *config.Resolved
	theme    *theme.ThemeData
	messages core.MessageFormatter
}

func loadProject(schemaPath string) (*project, error) {
	root, err := config.FindProjectRoot(filepath.Dir(schemaPath))
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	p := &project{cfg: cfg}
	if cfg.ThemePath != "" {
		if p.theme, err = theme.Load(cfg.ThemePath); err != nil {
			return nil, err
		}
	} else if cfg.Dark {
		p.theme = theme.DefaultDarkTheme()
	} else {
		p.theme = theme.DefaultLightTheme()
	}

	if cfg.CatalogPath != "" {
		catalog, err := l10n.Load(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		if cfg.FallbackCatalog != "" {
			fallback, err := l10n.Load(cfg.FallbackCatalog)
			if err != nil {
				return nil, err
			}
			catalog = catalog.WithFallback(fallback)
		}
		p.messages = catalog
	}
	return p, nil
}

func compileFile(path string, reg *schema.Registry) (*schema.Schema, error) {
	doc, err := schema.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return schema.Compile(doc, reg)
}

// runOptions are the flags shared by the commands that mount a schema.
type runOptions struct {
	width, height float64
	output        string
	port          int
	portSet       bool
	mounts        []mountSpec
}

// mountSpec places the schema at path in a holder slot of the root.
type mountSpec struct {
	slot, path string
}

func parseRunOptions(args []string) ([]string, runOptions, error) {
	var opts runOptions
	var positional []string

	value := func(i int) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf("%s requires a value", args[i])
		}
		return args[i+1], nil
	}
	number := func(i int) (float64, error) {
		v, err := value(i)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return 0, fmt.Errorf("%s wants a positive number (got %q)", args[i], v)
		}
		return f, nil
	}

	for i := 0; i < len(args); i++ {
		var err error
		switch args[i] {
		case "-w", "--width":
			opts.width, err = number(i)
			i++
		case "-H", "--height":
			opts.height, err = number(i)
			i++
		case "-o", "--output":
			opts.output, err = value(i)
			i++
		case "--port":
			var v string
			if v, err = value(i); err == nil {
				opts.port, err = strconv.Atoi(v)
				opts.portSet = true
				if err != nil {
					err = fmt.Errorf("--port wants a number (got %q)", v)
				}
			}
			i++
		case "--mount":
			var v string
			if v, err = value(i); err == nil {
				slot, path, ok := strings.Cut(v, "=")
				if !ok || slot == "" || path == "" {
					err = fmt.Errorf("--mount wants slot=schema.yaml (got %q)", v)
				}
				opts.mounts = append(opts.mounts, mountSpec{slot: slot, path: path})
			}
			i++
		default:
			if strings.HasPrefix(args[i], "-") {
				err = fmt.Errorf("unknown flag %s", args[i])
			}
			positional = append(positional, args[i])
		}
		if err != nil {
			return nil, runOptions{}, err
		}
	}
	return positional, opts, nil
}

// headlessWindow stands in for a native window.
type headlessWindow struct {
	cursor    core.Cursor
	presented int
}

func (w *headlessWindow) Invalidate(graphics.Rect) {}
func (w *headlessWindow) RequestRedraw() {}
func (w *headlessWindow) SetCursor(c core.Cursor) { w.cursor = c }
func (w *headlessWindow) Present(*graphics.Scene) { w.presented++ }

// mounted is a schema running headlessly.
type mounted struct {
	rt    *engine.Runtime
	root  *schema.Instance
	names map[core.WidgetRef]string
}

// mount instantiates the schema at path, mounts nested schemas into its
// slots and runs the first frame.
func (p *project) mount(path string, opts runOptions, engineOpts ...engine.Option) (*mounted, error) {
	reg := schema.NewRegistry()
	s, err := compileFile(path, reg)
	if err != nil {
		return nil, err
	}
	root, err := schema.Instantiate(s, core.NoRuntime, schema.WithTheme(p.theme))
	if err != nil {
		return nil, err
	}
	m := &mounted{root: root, names: make(map[core.WidgetRef]string)}
	m.addNames(root)

	for _, spec := range opts.mounts {
		child, err := compileFile(spec.path, reg)
		if err != nil {
			return nil, err
		}
		inst, err := schema.Instantiate(child, core.NoRuntime, schema.WithTheme(p.theme))
		if err != nil {
			return nil, err
		}
		if _, err := root.Mount(spec.slot, inst); err != nil {
			return nil, err
		}
		m.addNames(inst)
	}

	size := graphics.Size{Width: p.cfg.Width, Height: p.cfg.Height}
	if opts.width > 0 {
		size.Width = opts.width
	}
	if opts.height > 0 {
		size.Height = opts.height
	}
	env := &core.Env{
		Window:   &headlessWindow{},
		Messages: p.messages,
		Logger:   log.New(stderr, p.cfg.AppName+": ", log.LstdFlags),
	}
	m.rt = engine.New(root, env, size, engineOpts...)
	m.rt.Frame()
	return m, nil
}

func (m *mounted) addNames(inst *schema.Instance) {
	for _, n := range inst.Schema().Nodes {
		if n.Node.Name != "" {
			m.names[core.WidgetRef{Runtime: inst.ID(), Widget: n.ID}] = n.Node.Name
		}
	}
}
