package cmd

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/strata/pkg/errors"
	"github.com/go-drift/strata/pkg/graphics"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render a schema to a PNG image",
		Long: `Mount a schema headlessly, run one frame and rasterize the scene with the
bundled software renderer.

Flags:
  -o, --output FILE      Output file (default: <schema name>.png)
  -w, --width N          Surface width (default from strata.yaml, else 800)
  -H, --height N         Surface height (default from strata.yaml, else 600)
  --mount SLOT=FILE      Mount another schema into a holder slot (repeatable)`,
		Usage: "strata render <schema.yaml> [-o out.png] [-w N] [-H N]",
		Run:   runRender,
	})
}

func runRender(args []string) error {
	positional, opts, err := parseRunOptions(args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("exactly one schema is required\n\nUsage: strata render <schema.yaml> [-o out.png]")
	}
	p, err := loadProject(positional[0])
	if err != nil {
		return err
	}
	m, err := p.mount(positional[0], opts)
	if err != nil {
		return err
	}

	img, err := graphics.Rasterize(m.rt.Scene(), m.rt.Size(), p.theme.ColorScheme.Background)
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		base := filepath.Base(positional[0])
		out = strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return &errors.Error{Op: "strata.render", Kind: errors.KindRender, Err: fmt.Errorf("failed to encode %s: %w", out, err)}
	}
	if err := f.Close(); err != nil {
		return err
	}

	b := img.Bounds()
	fmt.Fprintf(stdout, "%s %s (%dx%d, %d ops)\n", paint(stdout, ansiGreen, "wrote"), out, b.Dx(), b.Dy(), m.rt.Scene().Len())
	return nil
}
