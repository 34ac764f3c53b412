package cmd

import (
	"fmt"
	"text/tabwriter"
)

func init() {
	RegisterCommand(&Command{
		Name:  "layout",
		Short: "Print the laid out rectangles of a schema",
		Long: `Mount a schema headlessly, run one frame and print the global rectangle
of every widget.

Flags:
  -w, --width N          Surface width (default from strata.yaml, else 800)
  -H, --height N         Surface height (default from strata.yaml, else 600)
  --mount SLOT=FILE      Mount another schema into a holder slot (repeatable)`,
		Usage: "strata layout <schema.yaml> [-w N] [-H N] [--mount slot=file.yaml]",
		Run:   runLayout,
	})
}

func runLayout(args []string) error {
	positional, opts, err := parseRunOptions(args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("exactly one schema is required\n\nUsage: strata layout <schema.yaml>")
	}
	p, err := loadProject(positional[0])
	if err != nil {
		return err
	}
	m, err := p.mount(positional[0], opts)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WIDGET\tNAME\tX\tY\tWIDTH\tHEIGHT")
	for _, entry := range m.rt.Layout() {
		name := m.names[entry.Ref]
		if name == "" {
			name = "-"
		}
		r := entry.Rect
		fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%g\n", entry.Ref, name, r.Left, r.Top, r.Width(), r.Height())
	}
	return tw.Flush()
}
