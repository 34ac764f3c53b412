package cmd

import (
	"fmt"

	"github.com/go-drift/strata/pkg/errors"
	"github.com/go-drift/strata/pkg/schema"
)

func init() {
	RegisterCommand(&Command{
		Name:  "check",
		Short: "Validate component schemas",
		Long: `Parse and compile one or more component schemas.

Every file is checked even after a failure. Component names must be unique
across the files given, since they determine component ids.`,
		Usage: "strata check <schema.yaml>...",
		Run:   runCheck,
	})
}

func runCheck(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one schema is required\n\nUsage: strata check <schema.yaml>...")
	}

	reg := schema.NewRegistry()
	seen := make(map[string]string)
	failed := 0
	for _, path := range args {
		s, err := compileFile(path, reg)
		if err == nil {
			if prev, dup := seen[s.Name()]; dup {
				err = &errors.SchemaError{
					Schema: s.Name(),
					Msg:    fmt.Sprintf("component name %q is already used by %s", s.Name(), prev),
				}
			} else {
				seen[s.Name()] = path
			}
		}
		if err != nil {
			failed++
			fmt.Fprintf(stdout, "%s %s\n", paint(stdout, ansiRed, "FAIL"), path)
			report(err)
			continue
		}
		detail := fmt.Sprintf("(%s %s, %d widgets, component %d)", s.Name(), s.Doc.Version, len(s.Nodes), s.Component)
		fmt.Fprintf(stdout, "%s   %s %s\n", paint(stdout, ansiGreen, "ok"), path, paint(stdout, ansiDim, detail))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d schemas failed", failed, len(args))
	}
	return nil
}
