package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/go-drift/strata/pkg/schema"
)

func init() {
	RegisterCommand(&Command{
		Name:  "ids",
		Short: "List the widget ids of a schema",
		Long: `Print the widget id assigned to every node of a schema.

Ids are component:widget pairs. Widget indexes follow the tree in pre-order,
so the root is always widget 0.`,
		Usage: "strata ids <schema.yaml>",
		Run:   runIDs,
	})
}

func runIDs(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("exactly one schema is required\n\nUsage: strata ids <schema.yaml>")
	}
	s, err := compileFile(args[0], schema.NewRegistry())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tNAME\tPARENT\tPATH")
	for _, n := range s.Nodes {
		parent := "-"
		if n.Parent >= 0 {
			parent = s.Nodes[n.Parent].ID.String()
		}
		name := n.Node.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", n.ID, n.Node.Kind, name, parent, n.Path)
	}
	return tw.Flush()
}
