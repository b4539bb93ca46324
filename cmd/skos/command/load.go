package command

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cayleygraph/skos"
)

func printSummary(w io.Writer, l *skos.Loader) {
	for _, flat := range []bool{false, true} {
		name := "input"
		if flat {
			name = "resolved"
		}
		fmt.Fprintf(w, "%-9s %5d concepts %5d schemes %5d collections\n", name+":",
			l.ConceptsFor(flat).Len(), l.ConceptSchemesFor(flat).Len(), l.CollectionsFor(flat).Len())
	}
	if limit := l.RecursionLimit(); limit != nil {
		fmt.Fprintf(w, "%d references not followed beyond depth %d\n", len(limit.URIs), limit.Depth)
	}
}

func newLoadCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load [flags] <file or URL>...",
		Short: "Load documents, resolve their references and print what was found.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := getContext()
			defer cancel()
			l, err := e.load(ctx, args)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), l)
			if list, _ := cmd.Flags().GetBool("list"); list {
				for _, k := range l.Keys() {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolP("list", "l", false, "print the URI of every entity of the view")
	return cmd
}
