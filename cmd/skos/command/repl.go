package command

import (
	"github.com/spf13/cobra"

	"github.com/cayleygraph/skos/internal/repl"
)

func newReplCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "repl [flags] <file or URL>...",
		Short: "Browse the loaded entities interactively.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := getContext()
			defer cancel()
			l, err := e.load(ctx, args)
			if err != nil {
				return err
			}
			return repl.Repl(ctx, l)
		},
	}
}
