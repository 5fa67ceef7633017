package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/reportscan/pkg/analysis"
	"github.com/Sumatoshi-tech/reportscan/pkg/renderer"
)

func newDistanceCommand(root *rootOptions) *cobra.Command {
	flags := &analysisFlags{}

	cmd := &cobra.Command{
		Use:   "distance [file]",
		Short: "Compare two paired lists",
		Long: `Compare two lists given one "left right" pair per line. Prints the total
distance between the sorted lists and the similarity score (each left value
times its number of occurrences on the right).

Reads standard input when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSingle(cmd, root, flags, analysis.KindDistance, firstArg(args),
				func(ctx context.Context, s *session, in io.Reader) (renderer.Report, error) {
					return s.service.Distance(ctx, in)
				})
		},
	}

	flags.register(cmd)

	return cmd
}
