package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/reportscan/pkg/analysis"
	"github.com/Sumatoshi-tech/reportscan/pkg/renderer"
)

func newSafetyCommand(root *rootOptions) *cobra.Command {
	flags := &analysisFlags{}

	cmd := &cobra.Command{
		Use:   "safety [file]",
		Short: "Count safe reports",
		Long: `Count safe reports. Each input line is one report of whitespace-separated
levels. A report is safe when it is strictly increasing or strictly decreasing
and every adjacent step lies within [min-step, max-step]. The dampener also
accepts reports that become safe after removing a single level.

Reads standard input when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSingle(cmd, root, flags, analysis.KindSafety, firstArg(args),
				func(ctx context.Context, s *session, in io.Reader) (renderer.Report, error) {
					return s.service.Safety(ctx, in)
				})
		},
	}

	flags.register(cmd)

	return cmd
}
