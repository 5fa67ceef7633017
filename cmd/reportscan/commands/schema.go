package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/reportscan/pkg/analysis"
)

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "schema [" + strings.Join(analysis.Kinds(), "|") + "]",
		Short:     "Print the JSON schema of an output document",
		Long:      "Print the JSON schema that json output of the given analysis satisfies.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: analysis.Kinds(),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := analysis.Schema(args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))

			return err
		},
	}
}
