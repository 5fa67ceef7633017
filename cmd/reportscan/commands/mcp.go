package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/reportscan/pkg/mcp"
	"github.com/Sumatoshi-tech/reportscan/pkg/observability"
)

func newMCPCommand(root *rootOptions) *cobra.Command {
	flags := &analysisFlags{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

Tools:
  - ` + mcp.ToolNameSafety + `: count safe reports, with and without the dampener
  - ` + mcp.ToolNameDistance + `: total distance and similarity score of paired lists

Logs are written as JSON to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			cfg, err := loadConfig(cmd, root, flags)
			if err != nil {
				return err
			}

			sess, err := startSession(cmd, cfg, observability.ModeMCP)
			if err != nil {
				return err
			}

			defer func() { err = sess.close(cmd.Context(), err) }()

			srv, err := mcp.NewServer(mcp.ServerDeps{
				Service: sess.service,
				Logger:  sess.providers.Logger,
				Metrics: sess.red,
				Tracer:  sess.providers.Tracer,
			})
			if err != nil {
				return err
			}

			return srv.Run(cmd.Context())
		},
	}

	flags.registerAnalysis(cmd)

	return cmd
}
