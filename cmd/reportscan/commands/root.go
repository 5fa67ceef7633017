// Package commands implements CLI command handlers for reportscan.
package commands

import (
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	logJSON    bool
}

// NewRootCommand builds the reportscan command tree.
func NewRootCommand() *cobra.Command {
	root := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "reportscan",
		Short: "Report safety and list distance analysis",
		Long: `reportscan analyzes plain-text numeric input.

Commands:
  safety    Count safe reports, with and without the dampener
  distance  Total distance and similarity score of two paired lists
  run       Both analyses in one combined document
  schema    Print the JSON schema of an output document
  mcp       Serve the analyses as MCP tools on stdio`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&root.configPath, "config", "", "Config file (default: .reportscan.yaml in CWD or $HOME)")
	flags.StringVar(&root.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.BoolVar(&root.logJSON, "log-json", false, "Emit JSON logs on stderr")

	cmd.AddCommand(
		newSafetyCommand(root),
		newDistanceCommand(root),
		newRunCommand(root),
		newSchemaCommand(),
		newMCPCommand(root),
		newVersionCommand(),
	)

	return cmd
}
