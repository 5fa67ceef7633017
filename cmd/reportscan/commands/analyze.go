package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/reportscan/pkg/observability"
	"github.com/Sumatoshi-tech/reportscan/pkg/renderer"
)

type analyzeFunc func(ctx context.Context, s *session, in io.Reader) (renderer.Report, error)

// runSingle loads config, runs one analysis over path and writes the result.
func runSingle(cmd *cobra.Command, root *rootOptions, flags *analysisFlags, op, path string, analyze analyzeFunc) (err error) {
	cfg, err := loadConfig(cmd, root, flags)
	if err != nil {
		return err
	}

	sess, err := startSession(cmd, cfg, observability.ModeCLI)
	if err != nil {
		return err
	}

	defer func() { err = sess.close(cmd.Context(), err) }()

	return sess.track(cmd.Context(), op, func(ctx context.Context) error {
		in, openErr := openInput(cmd, path)
		if openErr != nil {
			return openErr
		}
		defer func() { _ = in.Close() }()

		report, analyzeErr := analyze(ctx, sess, in)
		if analyzeErr != nil {
			return analyzeErr
		}

		return renderer.Write(cmd.OutOrStdout(), renderOptions(cfg), report)
	})
}
