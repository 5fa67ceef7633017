package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/reportscan/pkg/observability"
	"github.com/Sumatoshi-tech/reportscan/pkg/renderer"
)

var (
	// ErrNoInputs is returned when run gets neither --lists nor --reports.
	ErrNoInputs = errors.New("run needs --lists, --reports or both")
	// ErrStdinTwice is returned when both inputs ask for standard input.
	ErrStdinTwice = errors.New("only one of --lists and --reports may read standard input")
)

// RunCommand holds the inputs of the combined run command.
type RunCommand struct {
	root      *rootOptions
	flags     analysisFlags
	listsPath string
	reports   string
}

func newRunCommand(root *rootOptions) *cobra.Command {
	rc := &RunCommand{root: root}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run both analyses",
		Long: `Run the distance analysis over --lists and the safety analysis over
--reports and write one combined document. Either input may be "-" for
standard input. With a single input only that analysis runs.`,
		Args: cobra.NoArgs,
		RunE: rc.run,
	}

	cmd.Flags().StringVar(&rc.listsPath, "lists", "", "Paired lists file for the distance analysis")
	cmd.Flags().StringVar(&rc.reports, "reports", "", "Reports file for the safety analysis")

	rc.flags.register(cmd)

	return cmd
}

func (rc *RunCommand) run(cmd *cobra.Command, _ []string) (err error) {
	if rc.listsPath == "" && rc.reports == "" {
		return ErrNoInputs
	}

	if rc.listsPath != "" && rc.reports != "" && isStdin(rc.listsPath) && isStdin(rc.reports) {
		return ErrStdinTwice
	}

	cfg, err := loadConfig(cmd, rc.root, &rc.flags)
	if err != nil {
		return err
	}

	sess, err := startSession(cmd, cfg, observability.ModeCLI)
	if err != nil {
		return err
	}

	defer func() { err = sess.close(cmd.Context(), err) }()

	return sess.track(cmd.Context(), "run", func(ctx context.Context) error {
		reports, runErr := rc.analyze(ctx, cmd, sess)
		if runErr != nil {
			return runErr
		}

		return renderer.Write(cmd.OutOrStdout(), renderOptions(cfg), reports...)
	})
}

// analyze runs the requested analyses concurrently and returns their
// results in a fixed order: distance first, then safety.
func (rc *RunCommand) analyze(ctx context.Context, cmd *cobra.Command, sess *session) ([]renderer.Report, error) {
	var (
		distance renderer.Report
		safety   renderer.Report
	)

	g, gctx := errgroup.WithContext(ctx)

	if rc.listsPath != "" {
		g.Go(func() error {
			in, err := openInput(cmd, rc.listsPath)
			if err != nil {
				return err
			}
			defer func() { _ = in.Close() }()

			result, err := sess.service.Distance(gctx, in)
			if err != nil {
				return err
			}

			distance = result

			return nil
		})
	}

	if rc.reports != "" {
		g.Go(func() error {
			in, err := openInput(cmd, rc.reports)
			if err != nil {
				return err
			}
			defer func() { _ = in.Close() }()

			result, err := sess.service.Safety(gctx, in)
			if err != nil {
				return err
			}

			safety = result

			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	reports := make([]renderer.Report, 0, 2)

	if distance != nil {
		reports = append(reports, distance)
	}

	if safety != nil {
		reports = append(reports, safety)
	}

	return reports, nil
}
