package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/reportscan/internal/config"
	"github.com/Sumatoshi-tech/reportscan/pkg/analysis"
	"github.com/Sumatoshi-tech/reportscan/pkg/observability"
	"github.com/Sumatoshi-tech/reportscan/pkg/version"
)

const cliOpPrefix = "cli."

// session bundles the telemetry providers and the analysis service built
// from one resolved configuration.
type session struct {
	cfg       *config.Config
	providers observability.Providers
	red       *observability.REDMetrics
	service   *analysis.Service
}

func startSession(cmd *cobra.Command, cfg *config.Config, mode observability.AppMode) (*session, error) {
	providers, err := initObservability(cmd, cfg, mode)
	if err != nil {
		return nil, err
	}

	red, err := observability.NewREDMetrics(providers.Meter)
	if err != nil {
		return nil, errors.Join(err, providers.Shutdown(context.Background()))
	}

	reportMetrics, err := observability.NewReportMetrics(providers.Meter)
	if err != nil {
		return nil, errors.Join(err, providers.Shutdown(context.Background()))
	}

	parseOpts, err := cfg.ParseOptions()
	if err != nil {
		return nil, errors.Join(err, providers.Shutdown(context.Background()))
	}

	service, err := analysis.NewService(cfg.Rule(),
		analysis.WithWorkers(cfg.Pipeline.Workers),
		analysis.WithParseOptions(parseOpts),
		analysis.WithDetails(cfg.Output.Verbose),
		analysis.WithTracer(providers.Tracer),
		analysis.WithMetrics(reportMetrics),
		analysis.WithLogger(providers.Logger),
	)
	if err != nil {
		return nil, errors.Join(err, providers.Shutdown(context.Background()))
	}

	return &session{
		cfg:       cfg,
		providers: providers,
		red:       red,
		service:   service,
	}, nil
}

func initObservability(cmd *cobra.Command, cfg *config.Config, mode observability.AppMode) (observability.Providers, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return observability.Providers{}, err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Mode = mode
	obsCfg.OTLPEndpoint = cfg.Observability.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Observability.OTLPInsecure
	obsCfg.MetricsOut = cfg.Observability.MetricsOut
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Observability.LogJSON || mode == observability.ModeMCP
	obsCfg.LogWriter = cmd.ErrOrStderr()

	return observability.Init(obsCfg)
}

// track runs fn as one RED-measured operation.
func (s *session) track(ctx context.Context, op string, fn func(context.Context) error) error {
	return s.red.Measure(ctx, cliOpPrefix+op, fn)
}

// close flushes telemetry. A shutdown failure only fails the command when
// the command itself succeeded.
func (s *session) close(ctx context.Context, runErr error) error {
	shutdownErr := s.providers.Shutdown(context.WithoutCancel(ctx))
	if shutdownErr == nil {
		return runErr
	}

	if runErr != nil {
		s.providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)

		return runErr
	}

	return shutdownErr
}
