package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/reportscan/internal/config"
	"github.com/Sumatoshi-tech/reportscan/pkg/renderer"
	"github.com/Sumatoshi-tech/reportscan/pkg/terminal"
)

// Flag names shared by the analysis commands.
const (
	flagFormat     = "format"
	flagVerbose    = "verbose"
	flagNoColor    = "no-color"
	flagWorkers    = "workers"
	flagMinStep    = "min-step"
	flagMaxStep    = "max-step"
	flagEmptyLines = "empty-lines"
	flagMaxSize    = "max-size"
	flagMetricsOut = "metrics-out"
	flagLogLevel   = "log-level"
	flagLogJSON    = "log-json"
)

// analysisFlags holds per-command overrides of the loaded configuration.
// A flag only wins when the user set it explicitly.
type analysisFlags struct {
	format     string
	verbose    bool
	noColor    bool
	workers    int
	minStep    int
	maxStep    int
	emptyLines string
	maxSize    string
	metricsOut string
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	f.registerOutput(cmd)
	f.registerAnalysis(cmd)
}

func (f *analysisFlags) registerOutput(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringVar(&f.format, flagFormat, config.DefaultFormat, "Output format: text, compact, json, yaml, plot")
	flags.BoolVarP(&f.verbose, flagVerbose, "v", config.DefaultVerbose, "Show per-item details")
	flags.BoolVar(&f.noColor, flagNoColor, config.DefaultNoColor, "Disable colored text output")
}

func (f *analysisFlags) registerAnalysis(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.IntVar(&f.workers, flagWorkers, config.DefaultWorkers, "Parallel evaluation workers (0 = CPU count)")
	flags.IntVar(&f.minStep, flagMinStep, config.DefaultMinStep, "Smallest allowed step between adjacent levels")
	flags.IntVar(&f.maxStep, flagMaxStep, config.DefaultMaxStep, "Largest allowed step between adjacent levels")
	flags.StringVar(&f.emptyLines, flagEmptyLines, config.DefaultEmptyLines, "Blank report lines: skip or keep")
	flags.StringVar(&f.maxSize, flagMaxSize, config.DefaultMaxSize, "Input size limit (e.g. '64MiB'; 0 = unlimited)")
	flags.StringVar(&f.metricsOut, flagMetricsOut, config.DefaultMetricsOut,
		"Write a Prometheus text snapshot of metrics to this file")
}

// loadConfig reads the configuration, applies explicitly set flags on top
// and validates the result once.
func loadConfig(cmd *cobra.Command, root *rootOptions, f *analysisFlags) (*config.Config, error) {
	cfg, err := config.Read(root.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed(flagLogLevel) {
		cfg.Observability.LogLevel = root.logLevel
	}

	if flags.Changed(flagLogJSON) {
		cfg.Observability.LogJSON = root.logJSON
	}

	if f != nil {
		f.apply(cmd, cfg)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (f *analysisFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed(flagFormat) {
		cfg.Output.Format = f.format
	}

	if flags.Changed(flagVerbose) {
		cfg.Output.Verbose = f.verbose
	}

	if flags.Changed(flagNoColor) {
		cfg.Output.NoColor = f.noColor
	}

	if flags.Changed(flagWorkers) {
		cfg.Pipeline.Workers = f.workers
	}

	if flags.Changed(flagMinStep) {
		cfg.Safety.MinStep = f.minStep
	}

	if flags.Changed(flagMaxStep) {
		cfg.Safety.MaxStep = f.maxStep
	}

	if flags.Changed(flagEmptyLines) {
		cfg.Input.EmptyLines = f.emptyLines
	}

	if flags.Changed(flagMaxSize) {
		cfg.Input.MaxSize = f.maxSize
	}

	if flags.Changed(flagMetricsOut) {
		cfg.Observability.MetricsOut = f.metricsOut
	}
}

// renderOptions maps the output section to renderer options.
func renderOptions(cfg *config.Config) renderer.Options {
	return renderer.Options{
		Format:  cfg.Output.Format,
		Width:   terminal.DetectWidth(),
		Verbose: cfg.Output.Verbose,
		NoColor: cfg.Output.NoColor,
	}
}
