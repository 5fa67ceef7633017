// Package config loads reportscan settings from defaults, a YAML file and
// REPORTSCAN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/reportscan/pkg/parse"
	"github.com/Sumatoshi-tech/reportscan/pkg/renderer"
	"github.com/Sumatoshi-tech/reportscan/pkg/safeconv"
	"github.com/Sumatoshi-tech/reportscan/pkg/safety"
)

// Config is the top-level configuration struct for reportscan.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Safety        SafetyConfig        `mapstructure:"safety"`
	Input         InputConfig         `mapstructure:"input"`
	Pipeline      PipelineConfig      `mapstructure:"pipeline"`
	Output        OutputConfig        `mapstructure:"output"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// SafetyConfig holds the step rule.
type SafetyConfig struct {
	MinStep int `mapstructure:"min_step"`
	MaxStep int `mapstructure:"max_step"`
}

// InputConfig holds parsing knobs.
type InputConfig struct {
	EmptyLines string `mapstructure:"empty_lines"`
	MaxSize    string `mapstructure:"max_size"`
}

// PipelineConfig holds evaluation resource knobs.
type PipelineConfig struct {
	Workers int `mapstructure:"workers"`
}

// OutputConfig holds rendering settings.
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	Verbose bool   `mapstructure:"verbose"`
	NoColor bool   `mapstructure:"no_color"`
}

// ObservabilityConfig holds logging, tracing and metrics export settings.
type ObservabilityConfig struct {
	LogLevel     string `mapstructure:"log_level"`
	LogJSON      bool   `mapstructure:"log_json"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
	MetricsOut   string `mapstructure:"metrics_out"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidStep indicates step bounds outside what the verifier accepts.
	ErrInvalidStep = errors.New("safety.min_step must be at least 1 and safety.max_step between min_step and 4294967295")
	// ErrInvalidWorkers indicates the workers value is negative.
	ErrInvalidWorkers = errors.New("pipeline.workers must be non-negative")
	// ErrInvalidEmptyLines indicates an unknown empty-line policy.
	ErrInvalidEmptyLines = errors.New("input.empty_lines must be skip or keep")
	// ErrInvalidMaxSize indicates an unparsable input size.
	ErrInvalidMaxSize = errors.New("input.max_size must be a byte size such as 64MiB")
	// ErrInvalidFormat indicates an unsupported output format.
	ErrInvalidFormat = errors.New("output.format is not supported")
	// ErrInvalidLogLevel indicates an unknown slog level name.
	ErrInvalidLogLevel = errors.New("observability.log_level must be debug, info, warn or error")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if c.Safety.MinStep < 1 || c.Safety.MaxStep < c.Safety.MinStep || int64(c.Safety.MaxStep) > math.MaxUint32 {
		return fmt.Errorf("%w: min=%d max=%d", ErrInvalidStep, c.Safety.MinStep, c.Safety.MaxStep)
	}

	if c.Pipeline.Workers < 0 {
		return ErrInvalidWorkers
	}

	_, err := parse.ParseEmptyLines(c.Input.EmptyLines)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEmptyLines, err)
	}

	_, err = c.MaxBytes()
	if err != nil {
		return err
	}

	if !slices.Contains(renderer.Formats(), renderer.NormalizeFormat(c.Output.Format)) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Output.Format)
	}

	_, err = c.LogLevel()
	if err != nil {
		return err
	}

	return nil
}

// Rule returns the configured safety rule. Call Validate first.
func (c *Config) Rule() safety.Rule {
	return safety.Rule{
		MinStep: safeconv.MustIntToUint32(c.Safety.MinStep),
		MaxStep: safeconv.MustIntToUint32(c.Safety.MaxStep),
	}
}

// MaxBytes parses input.max_size. An empty string means unlimited.
func (c *Config) MaxBytes() (int64, error) {
	trimmed := strings.TrimSpace(c.Input.MaxSize)
	if trimmed == "" || trimmed == "0" {
		return 0, nil
	}

	size, err := humanize.ParseBytes(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidMaxSize, err)
	}

	return int64(size), nil //nolint:gosec // sizes beyond MaxInt64 are not realistic.
}

// ParseOptions returns the parser options derived from the input section.
func (c *Config) ParseOptions() (parse.Options, error) {
	policy, err := parse.ParseEmptyLines(c.Input.EmptyLines)
	if err != nil {
		return parse.Options{}, fmt.Errorf("%w: %w", ErrInvalidEmptyLines, err)
	}

	maxBytes, err := c.MaxBytes()
	if err != nil {
		return parse.Options{}, err
	}

	return parse.Options{EmptyLines: policy, MaxBytes: maxBytes}, nil
}

// LogLevel maps observability.log_level to an slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(c.Observability.LogLevel))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Observability.LogLevel)
	}

	return level, nil
}
