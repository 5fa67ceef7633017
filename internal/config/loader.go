package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".reportscan"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for reportscan settings.
const envPrefix = "REPORTSCAN"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// LoadConfig loads configuration from file, env vars, and defaults, then
// validates it.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	cfg, err := Read(configPath)
	if err != nil {
		return nil, err
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return cfg, nil
}

// Read is LoadConfig without validation. Callers that layer overrides on
// top must call Validate once they are applied.
func Read(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file or environment is present.
func Default() *Config {
	return &Config{
		Safety: SafetyConfig{
			MinStep: DefaultMinStep,
			MaxStep: DefaultMaxStep,
		},
		Input: InputConfig{
			EmptyLines: DefaultEmptyLines,
			MaxSize:    DefaultMaxSize,
		},
		Pipeline: PipelineConfig{
			Workers: DefaultWorkers,
		},
		Output: OutputConfig{
			Format:  DefaultFormat,
			Verbose: DefaultVerbose,
			NoColor: DefaultNoColor,
		},
		Observability: ObservabilityConfig{
			LogLevel:     DefaultLogLevel,
			LogJSON:      DefaultLogJSON,
			OTLPEndpoint: DefaultOTLPEndpoint,
			OTLPInsecure: DefaultOTLPInsecure,
			MetricsOut:   DefaultMetricsOut,
		},
	}
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("safety.min_step", DefaultMinStep)
	viperCfg.SetDefault("safety.max_step", DefaultMaxStep)

	viperCfg.SetDefault("input.empty_lines", DefaultEmptyLines)
	viperCfg.SetDefault("input.max_size", DefaultMaxSize)

	viperCfg.SetDefault("pipeline.workers", DefaultWorkers)

	viperCfg.SetDefault("output.format", DefaultFormat)
	viperCfg.SetDefault("output.verbose", DefaultVerbose)
	viperCfg.SetDefault("output.no_color", DefaultNoColor)

	viperCfg.SetDefault("observability.log_level", DefaultLogLevel)
	viperCfg.SetDefault("observability.log_json", DefaultLogJSON)
	viperCfg.SetDefault("observability.otlp_endpoint", DefaultOTLPEndpoint)
	viperCfg.SetDefault("observability.otlp_insecure", DefaultOTLPInsecure)
	viperCfg.SetDefault("observability.metrics_out", DefaultMetricsOut)
}
