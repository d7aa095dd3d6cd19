package config

import "github.com/AndreyAkinshin/formeval/pkg/formeval"

// Default configuration values.
const (
	DefaultFileName = "formeval.json"
	DefaultMetric   = string(formeval.MetricAccuracy)
	DefaultFormat   = "text"
	DefaultLogLevel = "warn"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Metric == "" {
		cfg.Metric = DefaultMetric
	}
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}
