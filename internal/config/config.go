// Package config provides loading and validation for formeval.json run configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/formeval/internal/schema"
)

// Config represents a formeval.json run configuration.
// Every field can be overridden on the command line.
type Config struct {
	Gold            string `json:"gold,omitempty"`              // Gold form file or directory
	Predicted       string `json:"predicted,omitempty"`         // Predicted form file or directory
	Metric          string `json:"metric,omitempty"`            // Scoring metric (default: accuracy)
	Format          string `json:"format,omitempty"`            // Report format: text, json, yaml
	Output          string `json:"output,omitempty"`            // Report file; empty writes to stdout
	ContinueOnError bool   `json:"continue_on_error,omitempty"` // Keep going after a failed pair
	LogLevel        string `json:"log_level,omitempty"`         // debug, info, warn, error
}

// Load reads and parses a formeval.json configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadAndValidate reads a config file, checks it against the embedded schema,
// applies defaults, validates, and returns warnings. Relative gold, predicted
// and output paths are resolved against the directory of the config file.
func LoadAndValidate(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := schema.ValidateConfig(data); err != nil {
		return nil, nil, err
	}

	cfg, warnings, err := LoadWithWarnings(path, data)
	if err != nil {
		return nil, nil, err
	}

	applyDefaults(cfg)
	resolvePaths(cfg, filepath.Dir(path))

	if err := Validate(cfg); err != nil {
		return nil, warnings, err
	}

	return cfg, warnings, nil
}

// resolvePaths makes relative paths relative to baseDir.
func resolvePaths(cfg *Config, baseDir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}
	cfg.Gold = resolve(cfg.Gold)
	cfg.Predicted = resolve(cfg.Predicted)
	cfg.Output = resolve(cfg.Output)
}
