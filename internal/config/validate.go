package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/AndreyAkinshin/formeval/internal/report"
	"github.com/AndreyAkinshin/formeval/pkg/formeval"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration with defaults applied.
func Validate(cfg *Config) error {
	if _, err := formeval.ParseMetric(cfg.Metric); err != nil {
		return &ValidationError{
			Field:   "metric",
			Message: fmt.Sprintf("%q is not supported (supported: %s)", cfg.Metric, strings.Join(formeval.SupportedMetrics(), ", ")),
		}
	}

	if _, err := report.ParseFormat(cfg.Format); err != nil {
		return &ValidationError{
			Field:   "format",
			Message: err.Error(),
		}
	}

	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return &ValidationError{
			Field:   "log_level",
			Message: err.Error(),
		}
	}

	return nil
}

// ParseLogLevel converts a level name (debug, info, warn, error) to a slog.Level.
func ParseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", name)
	}
	return level, nil
}
