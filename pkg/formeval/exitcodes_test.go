package formeval_test

import (
	"testing"

	"github.com/AndreyAkinshin/formeval/internal/errors"
	"github.com/AndreyAkinshin/formeval/pkg/formeval"
)

func TestExitCodeValues(t *testing.T) {
	tests := []struct {
		name     string
		constant int
		expected int
	}{
		{"ExitSuccess", formeval.ExitSuccess, 0},
		{"ExitFailure", formeval.ExitFailure, 1},
		{"ExitConfigError", formeval.ExitConfigError, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.expected {
				t.Errorf("formeval.%s = %d, want %d", tt.name, tt.constant, tt.expected)
			}
		})
	}
}

// TestExitCodeConsistency verifies that public exit code constants match
// the internal errors package constants.
func TestExitCodeConsistency(t *testing.T) {
	tests := []struct {
		name     string
		public   int
		internal int
	}{
		{"Success", formeval.ExitSuccess, errors.ExitSuccess},
		{"Failure/RuntimeError", formeval.ExitFailure, errors.ExitRuntimeError},
		{"ConfigError", formeval.ExitConfigError, errors.ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.public != tt.internal {
				t.Errorf("public %s = %d, internal = %d", tt.name, tt.public, tt.internal)
			}
		})
	}
}
