// Package errors provides structured error types and exit codes for formeval.
package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"

	"github.com/AndreyAkinshin/formeval/pkg/formeval"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess      = formeval.ExitSuccess     // Success
	ExitRuntimeError = formeval.ExitFailure     // Runtime error (unreadable or malformed form, failed pairs, etc.)
	ExitConfigError  = formeval.ExitConfigError // Configuration or usage error (invalid config, bad arguments, unknown metric)
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindUsage
	KindInvalidInput
	KindDecode
	KindUnsupportedMetric
)

// FormevalError is the base error type for the CLI.
type FormevalError struct {
	Kind    ErrorKind
	Message string
	Path    string // Form or config path if applicable
	Cause   error  // Underlying error
}

func (e *FormevalError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

func (e *FormevalError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *FormevalError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindUsage, KindInvalidInput, KindUnsupportedMetric:
		return ExitConfigError
	default:
		return ExitRuntimeError
	}
}

// ConfigAt wraps a failure to load or validate the config file at path.
func ConfigAt(path string, err error) *FormevalError {
	return &FormevalError{
		Kind:    KindConfig,
		Message: err.Error(),
		Path:    path,
		Cause:   err,
	}
}

// Usage creates a new command-line usage error.
func Usage(message string) *FormevalError {
	return &FormevalError{
		Kind:    KindUsage,
		Message: message,
	}
}

// Usagef creates a new usage error with formatting.
func Usagef(format string, args ...interface{}) *FormevalError {
	return Usage(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *FormevalError {
	return &FormevalError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// NotFound creates a not found error for the named file or directory.
func NotFound(what, name string, cause error) *FormevalError {
	return &FormevalError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
		Cause:   cause,
	}
}

// Classify converts an error returned by the evaluator into a FormevalError
// with the matching kind. Errors that already are FormevalErrors are
// returned unchanged.
func Classify(err error) *FormevalError {
	if err == nil {
		return nil
	}

	var fe *FormevalError
	if stderrors.As(err, &fe) {
		return fe
	}

	var (
		inputErr  *formeval.InvalidInputError
		decodeErr *formeval.DecodeError
		metricErr *formeval.UnsupportedMetricError
		dirErr    *formeval.DirectoryError
	)
	switch {
	case stderrors.As(err, &dirErr):
		// Individual pair failures were already reported; the run itself failed.
		return &FormevalError{Kind: KindRuntime, Message: err.Error(), Cause: err}
	case stderrors.As(err, &metricErr):
		return &FormevalError{Kind: KindUnsupportedMetric, Message: err.Error(), Cause: err}
	case stderrors.As(err, &inputErr):
		return &FormevalError{Kind: KindInvalidInput, Message: err.Error(), Cause: err}
	case stderrors.As(err, &decodeErr):
		return &FormevalError{Kind: KindDecode, Message: err.Error(), Cause: err}
	case stderrors.Is(err, fs.ErrNotExist):
		return &FormevalError{Kind: KindNotFound, Message: err.Error(), Cause: err}
	default:
		return &FormevalError{Kind: KindRuntime, Message: err.Error(), Cause: err}
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return Classify(err).ExitCode()
}
