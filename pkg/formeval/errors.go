package formeval

import (
	"fmt"
	"strings"
)

// InvalidInputError indicates that a pair of form paths cannot be compared,
// for example because one of them is not a .json file.
type InvalidInputError struct {
	GoldPath      string
	PredictedPath string
	Reason        string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q and %q: %s", e.GoldPath, e.PredictedPath, e.Reason)
}

// DecodeError indicates that a form file does not contain valid JSON.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UnsupportedMetricError is returned for any metric other than accuracy.
type UnsupportedMetricError struct {
	Metric string
}

func (e *UnsupportedMetricError) Error() string {
	return fmt.Sprintf("unsupported metric %q (supported: %s)", e.Metric, strings.Join(SupportedMetrics(), ", "))
}

// PairFailure records one form pair that could not be compared.
type PairFailure struct {
	GoldPath      string
	PredictedPath string
	Err           error
}

// DirectoryError summarizes the failed pairs of a directory comparison that
// ran with continue-on-error enabled.
type DirectoryError struct {
	Failures []PairFailure
}

func (e *DirectoryError) Error() string {
	if len(e.Failures) == 1 {
		return fmt.Sprintf("1 form pair failed: %v", e.Failures[0].Err)
	}
	return fmt.Sprintf("%d form pairs failed, first: %v", len(e.Failures), e.Failures[0].Err)
}

// Unwrap exposes the individual pair errors to errors.Is and errors.As.
func (e *DirectoryError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}
