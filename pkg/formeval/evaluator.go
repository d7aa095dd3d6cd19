// Package formeval computes field-level accuracy of predicted JSON forms
// against ground-truth (gold) forms.
//
// Both trees are walked in parallel with gold as the authoritative shape.
// Every scalar leaf of gold is compared with the predicted value at the same
// position and counted under a dotted field path in which array indices are
// collapsed, so all elements of a list aggregate into one bucket.
//
// Example usage:
//
//	ev := formeval.New()
//	if err := ev.CompareFromDirs("forms/gold", "forms/predicted"); err != nil {
//	    log.Fatal(err)
//	}
//	scores, err := ev.Score(formeval.MetricAccuracy)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for path, acc := range scores {
//	    fmt.Printf("%s: %.2f\n", path, acc)
//	}
//
// An Evaluator is not safe for concurrent use. Parallel evaluations should
// use one Evaluator each and combine the results with Merge.
package formeval

import (
	"log/slog"
)

// Evaluator accumulates comparison statistics across any number of form
// pairs.
type Evaluator struct {
	table           *Table
	logger          *slog.Logger
	continueOnError bool
	pairs           int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger used for warnings about malformed input.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithContinueOnError makes CompareFromDirs keep going after a failed pair
// and report all failures at the end instead of stopping at the first one.
func WithContinueOnError(enabled bool) Option {
	return func(e *Evaluator) {
		e.continueOnError = enabled
	}
}

// New creates an Evaluator with an empty table.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		table:  NewTable(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Table returns the accumulated statistics. The returned table is owned by
// the Evaluator and changes with every comparison.
func (e *Evaluator) Table() *Table {
	return e.table
}

// Pairs returns the number of form pairs compared successfully from files.
func (e *Evaluator) Pairs() int {
	return e.pairs
}

// Reset clears all accumulated statistics.
func (e *Evaluator) Reset() {
	e.table.Reset()
	e.pairs = 0
}

// Merge adds the statistics of other into e.
func (e *Evaluator) Merge(other *Evaluator) {
	if other == nil {
		return
	}
	e.table.Merge(other.table)
	e.pairs += other.pairs
}

// Compare walks gold and predicted in parallel and records one comparison
// for every scalar or null leaf of gold.
func (e *Evaluator) Compare(gold, predicted map[string]any) {
	e.compare(gold, predicted, "")
}

func (e *Evaluator) compare(gold, predicted map[string]any, prefix string) {
	for _, key := range sortedKeys(gold) {
		switch g := gold[key].(type) {
		case map[string]any:
			e.compare(g, asObject(lookup(predicted, key)), prefix+key+".")
		case []any:
			list := predictedList(lookup(predicted, key), len(g))
			for i, item := range g {
				obj, ok := item.(map[string]any)
				if !ok {
					e.logger.Warn("unexpected field format in gold form",
						"key", key, "index", i, "value", item)
					continue
				}
				e.compare(obj, asObject(list[i]), prefix+key+".")
			}
		default:
			path := normalizePath(prefix + key)
			e.table.entry(path).record(g, lookup(predicted, key))
		}
	}
}

// Score computes the metric for every field path in the table.
// Paths without any recorded comparison are omitted.
func (e *Evaluator) Score(metric Metric) (map[string]float64, error) {
	if metric != MetricAccuracy {
		return nil, &UnsupportedMetricError{Metric: string(metric)}
	}

	scores := make(map[string]float64, len(e.table.fields))
	for path, s := range e.table.fields {
		if s.Total() == 0 {
			continue
		}
		scores[path] = float64(s.Correct) / float64(s.Total())
	}
	return scores, nil
}

// Overall computes the metric across all field paths at once, weighting
// each comparison equally. It returns 0 for an empty table.
func (e *Evaluator) Overall(metric Metric) (float64, error) {
	if metric != MetricAccuracy {
		return 0, &UnsupportedMetricError{Metric: string(metric)}
	}

	var correct, total int
	for _, s := range e.table.fields {
		correct += s.Correct
		total += s.Total()
	}
	if total == 0 {
		return 0, nil
	}
	return float64(correct) / float64(total), nil
}
