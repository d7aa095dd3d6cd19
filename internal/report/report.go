// Package report turns an evaluator's statistics into a per-field report and
// renders it as a text table, JSON or YAML.
package report

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/formeval/pkg/formeval"
)

// Format selects how a report is rendered.
type Format string

// Supported report formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ValidFormats returns the names of all report formats.
func ValidFormats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML)}
}

// ParseFormat converts a format name to a Format. "yml" is accepted as an
// alias for yaml.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format %q (must be %s)", name, strings.Join(ValidFormats(), ", "))
	}
}

// FieldRow is the report line for one field path.
type FieldRow struct {
	Path  string              `json:"path" yaml:"path"`
	Score float64             `json:"score" yaml:"score"`
	Stats formeval.FieldStats `json:"stats" yaml:"stats"`
}

// Report is the scored summary of an evaluation run.
type Report struct {
	Metric      formeval.Metric `json:"metric" yaml:"metric"`
	Pairs       int             `json:"pairs" yaml:"pairs"`
	FailedPairs int             `json:"failed_pairs,omitempty" yaml:"failed_pairs,omitempty"` // Pairs skipped after an error
	Overall     float64         `json:"overall" yaml:"overall"`
	Fields      []FieldRow      `json:"fields" yaml:"fields"`
}

// Build scores every field path of ev with metric. Rows are sorted by path.
func Build(ev *formeval.Evaluator, metric formeval.Metric) (*Report, error) {
	scores, err := ev.Score(metric)
	if err != nil {
		return nil, err
	}
	overall, err := ev.Overall(metric)
	if err != nil {
		return nil, err
	}

	table := ev.Table()
	r := &Report{
		Metric:  metric,
		Pairs:   ev.Pairs(),
		Overall: overall,
		Fields:  make([]FieldRow, 0, table.Len()),
	}
	for _, path := range table.Paths() {
		score, ok := scores[path]
		if !ok {
			continue
		}
		stats, _ := table.Get(path)
		r.Fields = append(r.Fields, FieldRow{Path: path, Score: score, Stats: stats})
	}
	return r, nil
}
