package formeval

import (
	"encoding/json"
	"fmt"
	"sort"
)

// FieldStats holds the comparison counters for one normalized field path.
//
// Every leaf comparison increments exactly one of Correct/Incorrect and
// exactly one of TP/TN/FP/FN, so Correct+Incorrect always equals
// TP+TN+FP+FN.
type FieldStats struct {
	// Correct counts comparisons where the predicted value equals the gold value.
	Correct int `json:"Correct" yaml:"correct"`

	// Incorrect counts comparisons where the values differ.
	Incorrect int `json:"Incorrect" yaml:"incorrect"`

	// TN counts gold null and predicted null.
	TN int `json:"TN" yaml:"tn"`

	// FP counts gold null and predicted non-null.
	FP int `json:"FP" yaml:"fp"`

	// FN counts gold non-null and predicted null.
	FN int `json:"FN" yaml:"fn"`

	// TP counts gold non-null and predicted non-null.
	TP int `json:"TP" yaml:"tp"`
}

// Total returns the number of comparisons recorded for the field.
func (s FieldStats) Total() int {
	return s.Correct + s.Incorrect
}

func (s *FieldStats) add(o FieldStats) {
	s.Correct += o.Correct
	s.Incorrect += o.Incorrect
	s.TN += o.TN
	s.FP += o.FP
	s.FN += o.FN
	s.TP += o.TP
}

func (s FieldStats) validate() error {
	for _, n := range []int{s.Correct, s.Incorrect, s.TN, s.FP, s.FN, s.TP} {
		if n < 0 {
			return fmt.Errorf("negative counter in %+v", s)
		}
	}
	if s.Correct+s.Incorrect != s.TP+s.TN+s.FP+s.FN {
		return fmt.Errorf("unbalanced counters: Correct+Incorrect=%d, TP+TN+FP+FN=%d",
			s.Correct+s.Incorrect, s.TP+s.TN+s.FP+s.FN)
	}
	return nil
}

// record adds one leaf comparison.
func (s *FieldStats) record(gold, predicted any) {
	if valuesEqual(gold, predicted) {
		s.Correct++
	} else {
		s.Incorrect++
	}

	switch {
	case gold == nil && predicted == nil:
		s.TN++
	case gold == nil:
		s.FP++
	case predicted == nil:
		s.FN++
	default:
		s.TP++
	}
}

// Table maps normalized field paths to their statistics.
// Entries are only ever added or incremented by comparisons.
// A Table is not safe for concurrent use.
type Table struct {
	fields map[string]*FieldStats
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{fields: make(map[string]*FieldStats)}
}

// entry returns the stats for path, creating a zeroed entry on first use.
func (t *Table) entry(path string) *FieldStats {
	s, ok := t.fields[path]
	if !ok {
		s = &FieldStats{}
		t.fields[path] = s
	}
	return s
}

// Get returns a copy of the stats recorded for path.
func (t *Table) Get(path string) (FieldStats, bool) {
	s, ok := t.fields[path]
	if !ok {
		return FieldStats{}, false
	}
	return *s, true
}

// Len returns the number of field paths in the table.
func (t *Table) Len() int {
	return len(t.fields)
}

// Paths returns all field paths in sorted order.
func (t *Table) Paths() []string {
	paths := make([]string, 0, len(t.fields))
	for p := range t.fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// set replaces the stats for path.
func (t *Table) set(path string, stats FieldStats) {
	s := stats
	t.fields[path] = &s
}

// Merge adds every counter of other into t, key by key.
func (t *Table) Merge(other *Table) {
	if other == nil {
		return
	}
	for path, s := range other.fields {
		t.entry(path).add(*s)
	}
}

// Reset removes all entries.
func (t *Table) Reset() {
	t.fields = make(map[string]*FieldStats)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := NewTable()
	c.Merge(t)
	return c
}

// Snapshot returns the table contents as a plain map.
func (t *Table) Snapshot() map[string]FieldStats {
	m := make(map[string]FieldStats, len(t.fields))
	for path, s := range t.fields {
		m[path] = *s
	}
	return m
}

// MarshalJSON encodes the table as an object keyed by field path.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Snapshot())
}

// UnmarshalJSON replaces the table contents with the decoded entries.
// Entries with negative counters or where Correct+Incorrect differs from
// TP+TN+FP+FN are rejected and leave the table unchanged.
func (t *Table) UnmarshalJSON(data []byte) error {
	var m map[string]FieldStats
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for _, path := range sortedStatPaths(m) {
		if err := m[path].validate(); err != nil {
			return fmt.Errorf("field %q: %w", path, err)
		}
	}
	t.Reset()
	for path, s := range m {
		t.set(path, s)
	}
	return nil
}

func sortedStatPaths(m map[string]FieldStats) []string {
	paths := make([]string, 0, len(m))
	for path := range m {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
