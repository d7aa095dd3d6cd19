// Package integration contains integration tests for formeval.
package integration

import (
	"bytes"
	"math"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/AndreyAkinshin/formeval/internal/config"
	"github.com/AndreyAkinshin/formeval/internal/report"
	"github.com/AndreyAkinshin/formeval/pkg/formeval"
)

var (
	fixturesDirOnce sync.Once
	fixturesDirPath string
)

// fixturesDir returns the path to the test fixtures directory.
func fixturesDir() string {
	fixturesDirOnce.Do(func() {
		_, filename, _, _ := runtime.Caller(0)
		fixturesDirPath = filepath.Join(filepath.Dir(filename), "..", "fixtures")
	})
	return fixturesDirPath
}

// evaluateInvoices runs the invoices fixture through its own config file.
func evaluateInvoices(t *testing.T) *formeval.Evaluator {
	t.Helper()
	cfg, warnings, err := config.LoadAndValidate(filepath.Join(fixturesDir(), "invoices", "formeval.json"))
	if err != nil {
		t.Fatalf("failed to load invoices config: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected config warnings: %v", warnings)
	}

	ev := formeval.New()
	if err := ev.CompareFromDirs(cfg.Gold, cfg.Predicted); err != nil {
		t.Fatalf("CompareFromDirs() error = %v", err)
	}
	return ev
}

func TestInvoices_Scores(t *testing.T) {
	t.Parallel()
	ev := evaluateInvoices(t)

	if ev.Pairs() != 3 {
		t.Errorf("Pairs() = %d, want 3", ev.Pairs())
	}

	scores, err := ev.Score(formeval.MetricAccuracy)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	want := map[string]float64{
		"currency":               2.0 / 3,
		"date":                   2.0 / 3,
		"invoice_number":         1,
		"line_items.description": 0.8,
		"line_items.quantity":    0.8,
		"line_items.unit_price":  0.8,
		"notes":                  1.0 / 3,
		"total":                  2.0 / 3,
		"vendor.name":            1.0 / 3,
		"vendor.vat_id":          1.0 / 3,
	}
	if len(scores) != len(want) {
		t.Errorf("got %d scored paths, want %d: %v", len(scores), len(want), scores)
	}
	for path, w := range want {
		got, ok := scores[path]
		if !ok {
			t.Errorf("missing score for %q", path)
			continue
		}
		if math.Abs(got-w) > 1e-9 {
			t.Errorf("score[%q] = %v, want %v", path, got, w)
		}
	}

	overall, err := ev.Overall(formeval.MetricAccuracy)
	if err != nil {
		t.Fatalf("Overall() error = %v", err)
	}
	if math.Abs(overall-24.0/36) > 1e-9 {
		t.Errorf("Overall() = %v, want %v", overall, 24.0/36)
	}
}

func TestInvoices_ConfusionCounts(t *testing.T) {
	t.Parallel()
	table := evaluateInvoices(t).Table()

	tests := []struct {
		path string
		want formeval.FieldStats
	}{
		{"currency", formeval.FieldStats{Correct: 2, Incorrect: 1, TP: 2, FN: 1}},
		{"total", formeval.FieldStats{Correct: 2, Incorrect: 1, TP: 3}},
		{"notes", formeval.FieldStats{Correct: 1, Incorrect: 2, TN: 1, FP: 1, FN: 1}},
		{"vendor.vat_id", formeval.FieldStats{Correct: 1, Incorrect: 2, TP: 1, FP: 1, FN: 1}},
		{"line_items.description", formeval.FieldStats{Correct: 4, Incorrect: 1, TP: 4, FN: 1}},
	}

	for _, tt := range tests {
		got, ok := table.Get(tt.path)
		if !ok {
			t.Errorf("missing stats for %q", tt.path)
			continue
		}
		if got != tt.want {
			t.Errorf("stats[%q] = %+v, want %+v", tt.path, got, tt.want)
		}
		if got.Correct+got.Incorrect != got.TP+got.TN+got.FP+got.FN {
			t.Errorf("stats[%q] unbalanced: %+v", tt.path, got)
		}
	}
}

func TestInvoices_MergeMatchesDirectoryRun(t *testing.T) {
	t.Parallel()
	whole := evaluateInvoices(t)

	merged := formeval.New()
	for _, name := range []string{"inv-001.json", "inv-002.json", "inv-003.json"} {
		single := formeval.New()
		gold := filepath.Join(fixturesDir(), "invoices", "gold", name)
		predicted := filepath.Join(fixturesDir(), "invoices", "predicted", name)
		if err := single.CompareFromPaths(gold, predicted); err != nil {
			t.Fatalf("CompareFromPaths(%s) error = %v", name, err)
		}
		merged.Merge(single)
	}

	if merged.Pairs() != whole.Pairs() {
		t.Errorf("merged Pairs() = %d, want %d", merged.Pairs(), whole.Pairs())
	}
	for _, path := range whole.Table().Paths() {
		want, _ := whole.Table().Get(path)
		got, _ := merged.Table().Get(path)
		if got != want {
			t.Errorf("merged stats[%q] = %+v, want %+v", path, got, want)
		}
	}
}

func TestInvoices_ReportFormats(t *testing.T) {
	t.Parallel()
	r, err := report.Build(evaluateInvoices(t), formeval.MetricAccuracy)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(r.Fields) != 10 {
		t.Errorf("len(Fields) = %d, want 10", len(r.Fields))
	}
	if r.Fields[0].Path != "currency" || r.Fields[len(r.Fields)-1].Path != "vendor.vat_id" {
		t.Errorf("fields not sorted by path: first %q, last %q", r.Fields[0].Path, r.Fields[len(r.Fields)-1].Path)
	}

	for _, format := range []report.Format{report.FormatJSON, report.FormatYAML} {
		var buf bytes.Buffer
		if err := report.Write(format, nil, &buf, r); err != nil {
			t.Errorf("Write(%s) error = %v", format, err)
		}
		if !bytes.Contains(buf.Bytes(), []byte("line_items.unit_price")) {
			t.Errorf("%s report missing field path", format)
		}
	}
}
