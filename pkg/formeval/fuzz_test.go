package formeval

import (
	"io"
	"log/slog"
	"testing"
)

// countLeaves returns the number of comparisons Compare records for gold.
func countLeaves(gold map[string]any) int {
	n := 0
	for _, v := range gold {
		switch g := v.(type) {
		case map[string]any:
			n += countLeaves(g)
		case []any:
			for _, item := range g {
				if obj, ok := item.(map[string]any); ok {
					n += countLeaves(obj)
				}
			}
		default:
			n++
		}
	}
	return n
}

// FuzzCompare checks that any pair of JSON documents yields balanced
// counters, one comparison per gold leaf, and scores within [0, 1].
func FuzzCompare(f *testing.F) {
	seeds := []struct{ gold, predicted string }{
		{`{"a": 1}`, `{"a": 1}`},
		{`{"a": null, "b": "x"}`, `{}`},
		{`{"items": [{"p": 1}, {"p": 2}]}`, `{"items": [{"p": 1}]}`},
		{`{"items": [{"p": 1}, 3, "s"]}`, `{"items": "oops"}`},
		{`{"o": {"1": {"x": true}}}`, `{"o": null}`},
		{`{"a": [[{"b": 1}]]}`, `{"a": [[{"b": 2}]]}`},
		{`{"a": 1}`, `[]`},
		{`{"a.0.b": 1}`, `{"a.0.b": 1}`},
		{`{"id": 9007199254740993}`, `{"id": 9007199254740992}`},
	}
	for _, s := range seeds {
		f.Add(s.gold, s.predicted)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f.Fuzz(func(t *testing.T, goldJSON, predictedJSON string) {
		decoded, err := decodeForm([]byte(goldJSON))
		if err != nil {
			return
		}
		gold, ok := decoded.(map[string]any)
		if !ok || gold == nil {
			return
		}
		predicted, err := decodeForm([]byte(predictedJSON))
		if err != nil {
			predicted = nil
		}

		ev := New(WithLogger(logger))
		ev.Compare(gold, asObject(predicted))

		var total int
		for _, path := range ev.Table().Paths() {
			s, _ := ev.Table().Get(path)
			if s.Correct+s.Incorrect != s.TP+s.TN+s.FP+s.FN {
				t.Fatalf("unbalanced stats for %q: %+v", path, s)
			}
			total += s.Total()
		}
		if want := countLeaves(gold); total != want {
			t.Fatalf("recorded %d comparisons, want %d", total, want)
		}

		scores, err := ev.Score(MetricAccuracy)
		if err != nil {
			t.Fatal(err)
		}
		for path, score := range scores {
			if score < 0 || score > 1 {
				t.Fatalf("score[%q] = %v out of range", path, score)
			}
		}
	})
}
