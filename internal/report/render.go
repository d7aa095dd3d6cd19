package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/formeval/internal/output"
)

// Write renders r in the given format. Text output goes through w so it
// picks up terminal colors; JSON and YAML are written to dst.
func Write(format Format, w *output.Writer, dst io.Writer, r *Report) error {
	switch format {
	case FormatJSON:
		return WriteJSON(dst, r)
	case FormatYAML:
		return WriteYAML(dst, r)
	default:
		WriteText(w, r)
		return nil
	}
}

// WriteText prints r as a summary followed by a per-field table.
func WriteText(w *output.Writer, r *Report) {
	title := cases.Title(language.English).String(string(r.Metric))

	w.SummaryHeader(fmt.Sprintf("Field %s", title))
	w.SummaryItem("Form pairs", strconv.Itoa(r.Pairs))
	if r.FailedPairs > 0 {
		w.SummaryFailed("Failed pairs", strconv.Itoa(r.FailedPairs))
	}
	w.SummaryItem("Fields", strconv.Itoa(len(r.Fields)))
	w.SummaryPassed(fmt.Sprintf("Overall %s", title), formatScore(r.Overall))
	w.Println("")

	headers := []string{"FIELD", title, "CORRECT", "INCORRECT", "TP", "TN", "FP", "FN"}
	rows := make([][]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		rows = append(rows, []string{
			f.Path,
			formatScore(f.Score),
			strconv.Itoa(f.Stats.Correct),
			strconv.Itoa(f.Stats.Incorrect),
			strconv.Itoa(f.Stats.TP),
			strconv.Itoa(f.Stats.TN),
			strconv.Itoa(f.Stats.FP),
			strconv.Itoa(f.Stats.FN),
		})
	}
	w.Table(headers, rows)
}

// WriteJSON writes r as indented JSON.
func WriteJSON(dst io.Writer, r *Report) error {
	enc := json.NewEncoder(dst)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteYAML writes r as YAML.
func WriteYAML(dst io.Writer, r *Report) error {
	enc := yaml.NewEncoder(dst)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
