package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/formeval/internal/config"
	"github.com/AndreyAkinshin/formeval/internal/errors"
	"github.com/AndreyAkinshin/formeval/internal/output"
	"github.com/AndreyAkinshin/formeval/internal/report"
	"github.com/AndreyAkinshin/formeval/pkg/formeval"
)

// evalOptions holds the eval flags given on the command line. Unset fields
// fall back to the config file.
type evalOptions struct {
	Gold            string
	Predicted       string
	Metric          string
	Format          string
	Output          string
	ContinueOnError bool
}

// parseEvalFlags parses eval arguments. Flags accept both --name=value and
// --name value forms.
func parseEvalFlags(args []string) (*evalOptions, error) {
	opts := &evalOptions{}
	var positional []string

	value := func(i int, name string) (string, error) {
		if i+1 >= len(args) {
			return "", errors.Usagef("eval: %s requires a value", name)
		}
		return args[i+1], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, val, hasValue := strings.Cut(arg, "=")

		switch name {
		case "--metric", "--format", "--output", "-o":
			if !hasValue {
				v, err := value(i, name)
				if err != nil {
					return nil, err
				}
				val = v
				i++
			}
			switch name {
			case "--metric":
				opts.Metric = val
			case "--format":
				opts.Format = val
			default:
				opts.Output = val
			}
		case "--continue":
			if hasValue {
				return nil, errors.Usagef("eval: --continue does not take a value")
			}
			opts.ContinueOnError = true
		default:
			if strings.HasPrefix(arg, "-") && arg != "-" {
				return nil, errors.Usagef("eval: unknown flag %q", arg)
			}
			positional = append(positional, arg)
		}
	}

	switch len(positional) {
	case 0:
	case 2:
		opts.Gold, opts.Predicted = positional[0], positional[1]
	default:
		return nil, errors.Usagef("eval: expected <gold> and <predicted>, got %d argument(s)", len(positional))
	}
	return opts, nil
}

// merge overlays command-line values on cfg.
func (o *evalOptions) merge(cfg *config.Config) {
	if o.Gold != "" {
		cfg.Gold = o.Gold
		cfg.Predicted = o.Predicted
	}
	if o.Metric != "" {
		cfg.Metric = o.Metric
	}
	if o.Format != "" {
		cfg.Format = o.Format
	}
	if o.Output != "" {
		cfg.Output = o.Output
	}
	if o.ContinueOnError {
		cfg.ContinueOnError = true
	}
}

// cmdEval compares gold and predicted forms and prints the per-field report.
func cmdEval(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printEvalUsage()
		return 0
	}

	evalOpts, err := parseEvalFlags(args)
	if err != nil {
		return reportError(err)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return reportError(err)
	}
	evalOpts.merge(cfg)

	if cfg.Gold == "" || cfg.Predicted == "" {
		return reportError(errors.Usage("eval: <gold> and <predicted> are required (pass them as arguments or set them in formeval.json)"))
	}

	metric, err := formeval.ParseMetric(cfg.Metric)
	if err != nil {
		return reportError(err)
	}
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return reportError(errors.Usagef("eval: %v", err))
	}

	ev := formeval.New(
		formeval.WithLogger(newLogger(opts, cfg)),
		formeval.WithContinueOnError(cfg.ContinueOnError),
	)

	runErr := compare(ev, cfg.Gold, cfg.Predicted)
	var dirErr *formeval.DirectoryError
	if runErr != nil && !stderrors.As(runErr, &dirErr) {
		return reportError(runErr)
	}

	r, err := report.Build(ev, metric)
	if err != nil {
		return reportError(err)
	}
	if dirErr != nil {
		r.FailedPairs = len(dirErr.Failures)
	}
	if err := writeReport(format, cfg.Output, r); err != nil {
		return reportError(err)
	}

	if runErr != nil {
		// Structured reports on stdout must stay parseable.
		if format == report.FormatText || cfg.Output != "" {
			out.FinalFailure("%d of %d form pairs failed", r.FailedPairs, r.FailedPairs+r.Pairs)
		}
		return reportError(runErr)
	}
	return 0
}

// compare dispatches on the kind of the two paths: two directories are
// compared file by file, two files as a single pair.
func compare(ev *formeval.Evaluator, gold, predicted string) error {
	goldDir, err := isDir("gold path", gold)
	if err != nil {
		return err
	}
	predictedDir, err := isDir("predicted path", predicted)
	if err != nil {
		return err
	}

	switch {
	case goldDir && predictedDir:
		return ev.CompareFromDirs(gold, predicted)
	case !goldDir && !predictedDir:
		return ev.CompareFromPaths(gold, predicted)
	default:
		return errors.Usagef("eval: %s and %s must both be files or both be directories", gold, predicted)
	}
}

func isDir(what, path string) (bool, error) {
	info, err := os.Stat(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, errors.NotFound(what, path, err)
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// writeReport renders r to stdout, or to path when it is set.
func writeReport(format report.Format, path string, r *report.Report) error {
	if path == "" {
		return report.Write(format, out, out.Out(), r)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("create report: %v", err))
	}
	w := output.NewWithWriters(f, io.Discard, false)
	if err := report.Write(format, w, f, r); err != nil {
		_ = f.Close()
		return errors.Wrap(err, fmt.Sprintf("write report: %v", err))
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, fmt.Sprintf("write report: %v", err))
	}
	out.Info("Report written to %s", path)
	return nil
}

func printEvalUsage() {
	w := out

	w.HelpTitle("formeval eval - score predicted forms against gold forms")

	w.HelpSection("Usage:")
	w.HelpUsage("formeval eval <gold> <predicted> [flags]")
	w.HelpUsage("formeval eval [flags]                      Use gold and predicted from formeval.json")

	w.HelpSection("Arguments:")
	w.HelpFlag("<gold>", "Gold form file, or directory of gold *.json forms", 11)
	w.HelpFlag("<predicted>", "Predicted form file, or directory with files of the same names", 11)

	w.HelpSection("Flags:")
	w.HelpFlag("--metric=<name>", "Scoring metric (default: accuracy)", widthFlagWithValue)
	w.HelpFlag("--format=<fmt>", "Report format: "+strings.Join(report.ValidFormats(), ", "), widthFlagWithValue)
	w.HelpFlag("-o, --output=<file>", "Write the report to a file", widthFlagWithValue+1)
	w.HelpFlag("--continue", "Skip failing pairs and exit 1 after the report", widthFlagWithValue)

	w.HelpSection("Metrics:")
	title := cases.Title(language.English)
	for _, m := range formeval.SupportedMetrics() {
		w.HelpCommand(m, title.String(m)+": correct / (correct + incorrect) per field", 10)
	}
	w.Println("")
}
