package cli

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/AndreyAkinshin/formeval/internal/config"
	"github.com/AndreyAkinshin/formeval/internal/errors"
	"github.com/AndreyAkinshin/formeval/internal/output"
)

// out is the shared output writer for CLI commands.
var out = output.New()

// applyVerbosityToOutput configures the output writer based on global options.
func applyVerbosityToOutput(opts *GlobalOptions) {
	out.SetQuiet(opts.Quiet)
	out.SetVerbose(opts.Verbose)
}

// reportError prints err and returns the matching exit code.
func reportError(err error) int {
	out.ErrorPrefix("%v", err)
	return errors.GetExitCode(err)
}

// loadConfig returns the run configuration. An explicit --config file must
// exist; otherwise formeval.json in the working directory is used when
// present and built-in defaults when it is not. Config warnings are printed.
func loadConfig(opts *GlobalOptions) (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		if _, err := os.Stat(config.DefaultFileName); stderrors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
		path = config.DefaultFileName
	}

	cfg, warnings, err := config.LoadAndValidate(path)
	for _, w := range warnings {
		out.WarningSimple("%s", w)
	}
	if err != nil {
		return nil, errors.ConfigAt(path, err)
	}
	return cfg, nil
}

// newLogger builds the logger handed to the evaluator. Quiet and verbose
// flags take precedence over the configured level.
func newLogger(opts *GlobalOptions, cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case opts.Quiet:
		level = slog.LevelError
	case opts.Verbose:
		level = slog.LevelDebug
	default:
		if l, err := config.ParseLogLevel(cfg.LogLevel); err == nil {
			level = l
		}
	}
	return slog.New(output.NewLogHandler(out, level))
}

func cmdConfig(args []string, opts *GlobalOptions) int {
	if len(args) == 0 {
		out.ErrorPrefix("config: subcommand required (validate)")
		return errors.ExitConfigError
	}

	switch args[0] {
	case "validate":
		return cmdConfigValidate(opts)
	case "-h", "--help":
		printConfigUsage()
		return 0
	default:
		out.ErrorPrefix("config: unknown subcommand %q", args[0])
		return errors.ExitConfigError
	}
}

func cmdConfigValidate(opts *GlobalOptions) int {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultFileName
	}

	cfg, warnings, err := config.LoadAndValidate(path)
	for _, w := range warnings {
		out.WarningSimple("%s", w)
	}
	if err != nil {
		return reportError(errors.ConfigAt(path, err))
	}

	out.ValidationSuccess("Configuration is valid.")
	out.SummaryItem("Gold", valueOrUnset(cfg.Gold))
	out.SummaryItem("Predicted", valueOrUnset(cfg.Predicted))
	out.SummaryItem("Metric", cfg.Metric)
	out.SummaryItem("Format", cfg.Format)
	out.SummaryItem("Continue on error", strconv.FormatBool(cfg.ContinueOnError))
	if len(warnings) > 0 {
		out.SummaryItem("Warnings", strconv.Itoa(len(warnings)))
	}
	return 0
}

func valueOrUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func printConfigUsage() {
	w := out

	w.HelpTitle("formeval config - configuration utilities")

	w.HelpSection("Usage:")
	w.HelpUsage("formeval config validate [--config=<file>]")

	w.HelpSection("Commands:")
	w.HelpCommand("validate", "Check formeval.json against the schema and report its settings", 10)
	w.Println("")
}
