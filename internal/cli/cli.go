// Package cli provides command-line interface functionality for formeval.
package cli

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/formeval/internal/errors"
	"github.com/AndreyAkinshin/formeval/internal/output"
)

// Version is set at build time.
var Version = "dev"

// wantsHelp returns true if args contain -h or --help.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
	}
	return false
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 0
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return 0
	case "--version", "version":
		out.Println("formeval %s", Version)
		return 0
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	if len(remaining) == 0 {
		printUsage()
		return 0
	}
	cmd := remaining[0]
	cmdArgs := remaining[1:]

	switch cmd {
	case "eval":
		return cmdEval(cmdArgs, opts)
	case "init":
		return cmdInit(cmdArgs)
	case "config":
		return cmdConfig(cmdArgs, opts)
	case "completion":
		return cmdCompletion(cmdArgs)
	case "version":
		out.Println("formeval %s", Version)
		return 0
	case "help":
		printUsage()
		return 0
	default:
		out.ErrorPrefix("unknown command %q", cmd)
		out.Hint("Run 'formeval help' for usage.")
		return errors.ExitConfigError
	}
}

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	Quiet      bool
	Verbose    bool
	ConfigPath string // Explicit --config; empty means formeval.json in the working directory if present
}

// parseGlobalFlags pulls global flags out of args wherever they appear and
// returns the remaining arguments in order. Command flags are left in place
// for the command to parse.
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
			i++
		case arg == "-v" || arg == "--verbose":
			opts.Verbose = true
			i++
		case arg == "--config":
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("--config requires a value")
			}
			opts.ConfigPath = args[i+1]
			i += 2
		case strings.HasPrefix(arg, "--config="):
			opts.ConfigPath = strings.TrimPrefix(arg, "--config=")
			if opts.ConfigPath == "" {
				return nil, nil, fmt.Errorf("--config requires a value")
			}
			i++
		default:
			remaining = append(remaining, arg)
			i++
		}
	}

	if err := validateGlobalOptions(opts); err != nil {
		return nil, nil, err
	}

	applyVerbosityToOutput(opts)

	return opts, remaining, nil
}

// validateGlobalOptions checks that global options are valid.
func validateGlobalOptions(opts *GlobalOptions) error {
	if opts.Quiet && opts.Verbose {
		return fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}
	return nil
}

func printUsage() {
	w := out

	w.HelpTitle("formeval - field-level accuracy of predicted JSON forms")

	w.HelpSection("Usage:")
	w.HelpUsage("formeval eval <gold> <predicted> [flags]   Compare two forms or two directories of forms")
	w.HelpUsage("formeval <command> [args]")

	w.HelpSection("Commands:")
	w.HelpCommand("eval", "Score predicted forms against gold forms", 16)
	w.HelpCommand("init", "Create a formeval.json in the current directory", 16)
	w.HelpCommand("config validate", "Validate formeval.json", 16)
	w.HelpCommand("completion", "Generate shell completion (bash, zsh, fish)", 16)
	w.HelpCommand("version", "Show version information", 16)

	printGlobalFlags(w)

	w.HelpSection("Examples:")
	w.HelpExample("formeval eval gold/ predicted/", "Score every gold/*.json against predicted/ files of the same name")
	w.HelpExample("formeval eval gold/a.json predicted/a.json --format=json", "Score one pair and print JSON")
	w.HelpExample("formeval eval --continue --output=report.yaml", "Use paths from formeval.json and skip failing pairs")
	w.Println("")
}

func printGlobalFlags(w *output.Writer) {
	w.HelpSection("Global Flags:")
	w.HelpFlag("-q, --quiet", "Minimal output (errors only)", widthFlagWithValue)
	w.HelpFlag("-v, --verbose", "Log every compared pair", widthFlagWithValue)
	w.HelpFlag("--config=<file>", "Config file (default: ./formeval.json if present)", widthFlagWithValue)
	w.HelpFlag("-h, --help", "Show this help", widthFlagWithValue)
	w.HelpFlag("--version", "Show version", widthFlagWithValue)
}

// widthFlagWithValue aligns flag descriptions in help output.
const widthFlagWithValue = 18
