package cli

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/AndreyAkinshin/formeval/internal/config"
	"github.com/AndreyAkinshin/formeval/internal/errors"
)

// Directory names picked up by init when they exist.
const (
	defaultGoldDir      = "gold"
	defaultPredictedDir = "predicted"
)

// cmdInit writes a formeval.json into the working directory. An existing
// file is validated and left untouched.
func cmdInit(args []string) int {
	if wantsHelp(args) {
		printInitUsage()
		return 0
	}

	cfg := config.Default()
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--gold="):
			cfg.Gold = strings.TrimPrefix(arg, "--gold=")
		case strings.HasPrefix(arg, "--predicted="):
			cfg.Predicted = strings.TrimPrefix(arg, "--predicted=")
		default:
			return reportError(errors.Usagef("init: unknown option %q", arg))
		}
	}

	path := config.DefaultFileName
	if _, err := os.Stat(path); err == nil {
		if _, _, err := config.LoadAndValidate(path); err != nil {
			return reportError(errors.ConfigAt(path, err))
		}
		out.Info("%s already exists", path)
		return 0
	}

	// Auto-detect conventional form directories
	if cfg.Gold == "" && isExistingDir(defaultGoldDir) {
		cfg.Gold = defaultGoldDir
	}
	if cfg.Predicted == "" && isExistingDir(defaultPredictedDir) {
		cfg.Predicted = defaultPredictedDir
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return reportError(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return reportError(errors.Wrap(err, "write "+path+": "+err.Error()))
	}

	out.FinalSuccess("Created %s", path)
	if cfg.Gold == "" || cfg.Predicted == "" {
		out.Hint("Set \"gold\" and \"predicted\" in %s, then run 'formeval eval'.", path)
	} else {
		out.Hint("Run 'formeval eval' to score %s against %s.", cfg.Predicted, cfg.Gold)
	}
	return 0
}

func isExistingDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func printInitUsage() {
	w := out

	w.HelpTitle("formeval init - create formeval.json")

	w.HelpSection("Usage:")
	w.HelpUsage("formeval init [--gold=<dir>] [--predicted=<dir>]")

	w.HelpSection("Flags:")
	w.HelpFlag("--gold=<dir>", "Gold forms (default: ./gold if it exists)", widthFlagWithValue)
	w.HelpFlag("--predicted=<dir>", "Predicted forms (default: ./predicted if it exists)", widthFlagWithValue)
	w.Println("")
}
