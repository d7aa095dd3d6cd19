package cli

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/formeval/internal/errors"
	"github.com/AndreyAkinshin/formeval/internal/report"
	"github.com/AndreyAkinshin/formeval/pkg/formeval"
)

// cmdCompletion generates shell completion scripts.
func cmdCompletion(args []string) int {
	shell := ""
	alias := ""

	for _, arg := range args {
		switch {
		case arg == "-h" || arg == "--help":
			printCompletionUsage()
			return 0
		case strings.HasPrefix(arg, "--alias="):
			alias = strings.TrimPrefix(arg, "--alias=")
		case arg == "--alias":
			out.ErrorPrefix("completion: --alias requires a value (--alias=<name>)")
			return errors.ExitConfigError
		case strings.HasPrefix(arg, "-"):
			out.ErrorPrefix("completion: unknown flag: %s", arg)
			return errors.ExitConfigError
		default:
			if shell != "" {
				out.ErrorPrefix("completion: unexpected argument: %s", arg)
				return errors.ExitConfigError
			}
			shell = arg
		}
	}

	if shell == "" {
		out.ErrorPrefix("completion: shell required (bash, zsh, fish)")
		return errors.ExitConfigError
	}

	cmdName := "formeval"
	if alias != "" {
		cmdName = alias
	}

	switch shell {
	case "bash":
		out.Print("%s", generateBashCompletion(cmdName))
	case "zsh":
		out.Print("%s", generateZshCompletion(cmdName))
	case "fish":
		out.Print("%s", generateFishCompletion(cmdName))
	default:
		out.ErrorPrefix("completion: unsupported shell %q (use bash, zsh, or fish)", shell)
		return errors.ExitConfigError
	}

	return 0
}

func printCompletionUsage() {
	w := out

	w.HelpTitle("formeval completion - generate shell completion scripts")

	w.HelpSection("Usage:")
	w.HelpUsage("formeval completion <shell> [--alias=<name>]")

	w.HelpSection("Arguments:")
	w.HelpFlag("<shell>", "Shell type: bash, zsh, or fish", 10)

	w.HelpSection("Options:")
	w.HelpFlag("--alias=<name>", "Generate completion for command alias", 14)

	w.HelpSection("Installation:")
	w.Println("  Bash:  eval \"$(formeval completion bash)\"")
	w.Println("  Zsh:   eval \"$(formeval completion zsh)\"")
	w.Println("  Fish:  formeval completion fish | source")
	w.Println("")
}

type completionItem struct {
	name        string
	description string
}

// builtinCommands returns the CLI commands with their descriptions.
func builtinCommands() []completionItem {
	return []completionItem{
		{"eval", "Score predicted forms against gold forms"},
		{"init", "Create formeval.json"},
		{"config", "Configuration utilities"},
		{"completion", "Generate shell completion"},
		{"version", "Show version information"},
		{"help", "Show help"},
	}
}

// globalFlags returns the flags accepted by every command.
func globalFlags() []string {
	return []string{"--quiet", "--verbose", "--config", "--help", "--version"}
}

// evalFlags returns the flags of the eval command.
func evalFlags() []string {
	return []string{"--metric", "--format", "--output", "--continue"}
}

func commandNames() []string {
	var names []string
	for _, c := range builtinCommands() {
		names = append(names, c.name)
	}
	return names
}

func generateBashCompletion(cmdName string) string {
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_") + "_completions"

	return fmt.Sprintf(`# %[1]s bash completion
# Add to ~/.bashrc: eval "$(formeval completion bash)"

%[2]s() {
    local cur prev words cword
    _init_completion || return

    local commands="%[3]s"
    local flags="%[4]s"
    local eval_flags="%[5]s"

    case "${prev}" in
        %[1]s)
            COMPREPLY=($(compgen -W "${commands} ${flags}" -- "${cur}"))
            return
            ;;
        config)
            COMPREPLY=($(compgen -W "validate" -- "${cur}"))
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            return
            ;;
        --metric)
            COMPREPLY=($(compgen -W "%[6]s" -- "${cur}"))
            return
            ;;
        --format)
            COMPREPLY=($(compgen -W "%[7]s" -- "${cur}"))
            return
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        if [[ " ${words[*]} " == *" eval "* ]]; then
            COMPREPLY=($(compgen -W "${eval_flags} ${flags}" -- "${cur}"))
        else
            COMPREPLY=($(compgen -W "${flags}" -- "${cur}"))
        fi
        return
    fi

    # Gold and predicted arguments are files or directories
    _filedir
}

complete -F %[2]s %[1]s
`, cmdName, funcName,
		strings.Join(commandNames(), " "),
		strings.Join(globalFlags(), " "),
		strings.Join(evalFlags(), " "),
		strings.Join(formeval.SupportedMetrics(), " "),
		strings.Join(report.ValidFormats(), " "))
}

func generateZshCompletion(cmdName string) string {
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_")

	var commands strings.Builder
	for _, c := range builtinCommands() {
		fmt.Fprintf(&commands, "        '%s:%s'\n", c.name, c.description)
	}

	return fmt.Sprintf(`#compdef %[1]s
# %[1]s zsh completion
# Add to ~/.zshrc: eval "$(formeval completion zsh)"

%[2]s() {
    local -a commands
    commands=(
%[3]s    )

    if (( CURRENT == 2 )); then
        _describe -t commands 'command' commands
        return
    fi

    case "${words[2]}" in
        eval)
            _arguments \
                '--metric=[Scoring metric]:metric:(%[4]s)' \
                '--format=[Report format]:format:(%[5]s)' \
                '--output=[Report file]:file:_files' \
                '--continue[Skip failing pairs]' \
                '*:form:_files'
            ;;
        config)
            _values 'config subcommand' 'validate[Validate configuration]'
            ;;
        completion)
            _values 'shell' bash zsh fish
            ;;
    esac
}

compdef %[2]s %[1]s
`, cmdName, funcName, commands.String(),
		strings.Join(formeval.SupportedMetrics(), " "),
		strings.Join(report.ValidFormats(), " "))
}

func generateFishCompletion(cmdName string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s fish completion\n# Add to config: formeval completion fish | source\n\n", cmdName)

	for _, c := range builtinCommands() {
		fmt.Fprintf(&sb, "complete -c %s -n '__fish_use_subcommand' -f -a '%s' -d '%s'\n", cmdName, c.name, c.description)
	}

	sb.WriteString("\n# Global flags\n")
	fmt.Fprintf(&sb, "complete -c %s -s q -l quiet -d 'Minimal output'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -s v -l verbose -d 'Log every compared pair'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -l config -r -d 'Config file'\n", cmdName)

	sb.WriteString("\n# eval flags\n")
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from eval' -l metric -x -a '%s' -d 'Scoring metric'\n",
		cmdName, strings.Join(formeval.SupportedMetrics(), " "))
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from eval' -l format -x -a '%s' -d 'Report format'\n",
		cmdName, strings.Join(report.ValidFormats(), " "))
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from eval' -s o -l output -r -d 'Report file'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from eval' -l continue -d 'Skip failing pairs'\n", cmdName)

	sb.WriteString("\n# Subcommands\n")
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from config' -f -a 'validate' -d 'Validate configuration'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from completion' -f -a 'bash zsh fish'\n", cmdName)

	return sb.String()
}
