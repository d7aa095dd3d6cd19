package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/formeval/internal/config"
)

func TestCmdInit_DetectsDirectories(t *testing.T) {
	root := setupForms(t)
	stdout, _ := captureOutput(t)

	if exitCode := Run([]string{"init"}); exitCode != 0 {
		t.Fatalf("Run(init) = %d, want 0", exitCode)
	}

	cfg, err := config.Load(filepath.Join(root, config.DefaultFileName))
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Gold != "gold" || cfg.Predicted != "predicted" {
		t.Errorf("cfg = %+v, want detected gold and predicted directories", cfg)
	}
	if cfg.Metric != config.DefaultMetric {
		t.Errorf("Metric = %q, want %q", cfg.Metric, config.DefaultMetric)
	}
	if !strings.Contains(stdout.String(), "Created formeval.json") {
		t.Errorf("stdout = %q", stdout.String())
	}

	// The generated file drives eval without arguments.
	captureOutput(t)
	if exitCode := Run([]string{"eval"}); exitCode != 0 {
		t.Errorf("Run(eval) after init = %d, want 0", exitCode)
	}
}

func TestCmdInit_ExplicitPaths(t *testing.T) {
	root := t.TempDir()
	chdir(t, root)
	captureOutput(t)

	if exitCode := Run([]string{"init", "--gold=forms/gold", "--predicted=forms/out"}); exitCode != 0 {
		t.Fatalf("Run(init) = %d, want 0", exitCode)
	}

	cfg, err := config.Load(filepath.Join(root, config.DefaultFileName))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Gold != "forms/gold" || cfg.Predicted != "forms/out" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestCmdInit_ExistingConfigUntouched(t *testing.T) {
	root := t.TempDir()
	chdir(t, root)
	original := `{"gold": "g", "predicted": "p", "format": "yaml"}`
	writeFile(t, filepath.Join(root, config.DefaultFileName), original)
	stdout, _ := captureOutput(t)

	if exitCode := Run([]string{"init"}); exitCode != 0 {
		t.Fatalf("Run(init) = %d, want 0", exitCode)
	}

	data, err := os.ReadFile(filepath.Join(root, config.DefaultFileName))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != original {
		t.Errorf("existing config was modified: %s", data)
	}
	if !strings.Contains(stdout.String(), "already exists") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestCmdInit_UnknownOption(t *testing.T) {
	chdir(t, t.TempDir())
	captureOutput(t)
	if exitCode := Run([]string{"init", "--mise"}); exitCode != 2 {
		t.Errorf("Run(init --mise) = %d, want 2", exitCode)
	}
}

func TestCmdConfig_NoSubcommand_ReturnsError(t *testing.T) {
	captureOutput(t)
	if exitCode := cmdConfig([]string{}, &GlobalOptions{}); exitCode != 2 {
		t.Errorf("cmdConfig([]) = %d, want 2", exitCode)
	}
}

func TestCmdConfig_UnknownSubcommand_ReturnsError(t *testing.T) {
	captureOutput(t)
	if exitCode := cmdConfig([]string{"unknown"}, &GlobalOptions{}); exitCode != 2 {
		t.Errorf("cmdConfig([unknown]) = %d, want 2", exitCode)
	}
}

func TestCmdConfigValidate(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "valid",
			content:    `{"gold": "g", "predicted": "p"}`,
			wantCode:   0,
			wantStdout: "Configuration is valid.",
		},
		{
			name:       "unknown field warning",
			content:    `{"gold": "g", "threshold": 0.9}`,
			wantCode:   0,
			wantStderr: `warning: unknown field "threshold" in config (ignored)`,
		},
		{
			name:       "schema violation",
			content:    `{"metric": "f1"}`,
			wantCode:   2,
			wantStderr: "config validation failed",
		},
		{
			name:       "malformed JSON",
			content:    `{"gold":`,
			wantCode:   2,
			wantStderr: "invalid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			chdir(t, root)
			writeFile(t, filepath.Join(root, config.DefaultFileName), tt.content)
			stdout, stderr := captureOutput(t)

			if got := Run([]string{"config", "validate"}); got != tt.wantCode {
				t.Errorf("Run(config validate) = %d, want %d; stderr: %s", got, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestCmdConfigValidate_MissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	captureOutput(t)
	if exitCode := Run([]string{"config", "validate"}); exitCode != 2 {
		t.Errorf("Run(config validate) = %d, want 2", exitCode)
	}
}

func TestCmdConfigValidate_ExplicitPath(t *testing.T) {
	root := t.TempDir()
	chdir(t, root)
	writeFile(t, filepath.Join(root, "conf", "run.json"), `{"gold": "g"}`)
	stdout, _ := captureOutput(t)

	if exitCode := Run([]string{"--config=conf/run.json", "config", "validate"}); exitCode != 0 {
		t.Fatalf("Run() = %d, want 0", exitCode)
	}
	if want := "Gold: " + filepath.Join("conf", "g"); !strings.Contains(stdout.String(), want) {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
	if !strings.Contains(stdout.String(), "Predicted: (not set)") {
		t.Errorf("stdout = %q, want unset predicted", stdout.String())
	}
}
