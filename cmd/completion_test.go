package cmd

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/nibzard/gotodo/internal/config"
)

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = oldStdout
	}()

	runErr := fn()
	_ = w.Close()

	output, readErr := io.ReadAll(r)
	_ = r.Close()
	if readErr != nil {
		t.Fatalf("ReadAll() error = %v", readErr)
	}

	return string(output), runErr
}

func TestCompletionCommandOutputsScripts(t *testing.T) {
	cfg := &config.Config{}

	tests := []struct {
		name   string
		shell  string
		needle string
	}{
		{
			name:   "bash",
			shell:  "bash",
			needle: "# gotodo bash completion",
		},
		{
			name:   "zsh",
			shell:  "zsh",
			needle: "#compdef gotodo",
		},
		{
			name:   "fish",
			shell:  "fish",
			needle: "# gotodo fish completion",
		},
		{
			name:   "powershell",
			shell:  "powershell",
			needle: "# gotodo PowerShell completion",
		},
		{
			name:   "pwsh alias",
			shell:  "pwsh",
			needle: "# gotodo PowerShell completion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := captureStdout(t, func() error {
				return completionCommand(cfg, []string{tt.shell})
			})
			if err != nil {
				t.Fatalf("completionCommand() error = %v", err)
			}
			if !strings.Contains(output, tt.needle) {
				t.Fatalf("completion output missing %q for shell %q", tt.needle, tt.shell)
			}
			// Every script should know the full subcommand set.
			for _, sub := range []string{"doctor", "completion", "tail"} {
				if !strings.Contains(output, sub) {
					t.Errorf("%s script missing subcommand %q", tt.shell, sub)
				}
			}
		})
	}
}

func TestCompletionCommandErrors(t *testing.T) {
	cfg := &config.Config{}

	if err := completionCommand(cfg, []string{}); err == nil {
		t.Fatal("expected error when shell is missing")
	}

	if err := completionCommand(cfg, []string{"unknown"}); err == nil {
		t.Fatal("expected error for unsupported shell")
	}

	if err := completionCommand(cfg, []string{"bash", "extra"}); err == nil {
		t.Fatal("expected error for extra arguments")
	}
}
