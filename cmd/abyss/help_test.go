package main

import (
	"strings"
	"testing"
)

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args     []string
		wantCode int
		want     string
	}{
		{nil, ExitSuccess, "Usage: abyss [command]"},
		{[]string{"build"}, ExitSuccess, "Usage: abyss build"},
		{[]string{"check"}, ExitSuccess, "Usage: abyss check"},
		{[]string{"config"}, ExitSuccess, "Usage: abyss config"},
		{[]string{"completion"}, ExitSuccess, "Usage: abyss completion"},
		{[]string{"version"}, ExitSuccess, "Usage: abyss version"},
		{[]string{"help"}, ExitSuccess, "Usage: abyss help"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := testEnv(nil)
			if code := runHelp(tt.args, env); code != tt.wantCode {
				t.Errorf("runHelp(%v) = %d, want %d", tt.args, code, tt.wantCode)
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("stdout = %q, want substring %q", stdout.String(), tt.want)
			}
		})
	}

	t.Run("unknown command", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(nil)
		if code := runHelp([]string{"deploy"}, env); code != ExitUsage {
			t.Errorf("code = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "Unknown command: deploy") {
			t.Errorf("stderr = %q", stderr.String())
		}
		if stdout.Len() != 0 {
			t.Errorf("stdout should be empty, got %q", stdout.String())
		}
	})
}

// TestPrintUsage_ListsCommands keeps the usage text in step with dispatch.
func TestPrintUsage_ListsCommands(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(nil)
	printUsage(env.Stdout)
	for _, cmd := range commands {
		if !strings.Contains(stdout.String(), "  "+cmd+" ") {
			t.Errorf("usage does not list %q", cmd)
		}
	}
}
