package main

// Notes:
// - runMain: we test command dispatch and exit codes. Conversions use
//   fakeConverter; the real pandoc path is covered by the root package's
//   integration tests.
// - verboseRequested: we test the pre-parse scan used before flag parsing.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunMain - Main entry point exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage and exits with ExitUsage",
			args:         []string{"book2md"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: book2md"},
		},
		{
			name:         "version command exits 0",
			args:         []string{"book2md", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"book2md " + Version},
		},
		{
			name:         "help command exits 0",
			args:         []string{"book2md", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: book2md", "Commands:"},
		},
		{
			name:         "help build shows build help",
			args:         []string{"book2md", "help", "build"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: book2md build"},
		},
		{
			name:         "unknown command exits with ExitUsage",
			args:         []string{"book2md", "unknown"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: unknown"},
		},
		{
			name:         "build -h prints usage and exits 0",
			args:         []string{"book2md", "build", "-h"},
			wantCode:     ExitSuccess,
			wantInStderr: []string{"Usage: book2md build"},
		},
		{
			name:         "unknown flag exits with ExitUsage",
			args:         []string{"book2md", "build", "--bogus"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid usage", "bogus"},
		},
		{
			name:         "chapter without files exits with ExitUsage",
			args:         []string{"book2md", "chapter"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"no chapter files given"},
		},
		{
			name:         "build with two masters exits with ExitUsage",
			args:         []string{"book2md", "build", "a.tex", "b.tex"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"one master document"},
		},
		{
			name:         "missing master file exits with ExitIO",
			args:         []string{"book2md", "build", "nonexistent.tex"},
			wantCode:     ExitIO,
			wantInStderr: []string{"failed to read master document"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(&fakeConverter{})

			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestVerboseRequested - Pre-parse verbose detection
// ---------------------------------------------------------------------------

func TestVerboseRequested(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"short flag", []string{"book2md", "build", "-v"}, true},
		{"long flag", []string{"book2md", "build", "--verbose", "book.tex"}, true},
		{"absent", []string{"book2md", "build", "book.tex"}, false},
		{"after terminator", []string{"book2md", "build", "--", "-v"}, false},
		{"no args", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := verboseRequested(tt.args); got != tt.want {
				t.Errorf("verboseRequested(%q) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestVersion - Version variable
// ---------------------------------------------------------------------------

func TestVersion(t *testing.T) {
	t.Parallel()

	if Version == "" {
		t.Error("Version should not be empty")
	}
}
