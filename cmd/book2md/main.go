package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS before any work. maxprocs.Set only fails on an
	// invalid GOMAXPROCS env value, in which case runtime defaults apply.
	logger := newLogger(os.Stderr, false, verboseRequested(os.Args))
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// verboseRequested reports whether -v or --verbose appears before flag parsing.
func verboseRequested(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}
	return false
}
