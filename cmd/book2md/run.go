package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	book2md "github.com/alnah/go-book2md"
	"github.com/alnah/go-book2md/internal/config"
	"github.com/alnah/go-book2md/internal/fileutil"
	"github.com/alnah/go-book2md/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrNoInput        = errors.New("no master document specified")
	ErrChaptersFailed = errors.New("chapter conversion failed")
	ErrDanglingLinks  = errors.New("dangling glossary links")
)

// runMain dispatches the command in args and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	var err error
	switch cmd, rest := args[1], args[2:]; cmd {
	case "build":
		err = runBuild(ctx, rest, env)
	case "chapter":
		err = runChapter(ctx, rest, env)
	case "check":
		err = runCheck(ctx, rest, env)
	case "config":
		err = runConfig(rest, env)
	case "doctor":
		return runDoctorCmd(ctx, rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "book2md %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
	}
	return exitCodeFor(err)
}

// loadConfig resolves the effective configuration:
// CLI flags > env vars > config file > defaults.
// The config file comes from --config, then BOOK2MD_CONFIG.
func loadConfig(common commonFlags, env *Environment) (*config.Config, error) {
	ev := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	name := common.config
	if name == "" {
		name = ev.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, withHint(fmt.Errorf("loading config: %w", err), name, cfg)
		}
		cfg = loaded
	}

	applyEnvConfig(ev, cfg)
	return cfg, nil
}

// withHint appends the actionable hint matching err, if any.
// name is the config name in use, possibly empty.
func withHint(err error, name string, cfg *config.Config) error {
	var hint string
	switch {
	case err == nil:
		return nil
	case errors.Is(err, book2md.ErrConverterNotFound):
		hint = hints.ForConverterNotFound(cfg.Converter.Command)
	case errors.Is(err, book2md.ErrConversionTimeout):
		hint = hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		hint = hints.ForConfigNotFound(configSearchPaths(name))
	case errors.Is(err, book2md.ErrWriteChapter), errors.Is(err, book2md.ErrWriteGlossary):
		hint = hints.ForOutputDirectory()
	case errors.Is(err, ErrDanglingLinks):
		hint = hints.ForDanglingLinks(cfg.Output.Glossary)
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// configSearchPaths lists where a config name is looked up.
func configSearchPaths(name string) []string {
	if name == "" || fileutil.IsFilePath(name) {
		return nil
	}
	paths := []string{name + ".yaml", name + ".yml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "go-book2md", name+".yaml"))
	}
	return paths
}

// runConfig prints the effective configuration as YAML.
func runConfig(args []string, env *Environment) error {
	f, err := parseConfigFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(*f, env)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	out, err := cfg.YAML()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(out)
	return err
}
