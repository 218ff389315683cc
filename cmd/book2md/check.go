package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-book2md/internal/render"
)

// runCheck reports chapter links whose glossary anchor does not exist.
func runCheck(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseCheckFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: check takes one directory, got %d", ErrUsage, len(positional))
	}

	cfg, err := loadConfig(f.common, env)
	if err != nil {
		return err
	}
	if f.glossary != "" {
		cfg.Output.Glossary = f.glossary
	}
	if f.style != "" {
		cfg.Render.Style = f.style
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	dir := cfg.Output.Dir
	if len(positional) == 1 {
		dir = positional[0]
	}
	if dir == "" {
		dir = "."
	}

	r, err := render.New(cfg.Render.Style)
	if err != nil {
		return err
	}
	dangling, err := r.CheckGlossaryLinks(ctx, dir, cfg.Output.Glossary)
	if err != nil {
		return fmt.Errorf("checking %s: %w", dir, err)
	}

	for _, d := range dangling {
		fmt.Fprintf(env.Stderr, "DANGLING %s\n", d)
	}
	if len(dangling) > 0 {
		return withHint(fmt.Errorf("%w: %d in %s", ErrDanglingLinks, len(dangling), dir), f.common.config, cfg)
	}

	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "All glossary links in %s resolve\n", dir)
	}
	return nil
}
