package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	book2md "github.com/alnah/go-book2md"
	"github.com/alnah/go-book2md/internal/cache"
	"github.com/alnah/go-book2md/internal/config"
	"github.com/alnah/go-book2md/internal/hints"
	"github.com/alnah/go-book2md/internal/render"
)

// runBuild converts a master document into chapters and a glossary.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseBuildFlags("build", args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: build takes one master document, got %d", ErrUsage, len(positional))
	}

	cfg, err := resolveBuildConfig(f, env)
	if err != nil {
		return err
	}

	master := cfg.Input.Master
	if len(positional) == 1 {
		master = positional[0]
	}
	if master == "" {
		return ErrNoInput
	}

	book, closeBook, err := openBook(cfg, f.common, env)
	if err != nil {
		return withHint(err, f.common.config, cfg)
	}
	defer closeBook()

	report, err := book.Build(ctx, master)
	if report != nil {
		printReport(env, report, f.common, err == nil)
	}
	if err != nil {
		return withHint(err, f.common.config, cfg)
	}
	return withHint(failureError(report), f.common.config, cfg)
}

// runChapter converts existing chapter files and aggregates their glossary.
func runChapter(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseBuildFlags("chapter", args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: %w", ErrUsage, book2md.ErrNoChapterArguments)
	}

	cfg, err := resolveBuildConfig(f, env)
	if err != nil {
		return err
	}

	book, closeBook, err := openBook(cfg, f.common, env)
	if err != nil {
		return withHint(err, f.common.config, cfg)
	}
	defer closeBook()

	report, err := book.ProcessChapters(ctx, positional)
	if report != nil {
		printReport(env, report, f.common, err == nil)
	}
	if err != nil {
		return withHint(err, f.common.config, cfg)
	}
	return withHint(failureError(report), f.common.config, cfg)
}

// resolveBuildConfig loads the config, applies flags and validates the result.
func resolveBuildConfig(f *buildFlags, env *Environment) (*config.Config, error) {
	cfg, err := loadConfig(f.common, env)
	if err != nil {
		return nil, err
	}
	mergeFlags(f, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openBook wires the configured converter, cache and previews into a Book.
// The returned close function releases the cache.
func openBook(cfg *config.Config, common commonFlags, env *Environment) (*book2md.Book, func(), error) {
	opts := []book2md.Option{
		book2md.WithConverter(env.NewConverter(cfg.Converter.Command)),
		book2md.WithLogger(newLogger(env.Stderr, common.quiet, common.verbose)),
		book2md.WithTimeout(cfg.TimeoutDuration()),
		book2md.WithOutputDir(cfg.Output.Dir),
		book2md.WithGlossaryName(cfg.Output.Glossary),
	}

	if cfg.Render.HTML {
		r, err := render.New(cfg.Render.Style)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, book2md.WithPreviews(r))
	}

	closeFn := func() {}
	if cfg.Cache.Enabled {
		path := cfg.Cache.Path
		if path == "" {
			var err error
			if path, err = cache.DefaultPath(); err != nil {
				return nil, nil, fmt.Errorf("locating cache: %w", err)
			}
		}
		store, err := cache.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening cache: %w", err)
		}
		opts = append(opts, book2md.WithCache(store))
		closeFn = func() { _ = store.Close() }
	}

	return book2md.NewBook(opts...), closeFn, nil
}

// failureError summarizes failed chapters. When nothing was written, the
// first failure is wrapped so its cause selects the exit code and hint.
func failureError(report *book2md.BuildReport) error {
	failed := report.Failed()
	if len(failed) == 0 {
		return nil
	}
	if len(report.Written()) == 0 {
		return fmt.Errorf("%w: all %d chapter(s) failed: %w", ErrChaptersFailed, len(failed), failed[0].Err)
	}
	return fmt.Errorf("%w: %d of %d chapter(s) failed", ErrChaptersFailed, len(failed), len(failed)+len(report.Written()))
}

// printReport outputs per-chapter results using the environment writers.
// The glossary line is printed only when the glossary was written.
func printReport(env *Environment, report *book2md.BuildReport, common commonFlags, glossaryWritten bool) {
	for _, c := range report.Chapters {
		switch c.Status {
		case book2md.StatusFailed:
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", chapterLabel(c), c.Err)
		case book2md.StatusDropped:
			msg := c.Err.Error()
			if errors.Is(c.Err, book2md.ErrMissingEndMarker) {
				msg += hints.ForMissingEndMarker()
			}
			fmt.Fprintf(env.Stderr, "DROPPED %s: %s\n", chapterLabel(c), msg)
		case book2md.StatusSkipped:
			if common.verbose {
				fmt.Fprintf(env.Stdout, "Skipped %s\n", c.Title)
			}
		case book2md.StatusWritten:
			if common.quiet {
				continue
			}
			if common.verbose {
				fmt.Fprintf(env.Stdout, "%s -> %s (%d terms%s)\n", chapterLabel(c), c.MarkdownPath, c.Terms, cachedSuffix(c.Cached))
			} else {
				fmt.Fprintf(env.Stdout, "Created %s\n", c.MarkdownPath)
			}
			if c.HTMLPath != "" {
				fmt.Fprintf(env.Stdout, "Created %s\n", c.HTMLPath)
			}
		}
	}

	if common.quiet {
		return
	}
	if glossaryWritten && report.GlossaryPath != "" {
		fmt.Fprintf(env.Stdout, "Created %s (%d terms)\n", report.GlossaryPath, report.Terms)
		if report.GlossaryHTML != "" {
			fmt.Fprintf(env.Stdout, "Created %s\n", report.GlossaryHTML)
		}
	}
	if n := len(report.Written()) + len(report.Failed()); n > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed", len(report.Written()), len(report.Failed()))
		if common.verbose {
			fmt.Fprintf(env.Stdout, " (%v)", report.Elapsed.Round(time.Millisecond))
		}
		fmt.Fprintln(env.Stdout)
	}
}

// chapterLabel names a chapter by its .tex file, or its title when none was written.
func chapterLabel(c book2md.ChapterResult) string {
	if c.TexPath != "" {
		return c.TexPath
	}
	return c.Title
}

func cachedSuffix(cached bool) string {
	if cached {
		return ", cached"
	}
	return ""
}
