package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-book2md/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags holds output location flags.
type outputFlags struct {
	dir      string
	glossary string
}

// converterFlags holds external converter flags.
type converterFlags struct {
	pandoc  string
	timeout string
}

// cacheFlags holds conversion cache flags.
type cacheFlags struct {
	enabled  bool
	disabled bool
	path     string
}

// renderFlags holds HTML preview flags.
type renderFlags struct {
	html  bool
	style string
}

// buildFlags holds all flags for the build and chapter commands.
type buildFlags struct {
	common    commonFlags
	output    outputFlags
	converter converterFlags
	cache     cacheFlags
	render    renderFlags
}

// checkFlags holds flags for the check command.
type checkFlags struct {
	common   commonFlags
	glossary string
	style    string
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	common commonFlags
	json   bool
	pandoc string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-chapter details and debug logs")
}

// addOutputFlags adds output location flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.dir, "output", "o", "", "output directory (default: next to the input)")
	fs.StringVarP(&f.glossary, "glossary", "g", "", "glossary file name (default: glossary.md)")
}

// addConverterFlags adds converter flags to a FlagSet.
func addConverterFlags(fs *flag.FlagSet, f *converterFlags) {
	fs.StringVar(&f.pandoc, "pandoc", "", "converter binary name or path")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-chapter conversion timeout (e.g., 30s, 2m)")
}

// addCacheFlags adds conversion cache flags to a FlagSet.
func addCacheFlags(fs *flag.FlagSet, f *cacheFlags) {
	fs.BoolVar(&f.enabled, "cache", false, "reuse converter output for unchanged chapters")
	fs.BoolVar(&f.disabled, "no-cache", false, "disable the conversion cache")
	fs.StringVar(&f.path, "cache-path", "", "conversion cache file (implies --cache)")
}

// addRenderFlags adds HTML preview flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.BoolVar(&f.html, "html", false, "write an HTML preview next to each Markdown file")
	fs.StringVar(&f.style, "style", "", "code highlighting style for previews")
}

// newFlagSet creates a FlagSet whose errors and usage go to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parse wraps flag errors as usage errors. flag.ErrHelp passes through.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// parseBuildFlags parses build or chapter flags and returns positional args.
func parseBuildFlags(name string, args []string, w io.Writer) (*buildFlags, []string, error) {
	usage := printBuildUsage
	if name == "chapter" {
		usage = printChapterUsage
	}
	fs := newFlagSet(name, w, usage)
	f := &buildFlags{}

	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addConverterFlags(fs, &f.converter)
	addCacheFlags(fs, &f.cache)
	addRenderFlags(fs, &f.render)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseCheckFlags parses check flags and returns positional args.
func parseCheckFlags(args []string, w io.Writer) (*checkFlags, []string, error) {
	fs := newFlagSet("check", w, printCheckUsage)
	f := &checkFlags{}

	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.glossary, "glossary", "g", "", "glossary file name (default: glossary.md)")
	fs.StringVar(&f.style, "style", "", "code highlighting style used while rendering")

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseDoctorFlags parses doctor flags.
func parseDoctorFlags(args []string, w io.Writer) (*doctorFlags, error) {
	fs := newFlagSet("doctor", w, printDoctorUsage)
	f := &doctorFlags{}

	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	fs.StringVar(&f.pandoc, "pandoc", "", "converter binary name or path")

	if err := parse(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string, w io.Writer) (*commonFlags, error) {
	fs := newFlagSet("config", w, printConfigUsage)
	f := &commonFlags{}
	addCommonFlags(fs, f)

	if err := parse(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(f *buildFlags, cfg *config.Config) {
	if f.output.dir != "" {
		cfg.Output.Dir = f.output.dir
	}
	if f.output.glossary != "" {
		cfg.Output.Glossary = f.output.glossary
	}
	if f.converter.pandoc != "" {
		cfg.Converter.Command = f.converter.pandoc
	}
	if f.converter.timeout != "" {
		cfg.Converter.Timeout = f.converter.timeout
	}
	if f.render.html {
		cfg.Render.HTML = true
	}
	if f.render.style != "" {
		cfg.Render.Style = f.render.style
	}

	if f.cache.path != "" {
		cfg.Cache.Path = f.cache.path
		cfg.Cache.Enabled = true
	}
	if f.cache.enabled {
		cfg.Cache.Enabled = true
	}
	if f.cache.disabled {
		cfg.Cache.Enabled = false
	}
}
