package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: book2md <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Split a LaTeX book into Markdown chapters and a glossary")
	fmt.Fprintln(w, "  chapter    Convert existing chapter .tex files")
	fmt.Fprintln(w, "  check      Report glossary links without a matching entry")
	fmt.Fprintln(w, "  doctor     Check the converter and environment")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'book2md help <command>' for details on a specific command.")
}

// printSharedBuildFlags prints the flags shared by build and chapter.
func printSharedBuildFlags(w io.Writer) {
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory")
	fmt.Fprintln(w, "  -g, --glossary <name>     Glossary file name (default: glossary.md)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Converter:")
	fmt.Fprintln(w, "      --pandoc <path>       Converter binary (default: pandoc)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-chapter timeout (default: 2m, max: 1h)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Cache:")
	fmt.Fprintln(w, "      --cache               Reuse converter output for unchanged chapters")
	fmt.Fprintln(w, "      --cache-path <file>   Cache file (implies --cache)")
	fmt.Fprintln(w, "      --no-cache            Disable the cache")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Preview:")
	fmt.Fprintln(w, "      --html                Write an HTML preview next to each Markdown file")
	fmt.Fprintln(w, "      --style <name>        Code highlighting style (default: github)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-chapter details and debug logs")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: book2md build [master.tex] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Split the master document at every \\chapter{...}, convert each chapter")
	fmt.Fprintln(w, "to Markdown and collect every chapter glossary into one file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  master    LaTeX master document (optional if config has input.master)")
	fmt.Fprintln(w)
	printSharedBuildFlags(w)
}

// printChapterUsage prints usage for the chapter command.
func printChapterUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: book2md chapter <chapter.tex>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert chapter files in the given order and write their glossary.")
	fmt.Fprintln(w)
	printSharedBuildFlags(w)
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: book2md check [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report chapter links to glossary entries that do not exist.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  dir    Directory holding the chapters (default: output.dir or .)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -g, --glossary <name>     Glossary file name (default: glossary.md)")
	fmt.Fprintln(w, "      --style <name>        Code highlighting style")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: book2md doctor [--json] [--pandoc <path>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the converter, cache and system setup.")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: book2md config [--config <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML, after environment overrides.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "chapter":
		printChapterUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: book2md version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: book2md help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
