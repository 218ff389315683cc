package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-book2md/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // BOOK2MD_CONFIG: config file name or path
	Master     string        // BOOK2MD_MASTER: LaTeX master document
	OutputDir  string        // BOOK2MD_OUTPUT_DIR: where chapters are written
	Glossary   string        // BOOK2MD_GLOSSARY: glossary file name
	Pandoc     string        // BOOK2MD_PANDOC: converter binary
	Timeout    time.Duration // BOOK2MD_TIMEOUT: per-chapter converter timeout
	Style      string        // BOOK2MD_STYLE: highlighting style for previews
	CachePath  string        // BOOK2MD_CACHE: conversion cache file, enables the cache
}

// knownEnvVars lists valid BOOK2MD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"BOOK2MD_CONFIG":     true,
	"BOOK2MD_MASTER":     true,
	"BOOK2MD_OUTPUT_DIR": true,
	"BOOK2MD_GLOSSARY":   true,
	"BOOK2MD_PANDOC":     true,
	"BOOK2MD_TIMEOUT":    true,
	"BOOK2MD_STYLE":      true,
	"BOOK2MD_CACHE":      true,
	"BOOK2MD_CONTAINER":  true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("BOOK2MD_CONFIG"),
		Master:     os.Getenv("BOOK2MD_MASTER"),
		OutputDir:  os.Getenv("BOOK2MD_OUTPUT_DIR"),
		Glossary:   os.Getenv("BOOK2MD_GLOSSARY"),
		Pandoc:     os.Getenv("BOOK2MD_PANDOC"),
		Style:      os.Getenv("BOOK2MD_STYLE"),
		CachePath:  os.Getenv("BOOK2MD_CACHE"),
	}

	// Invalid or out-of-range durations are ignored, not errors.
	if timeout := os.Getenv("BOOK2MD_TIMEOUT"); timeout != "" {
		if d, err := config.ParseTimeout(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for every unrecognized BOOK2MD_* variable.
// Catches typos like BOOK2MD_OUTPUTDIR. Output is sorted for stable messages.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, "BOOK2MD_") {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	slices.Sort(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment values over the loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Master != "" {
		cfg.Input.Master = env.Master
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Glossary != "" {
		cfg.Output.Glossary = env.Glossary
	}
	if env.Pandoc != "" {
		cfg.Converter.Command = env.Pandoc
	}
	if env.Timeout > 0 {
		cfg.Converter.Timeout = env.Timeout.String()
	}
	if env.Style != "" {
		cfg.Render.Style = env.Style
	}

	// A cache path auto-enables the cache.
	if env.CachePath != "" {
		cfg.Cache.Path = env.CachePath
		cfg.Cache.Enabled = true
	}
}
