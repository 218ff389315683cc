package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-book2md/internal/fileutil"
	"github.com/alnah/go-book2md/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength    = 4096 // PATH_MAX on Linux
	MaxCommandLength = 1024
	MaxFileNameLen   = 255
	MaxStyleLength   = 50
)

// Converter timeout bounds.
const (
	DefaultTimeout = 2 * time.Minute
	MaxTimeout     = time.Hour
)

// Defaults shared with the CLI.
const (
	DefaultConverter = "pandoc"
	DefaultGlossary  = "glossary.md"
	DefaultStyle     = "github"
	configDirName    = "go-book2md"
)

// Config holds all configuration for a book build.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Converter ConverterConfig `yaml:"converter"`
	Cache     CacheConfig     `yaml:"cache"`
	Render    RenderConfig    `yaml:"render"`
}

// InputConfig defines input source options.
type InputConfig struct {
	Master string `yaml:"master"` // LaTeX master document (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir      string `yaml:"dir"`      // Empty = directory of the master document
	Glossary string `yaml:"glossary"` // Glossary file name, relative to Dir
}

// ConverterConfig defines the external LaTeX to Markdown converter.
type ConverterConfig struct {
	Command string `yaml:"command"` // Binary name or path (default: pandoc)
	Timeout string `yaml:"timeout"` // Per-chapter limit, Go duration (default: 2m)
}

// CacheConfig defines the conversion cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // Empty = <user cache dir>/go-book2md/conversions.db
}

// RenderConfig defines HTML preview options.
type RenderConfig struct {
	HTML  bool   `yaml:"html"`
	Style string `yaml:"style"` // Chroma style for code blocks (default: github)
}

// Validate checks field lengths and values.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.master", c.Input.Master, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"output.glossary", c.Output.Glossary, MaxFileNameLen},
		{"converter.command", c.Converter.Command, MaxCommandLength},
		{"cache.path", c.Cache.Path, MaxPathLength},
		{"render.style", c.Render.Style, MaxStyleLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if g := c.Output.Glossary; g != "" {
		if fileutil.IsFilePath(g) {
			return fmt.Errorf("%w: output.glossary: %q must be a file name, not a path", ErrInvalidField, g)
		}
		if filepath.Ext(g) != ".md" {
			return fmt.Errorf("%w: output.glossary: %q must end in .md", ErrInvalidField, g)
		}
	}

	if c.Converter.Timeout != "" {
		if _, err := ParseTimeout(c.Converter.Timeout); err != nil {
			return fmt.Errorf("converter.timeout: %w", err)
		}
	}

	return nil
}

// TimeoutDuration returns the converter timeout, or DefaultTimeout when unset.
// Call Validate first; an unparsable value also yields DefaultTimeout.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := ParseTimeout(c.Converter.Timeout)
	if err != nil || d == 0 {
		return DefaultTimeout
	}
	return d
}

// ParseTimeout parses a Go duration within (0, MaxTimeout]. Empty yields zero.
func ParseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a duration (e.g. 30s, 2m)", ErrInvalidField, s)
	}
	if d <= 0 || d > MaxTimeout {
		return 0, fmt.Errorf("%w: %s must be positive and at most %s", ErrInvalidField, d, MaxTimeout)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output:    OutputConfig{Glossary: DefaultGlossary},
		Converter: ConverterConfig{Command: DefaultConverter, Timeout: DefaultTimeout.String()},
		Render:    RenderConfig{Style: DefaultStyle},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields the file leaves empty keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.DecodeStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// YAML renders the configuration as it would be written to a config file.
func (c *Config) YAML() ([]byte, error) {
	return yamlutil.Encode(c)
}

func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Output.Glossary == "" {
		c.Output.Glossary = def.Output.Glossary
	}
	if c.Converter.Command == "" {
		c.Converter.Command = def.Converter.Command
	}
	if c.Converter.Timeout == "" {
		c.Converter.Timeout = def.Converter.Timeout
	}
	if c.Render.Style == "" {
		c.Render.Style = def.Render.Style
	}
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-book2md/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
