package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Input.Master != "" {
		t.Errorf("Input.Master = %q, want empty", cfg.Input.Master)
	}
	if cfg.Output.Glossary != "glossary.md" {
		t.Errorf("Output.Glossary = %q, want %q", cfg.Output.Glossary, "glossary.md")
	}
	if cfg.Converter.Command != "pandoc" {
		t.Errorf("Converter.Command = %q, want %q", cfg.Converter.Command, "pandoc")
	}
	if cfg.TimeoutDuration() != DefaultTimeout {
		t.Errorf("TimeoutDuration() = %v, want %v", cfg.TimeoutDuration(), DefaultTimeout)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled = true, want false")
	}
	if cfg.Render.HTML {
		t.Error("Render.HTML = true, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Fatalf("error = %v, want ErrFieldTooLong", err)
				}
				if !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error should name the field, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults valid", func(*Config) {}, nil},
		{"custom glossary name", func(c *Config) { c.Output.Glossary = "terms.md" }, nil},
		{"glossary with directory", func(c *Config) { c.Output.Glossary = "out/glossary.md" }, ErrInvalidField},
		{"glossary without md extension", func(c *Config) { c.Output.Glossary = "glossary.ipynb" }, ErrInvalidField},
		{"timeout not a duration", func(c *Config) { c.Converter.Timeout = "soon" }, ErrInvalidField},
		{"timeout negative", func(c *Config) { c.Converter.Timeout = "-1s" }, ErrInvalidField},
		{"timeout over an hour", func(c *Config) { c.Converter.Timeout = "2h" }, ErrInvalidField},
		{"empty timeout uses default", func(c *Config) { c.Converter.Timeout = "" }, nil},
		{"master path too long", func(c *Config) { c.Input.Master = strings.Repeat("a", MaxPathLength+1) }, ErrFieldTooLong},
		{"command too long", func(c *Config) { c.Converter.Command = strings.Repeat("p", MaxCommandLength+1) }, ErrFieldTooLong},
		{"style too long", func(c *Config) { c.Render.Style = strings.Repeat("s", MaxStyleLength+1) }, ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseTimeout(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"30s", 30 * time.Second, false},
		{"1h", time.Hour, false},
		{"0s", 0, true},
		{"61m", 0, true},
		{"ten", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeout(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeout(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTimeout(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "book.yaml", `input:
  master: "book/book.tex"
output:
  dir: "md"
converter:
  timeout: "30s"
cache:
  enabled: true
render:
  html: true
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input.Master != "book/book.tex" {
			t.Errorf("Input.Master = %q, want %q", cfg.Input.Master, "book/book.tex")
		}
		if cfg.Output.Dir != "md" {
			t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, "md")
		}
		if cfg.TimeoutDuration() != 30*time.Second {
			t.Errorf("TimeoutDuration() = %v, want 30s", cfg.TimeoutDuration())
		}
		if !cfg.Cache.Enabled || !cfg.Render.HTML {
			t.Errorf("Cache.Enabled = %v, Render.HTML = %v, want both true", cfg.Cache.Enabled, cfg.Render.HTML)
		}
	})

	t.Run("omitted fields keep defaults", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "partial.yaml", "input:\n  master: book.tex\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Converter.Command != DefaultConverter {
			t.Errorf("Converter.Command = %q, want %q", cfg.Converter.Command, DefaultConverter)
		}
		if cfg.Output.Glossary != DefaultGlossary {
			t.Errorf("Output.Glossary = %q, want %q", cfg.Output.Glossary, DefaultGlossary)
		}
		if cfg.Render.Style != DefaultStyle {
			t.Errorf("Render.Style = %q, want %q", cfg.Render.Style, DefaultStyle)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "invalid.yaml", "input: [unclosed")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "unknown.yaml", "input:\n  mastr: typo.tex\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value rejected after parsing", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "bad.yaml", "output:\n  glossary: notes.txt\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidField) {
			t.Errorf("error = %v, want ErrInvalidField", err)
		}
	})

	t.Run("config name resolves yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "mybook.yaml", "input:\n  master: fromname.tex\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("mybook")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input.Master != "fromname.tex" {
			t.Errorf("Input.Master = %q, want %q", cfg.Input.Master, "fromname.tex")
		}
	})

	t.Run("config name falls back to yml", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "other.yml", "input:\n  master: yml.tex\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("other")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input.Master != "yml.tex" {
			t.Errorf("Input.Master = %q, want %q", cfg.Input.Master, "yml.tex")
		}
	})

	t.Run("missing config name lists searched paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("absent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "absent.yaml") || !strings.Contains(err.Error(), "absent.yml") {
			t.Errorf("error should list tried paths, got: %v", err)
		}
	})
}

func TestConfig_YAML(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Input.Master = "book.tex"

	data, err := cfg.YAML()
	if err != nil {
		t.Fatalf("YAML() error = %v", err)
	}
	for _, want := range []string{"master: book.tex", "command: pandoc", "glossary: glossary.md"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("YAML() missing %q:\n%s", want, data)
		}
	}

	path := writeConfig(t, t.TempDir(), "roundtrip.yaml", string(data))
	back, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig(YAML()) error = %v", err)
	}
	if *back != *cfg {
		t.Errorf("round trip = %+v, want %+v", back, cfg)
	}
}
