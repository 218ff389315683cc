package book2md

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/alnah/go-book2md/internal/process"
)

// DefaultConverterBinary is the converter command used when none is configured.
const DefaultConverterBinary = "pandoc"

// Converter turns one LaTeX file into one Markdown file.
// Implementations must not modify texPath and must overwrite mdPath.
type Converter interface {
	ToMarkdown(ctx context.Context, texPath, mdPath string) error
}

// Fingerprinter is implemented by converters whose output depends on more
// than the input file (binary, flags). The fingerprint is part of cache keys.
type Fingerprinter interface {
	Fingerprint() string
}

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. The child runs in its
// own process group, killed as a whole when ctx is done.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- converter binary is user-configured
	process.Configure(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); err != nil && ctxErr != nil {
		err = fmt.Errorf("%w: %v", ctxErr, err)
	}
	return stdout.String(), stderr.String(), err
}

// PandocConverter converts LaTeX to Markdown by invoking the pandoc CLI.
type PandocConverter struct {
	Runner CommandRunner
	Binary string // empty = "pandoc" from PATH
}

// NewPandocConverter creates a PandocConverter with a real command runner.
func NewPandocConverter(binary string) *PandocConverter {
	return &PandocConverter{Runner: &ExecRunner{}, Binary: binary}
}

func (c *PandocConverter) binary() string {
	if c.Binary == "" {
		return DefaultConverterBinary
	}
	return c.Binary
}

func (c *PandocConverter) args(texPath, mdPath string) []string {
	return []string{"-f", "latex", "-t", "markdown", "-o", mdPath, texPath}
}

// ToMarkdown runs `pandoc -f latex -t markdown -o <md> <tex>`.
// Every failure wraps ErrConversion; a missing binary also wraps
// ErrConverterNotFound and an expired deadline ErrConversionTimeout.
func (c *PandocConverter) ToMarkdown(ctx context.Context, texPath, mdPath string) error {
	if texPath == "" || mdPath == "" {
		return fmt.Errorf("%w: %w", ErrConversion, ErrEmptyPath)
	}

	_, stderr, err := c.Runner.Run(ctx, c.binary(), c.args(texPath, mdPath)...)
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, exec.ErrNotFound):
		return fmt.Errorf("%w: %w: %s", ErrConversion, ErrConverterNotFound, c.binary())
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w: %s", ErrConversion, ErrConversionTimeout, texPath)
	case errors.Is(err, context.Canceled):
		return err
	}
	if msg := strings.TrimSpace(stderr); msg != "" {
		return fmt.Errorf("%w: %s: %s: %v", ErrConversion, texPath, msg, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrConversion, texPath, err)
}

// Fingerprint identifies the command line shape used for conversion.
func (c *PandocConverter) Fingerprint() string {
	return strings.Join(append([]string{c.binary()}, c.args("<tex>", "<md>")...), " ")
}

// Version returns the first line of `<binary> --version`.
func (c *PandocConverter) Version(ctx context.Context) (string, error) {
	stdout, stderr, err := c.Runner.Run(ctx, c.binary(), "--version")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrConverterNotFound, c.binary())
		}
		return "", fmt.Errorf("%s --version: %s: %w", c.binary(), strings.TrimSpace(stderr), err)
	}
	first, _, _ := strings.Cut(stdout, "\n")
	return strings.TrimSpace(first), nil
}
