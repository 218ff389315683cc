package book2md

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alnah/go-book2md/internal/cache"
	"github.com/alnah/go-book2md/internal/pipeline"
	"github.com/alnah/go-book2md/internal/render"
)

// Compile-time interface implementation checks.
var (
	_ Converter       = (*PandocConverter)(nil)
	_ Fingerprinter   = (*PandocConverter)(nil)
	_ CommandRunner   = (*ExecRunner)(nil)
	_ ConversionCache = (*cache.Store)(nil)
	_ PreviewRenderer = (*render.Renderer)(nil)
)

// DefaultTimeout bounds one converter run when no timeout is specified.
const DefaultTimeout = 2 * time.Minute

// DefaultGlossaryName is the glossary file written next to the chapters.
const DefaultGlossaryName = pipeline.DefaultGlossaryTarget

// ConversionCache stores raw converter output keyed by source digest.
type ConversionCache interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// PreviewRenderer writes an HTML preview next to a Markdown file.
type PreviewRenderer interface {
	RenderFile(ctx context.Context, mdPath string) (string, error)
}

// Option configures a Book or ChapterProcessor.
type Option func(*settings)

// settings holds configuration shared by Book and ChapterProcessor.
type settings struct {
	converter    Converter
	logger       *slog.Logger
	timeout      time.Duration
	outputDir    string
	glossaryName string
	cache        ConversionCache
	previews     PreviewRenderer
}

func newSettings(opts []Option) settings {
	s := settings{
		timeout:      DefaultTimeout,
		glossaryName: DefaultGlossaryName,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.converter == nil {
		s.converter = NewPandocConverter(DefaultConverterBinary)
	}
	return s
}

// WithConverter sets the LaTeX to Markdown converter.
func WithConverter(c Converter) Option {
	return func(s *settings) {
		if c != nil {
			s.converter = c
		}
	}
}

// WithLogger sets the logger for diagnostic events. Default discards.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTimeout sets the per-chapter conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("book2md: WithTimeout duration must be positive")
	}
	return func(s *settings) {
		s.timeout = d
	}
}

// WithOutputDir sets where chapter and glossary files are written.
// Default: the master document's directory.
func WithOutputDir(dir string) Option {
	return func(s *settings) {
		s.outputDir = dir
	}
}

// WithGlossaryName sets the glossary file name, used both as the output
// file and as the link target inside chapters. Default: glossary.md.
func WithGlossaryName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.glossaryName = name
		}
	}
}

// WithCache reuses converter output for unchanged chapter sources.
func WithCache(c ConversionCache) Option {
	return func(s *settings) {
		s.cache = c
	}
}

// WithPreviews renders an HTML preview for every written Markdown file.
func WithPreviews(r PreviewRenderer) Option {
	return func(s *settings) {
		s.previews = r
	}
}
