package book2md

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alnah/go-book2md/internal/cache"
	"github.com/alnah/go-book2md/internal/fileutil"
	"github.com/alnah/go-book2md/internal/pipeline"
)

// ChapterProcessor converts one chapter .tex file into book-ready Markdown
// and extracts its glossary contribution.
type ChapterProcessor struct {
	cfg settings
}

// NewChapterProcessor creates a ChapterProcessor.
// Without WithConverter, pandoc from PATH is used.
func NewChapterProcessor(opts ...Option) *ChapterProcessor {
	return &ChapterProcessor{cfg: newSettings(opts)}
}

// Process converts texPath into <root>.md next to it, rewrites the Markdown
// in place and returns the glossary entries it defines.
//
// A converter failure returns an empty contribution and an error wrapping
// ErrConversion; callers log it and move on to the next chapter. Failures
// to write the rewritten file wrap ErrWriteChapter.
func (p *ChapterProcessor) Process(ctx context.Context, texPath string) (Contribution, error) {
	contrib := Contribution{Chapter: texPath}
	if texPath == "" {
		return contrib, ErrEmptyPath
	}
	mdPath, err := fileutil.ReplaceExt(texPath, ".md")
	if err != nil {
		return contrib, err
	}
	log := p.cfg.logger.With(slog.String("chapter", texPath))

	raw, cached, err := p.convert(ctx, log, texPath, mdPath)
	if err != nil {
		return contrib, err
	}

	markdown, entries := Transform(raw, p.cfg.glossaryName)
	if err := fileutil.WriteFile(mdPath, []byte(markdown)); err != nil {
		return contrib, fmt.Errorf("%w: %s: %v", ErrWriteChapter, mdPath, err)
	}

	log.Debug("chapter converted", slog.String("markdown", mdPath),
		slog.Int("terms", len(entries)), slog.Bool("cached", cached))

	contrib.MarkdownPath = mdPath
	contrib.Entries = entries
	contrib.Cached = cached
	return contrib, nil
}

// convert returns the converter's raw Markdown for texPath, leaving it in
// mdPath. With a cache configured, an identical source skips the converter.
func (p *ChapterProcessor) convert(ctx context.Context, log *slog.Logger, texPath, mdPath string) (string, bool, error) {
	var key string
	if p.cfg.cache != nil {
		src, err := os.ReadFile(texPath) // #nosec G304 -- chapter path produced by the build
		if err != nil {
			return "", false, fmt.Errorf("%w: reading %s: %v", ErrConversion, texPath, err)
		}
		key = cache.Key(src, []byte(p.fingerprint()))
		out, ok, err := p.cfg.cache.Get(key)
		switch {
		case err != nil:
			log.Warn("conversion cache unavailable", slog.Any("error", err))
		case ok:
			if err := fileutil.WriteFile(mdPath, out); err != nil {
				return "", false, fmt.Errorf("%w: %s: %v", ErrWriteChapter, mdPath, err)
			}
			return string(out), true, nil
		}
	}

	convCtx, cancel := context.WithTimeout(ctx, p.cfg.timeout)
	defer cancel()
	if err := p.cfg.converter.ToMarkdown(convCtx, texPath, mdPath); err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, ErrConversionTimeout) {
			err = fmt.Errorf("%w: %w", ErrConversionTimeout, err)
		}
		if !errors.Is(err, ErrConversion) {
			err = fmt.Errorf("%w: %w", ErrConversion, err)
		}
		return "", false, err
	}

	out, err := os.ReadFile(mdPath) // #nosec G304 -- converter output next to the chapter
	if err != nil {
		return "", false, fmt.Errorf("%w: reading converter output: %v", ErrConversion, err)
	}

	if key != "" {
		if err := p.cfg.cache.Put(key, out); err != nil {
			log.Warn("caching conversion failed", slog.Any("error", err))
		}
	}
	return string(out), false, nil
}

func (p *ChapterProcessor) fingerprint() string {
	if f, ok := p.cfg.converter.(Fingerprinter); ok {
		return f.Fingerprint()
	}
	return fmt.Sprintf("%T", p.cfg.converter)
}

// Transform applies the text passes to converter output and returns the
// final chapter Markdown plus the glossary entries the chapter defines.
// Bold mentions of those entries link to glossaryTarget.
func Transform(raw, glossaryTarget string) (string, []GlossaryEntry) {
	content := pipeline.NormalizeSpans(pipeline.NormalizeLineEndings(raw))

	lines := strings.Split(content, "\n")
	pipeline.UnescapeLines(lines)
	pipeline.FixStructure(lines)
	lines = pipeline.JoinSentences(lines)

	entries := pipeline.EntriesFor(pipeline.ParseGlossary(lines))
	linker := pipeline.NewTermLinker(glossaryTarget, entries)
	for i, line := range lines {
		lines[i] = pipeline.RewriteFigure(linker.Link(pipeline.CleanLine(line)))
	}
	lines = pipeline.StripGlossarySection(lines)

	markdown := pipeline.CollapseBlankLines(strings.Join(lines, "\n"))
	if markdown != "" {
		markdown += "\n"
	}
	return markdown, fromPipelineEntries(entries)
}
