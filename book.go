package book2md

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-book2md/internal/fileutil"
)

// Book drives a whole build: split the master, process every chapter in
// order, then write the aggregated glossary.
type Book struct {
	cfg       settings
	processor *ChapterProcessor
}

// NewBook creates a Book with default configuration.
// Use options to customize behavior (e.g., WithOutputDir, WithTimeout).
func NewBook(opts ...Option) *Book {
	cfg := newSettings(opts)
	return &Book{cfg: cfg, processor: &ChapterProcessor{cfg: cfg}}
}

// Build converts the master document at masterPath.
//
// Only an unreadable master (ErrReadMaster), an uncreatable output directory
// or a failed glossary write (ErrWriteGlossary) abort the build. Chapter
// failures are recorded in the report and the build continues. A canceled
// ctx stops the build between chapters and returns the partial report.
func (b *Book) Build(ctx context.Context, masterPath string) (*BuildReport, error) {
	start := time.Now()
	if masterPath == "" {
		return nil, fmt.Errorf("%w: %w", ErrReadMaster, ErrEmptyPath)
	}

	f, err := os.Open(masterPath) // #nosec G304 -- master path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMaster, err)
	}
	split, err := SplitChapters(f)
	_ = f.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadMaster, masterPath, err)
	}

	outDir := b.cfg.outputDir
	if outDir == "" {
		outDir = filepath.Dir(masterPath)
	}
	if err := os.MkdirAll(outDir, fileutil.DirPermissions); err != nil {
		return nil, fmt.Errorf("%w: creating output directory: %v", ErrWriteChapter, err)
	}

	report := &BuildReport{Source: masterPath, OutputDir: outDir, EndMarkerSeen: split.EndMarkerSeen}
	log := b.cfg.logger.With(slog.String("master", masterPath))
	log.Info("book split", slog.Int("chapters", len(split.Chapters)), slog.Bool("end_marker", split.EndMarkerSeen))

	agg := NewGlossaryAggregator()
	for _, rec := range split.Chapters {
		if err := ctx.Err(); err != nil {
			report.Elapsed = time.Since(start)
			return report, err
		}
		if rec.Excluded {
			log.Debug("chapter excluded", slog.String("slug", rec.Slug))
			report.Chapters = append(report.Chapters, ChapterResult{Title: rec.Title, Slug: rec.Slug, Status: StatusSkipped})
			continue
		}

		report.Chapters = append(report.Chapters, b.buildChapter(ctx, outDir, rec, agg))
	}

	if split.Dropped != nil {
		log.Warn("chapter dropped", slog.String("slug", split.Dropped.Slug), slog.Any("error", ErrMissingEndMarker))
		report.Chapters = append(report.Chapters, ChapterResult{
			Title:  split.Dropped.Title,
			Slug:   split.Dropped.Slug,
			Status: StatusDropped,
			Err:    ErrMissingEndMarker,
		})
	}

	if err := ctx.Err(); err != nil {
		report.Elapsed = time.Since(start)
		return report, err
	}
	if err := b.finish(ctx, outDir, agg, report); err != nil {
		report.Elapsed = time.Since(start)
		return report, err
	}
	report.Elapsed = time.Since(start)
	log.Info("book built", slog.Any("report", report))
	return report, nil
}

// buildChapter writes <slug>.tex, processes it and merges its contribution.
func (b *Book) buildChapter(ctx context.Context, outDir string, rec ChapterRecord, agg *GlossaryAggregator) ChapterResult {
	res := ChapterResult{Title: rec.Title, Slug: rec.Slug, TexPath: filepath.Join(outDir, rec.Slug+".tex")}

	if !filepath.IsLocal(rec.Slug + ".tex") {
		res.Status, res.Err = StatusFailed, fmt.Errorf("%w: %q escapes %s", ErrWriteChapter, rec.Slug, outDir)
		b.cfg.logger.Warn("chapter skipped", slog.String("slug", rec.Slug), slog.Any("error", res.Err))
		return res
	}

	if err := fileutil.WriteFile(res.TexPath, []byte(rec.Source())); err != nil {
		res.Status, res.Err = StatusFailed, fmt.Errorf("%w: %s: %v", ErrWriteChapter, res.TexPath, err)
		b.cfg.logger.Warn("chapter skipped", slog.String("slug", rec.Slug), slog.Any("error", res.Err))
		return res
	}

	b.processChapter(ctx, &res, agg)
	return res
}

// processChapter runs the processor on res.TexPath and fills in res.
func (b *Book) processChapter(ctx context.Context, res *ChapterResult, agg *GlossaryAggregator) {
	contrib, err := b.processor.Process(ctx, res.TexPath)
	if err != nil {
		res.Status, res.Err = StatusFailed, err
		b.cfg.logger.Warn("chapter skipped", slog.String("chapter", res.TexPath), slog.Any("error", err))
		return
	}

	agg.Merge(contrib)
	res.Status = StatusWritten
	res.MarkdownPath = contrib.MarkdownPath
	res.Terms = len(contrib.Entries)
	res.Cached = contrib.Cached
	res.HTMLPath = b.preview(ctx, contrib.MarkdownPath)
}

// ProcessChapters runs the processor over existing chapter .tex files, in the
// given order, and writes their aggregated glossary. The glossary goes to the
// configured output directory, or next to the first chapter.
func (b *Book) ProcessChapters(ctx context.Context, texPaths []string) (*BuildReport, error) {
	start := time.Now()
	if len(texPaths) == 0 {
		return nil, ErrNoChapterArguments
	}

	outDir := b.cfg.outputDir
	if outDir == "" {
		outDir = filepath.Dir(texPaths[0])
	}
	report := &BuildReport{OutputDir: outDir}

	agg := NewGlossaryAggregator()
	for _, texPath := range texPaths {
		if err := ctx.Err(); err != nil {
			report.Elapsed = time.Since(start)
			return report, err
		}
		stem := filepath.Base(texPath)
		res := ChapterResult{Title: stem, Slug: stem[:len(stem)-len(filepath.Ext(stem))], TexPath: texPath}
		b.processChapter(ctx, &res, agg)
		report.Chapters = append(report.Chapters, res)
	}

	err := ctx.Err()
	if err == nil {
		err = b.finish(ctx, outDir, agg, report)
	}
	report.Elapsed = time.Since(start)
	return report, err
}

// finish writes the aggregated glossary and its optional preview.
func (b *Book) finish(ctx context.Context, outDir string, agg *GlossaryAggregator, report *BuildReport) error {
	report.GlossaryPath = filepath.Join(outDir, b.cfg.glossaryName)
	report.Terms = agg.Len()
	if err := agg.WriteFile(report.GlossaryPath); err != nil {
		return err
	}
	report.GlossaryHTML = b.preview(ctx, report.GlossaryPath)
	return nil
}

// preview renders mdPath when previews are enabled. A failed preview is
// logged and never fails the chapter.
func (b *Book) preview(ctx context.Context, mdPath string) string {
	if b.cfg.previews == nil || mdPath == "" {
		return ""
	}
	htmlPath, err := b.cfg.previews.RenderFile(ctx, mdPath)
	if err != nil {
		b.cfg.logger.Warn("preview failed", slog.String("markdown", mdPath), slog.Any("error", err))
		return ""
	}
	return htmlPath
}
