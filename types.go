package book2md

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alnah/go-book2md/internal/pipeline"
)

// ChapterRecord is one chapter cut from the master document.
// Excluded chapters (case studies) carry a title and slug but no lines.
type ChapterRecord struct {
	Title    string
	Slug     string
	Lines    []string // master lines from the \chapter marker on, without newlines
	Excluded bool
}

// Source returns the chapter's LaTeX source as written to <slug>.tex.
func (r ChapterRecord) Source() string {
	if len(r.Lines) == 0 {
		return ""
	}
	return strings.Join(r.Lines, "\n") + "\n"
}

// GlossaryEntry is one term defined in a chapter's glossary block.
type GlossaryEntry struct {
	Term       string // display text, backticks removed
	AnchorKey  string // link target inside the glossary file
	Definition string
}

// DisplayKey returns the glossary line that defines the entry's anchor,
// e.g. "- <a name='function'>Function</a>".
func (e GlossaryEntry) DisplayKey() string {
	return toPipelineEntry(e).DisplayKey()
}

// Contribution is what one processed chapter adds to the book glossary.
// A chapter without a glossary block, or whose conversion failed,
// contributes no entries.
type Contribution struct {
	Chapter      string // source .tex path
	MarkdownPath string // empty when conversion failed
	Entries      []GlossaryEntry
	Cached       bool // converter output came from the cache
}

// ChapterStatus is the outcome of one chapter in a build.
type ChapterStatus int

const (
	StatusWritten ChapterStatus = iota // Markdown written, glossary merged
	StatusFailed                       // conversion or write failed; run continued
	StatusSkipped                      // excluded case-study chapter
	StatusDropped                      // open at end of input without \end{document}
)

func (s ChapterStatus) String() string {
	switch s {
	case StatusWritten:
		return "written"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	case StatusDropped:
		return "dropped"
	default:
		return fmt.Sprintf("ChapterStatus(%d)", int(s))
	}
}

// ChapterResult records what happened to one chapter.
type ChapterResult struct {
	Title        string
	Slug         string
	TexPath      string
	MarkdownPath string
	HTMLPath     string
	Status       ChapterStatus
	Terms        int
	Cached       bool
	Err          error
}

// BuildReport summarizes a build in document order.
type BuildReport struct {
	Source        string // master document, or empty for standalone chapters
	OutputDir     string
	GlossaryPath  string
	GlossaryHTML  string
	Terms         int // distinct entries written to the glossary
	EndMarkerSeen bool
	Chapters      []ChapterResult
	Elapsed       time.Duration
}

// Written returns the chapters whose Markdown was written.
func (r *BuildReport) Written() []ChapterResult { return r.filter(StatusWritten) }

// Failed returns the chapters whose conversion or write failed.
func (r *BuildReport) Failed() []ChapterResult { return r.filter(StatusFailed) }

// Skipped returns the excluded case-study chapters.
func (r *BuildReport) Skipped() []ChapterResult { return r.filter(StatusSkipped) }

// Dropped returns the chapter discarded for a missing end marker, if any.
func (r *BuildReport) Dropped() []ChapterResult { return r.filter(StatusDropped) }

func (r *BuildReport) filter(s ChapterStatus) []ChapterResult {
	var out []ChapterResult
	for _, c := range r.Chapters {
		if c.Status == s {
			out = append(out, c)
		}
	}
	return out
}

// LogValue implements slog.LogValuer for one-line build summaries.
func (r *BuildReport) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("written", len(r.Written())),
		slog.Int("failed", len(r.Failed())),
		slog.Int("skipped", len(r.Skipped())),
		slog.Int("terms", r.Terms),
		slog.Duration("elapsed", r.Elapsed),
	)
}

func toPipelineEntry(e GlossaryEntry) pipeline.Entry {
	return pipeline.Entry{Term: e.Term, AnchorKey: e.AnchorKey, Definition: e.Definition}
}

func fromPipelineEntries(entries []pipeline.Entry) []GlossaryEntry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]GlossaryEntry, len(entries))
	for i, e := range entries {
		out[i] = GlossaryEntry{Term: e.Term, AnchorKey: e.AnchorKey, Definition: e.Definition}
	}
	return out
}
