package book2md

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alnah/go-book2md/internal/fileutil"
)

// GlossaryAggregator merges chapter contributions into the book glossary.
// Entries are keyed by DisplayKey; a later chapter redefining a key
// replaces the earlier definition.
type GlossaryAggregator struct {
	entries map[string]GlossaryEntry
}

// NewGlossaryAggregator creates an empty aggregator.
func NewGlossaryAggregator() *GlossaryAggregator {
	return &GlossaryAggregator{entries: make(map[string]GlossaryEntry)}
}

// Merge adds a chapter's entries, last write wins.
func (a *GlossaryAggregator) Merge(c Contribution) {
	for _, e := range c.Entries {
		a.entries[e.DisplayKey()] = e
	}
}

// Len returns the number of distinct entries.
func (a *GlossaryAggregator) Len() int { return len(a.entries) }

// Entries returns the merged entries sorted by DisplayKey.
func (a *GlossaryAggregator) Entries() []GlossaryEntry {
	keys := make([]string, 0, len(a.entries))
	for k := range a.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]GlossaryEntry, len(keys))
	for i, k := range keys {
		out[i] = a.entries[k]
	}
	return out
}

// Render formats the glossary file: each DisplayKey, then its definition
// indented by three spaces, then a blank line.
func (a *GlossaryAggregator) Render() string {
	var sb strings.Builder
	for _, e := range a.Entries() {
		sb.WriteString(e.DisplayKey())
		sb.WriteString("\n   ")
		sb.WriteString(e.Definition)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// WriteFile overwrites path with the rendered glossary.
func (a *GlossaryAggregator) WriteFile(path string) error {
	if path == "" {
		return fmt.Errorf("%w: %w", ErrWriteGlossary, ErrEmptyPath)
	}
	if err := fileutil.WriteFile(path, []byte(a.Render())); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteGlossary, path, err)
	}
	return nil
}
