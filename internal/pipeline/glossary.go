package pipeline

import (
	"fmt"
	"strings"
)

// Section headings that open and close a chapter's glossary block.
// Matching is done on lower-cased, whitespace-normalized lines.
const (
	glossaryHeading  = "## glossary"
	exercisesHeading = "## exercise"
	termHeaderPrefix = "- **"
)

// Term is one glossary entry as written in a chapter.
type Term struct {
	Name       string
	Definition string
}

// Entry is a glossary term ready for linking and aggregation.
type Entry struct {
	Term       string
	AnchorKey  string
	Definition string
}

// termMarkupReplacer removes the bold markers and colons around a term header.
var termMarkupReplacer = strings.NewReplacer("*", "", ":", "")

// anchorMarkupReplacer removes the characters never kept in an anchor key.
var anchorMarkupReplacer = strings.NewReplacer("*", "", "`", "", "-", "")

// ParseGlossary extracts the terms of the "## Glossary" block of lines.
// The block ends at an "## Exercises" heading or at the end of input.
// A chapter without a glossary block yields nil.
func ParseGlossary(lines []string) []Term {
	var (
		terms      []Term
		parts      [][]string
		inGlossary bool
	)

	for _, raw := range lines {
		line := normalizeSpace(raw)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		if strings.Contains(lower, glossaryHeading) {
			inGlossary = true
			terms, parts = nil, nil
			continue
		}
		if !inGlossary {
			continue
		}
		if strings.Contains(lower, exercisesHeading) {
			break
		}

		if strings.HasPrefix(line, termHeaderPrefix) {
			name, rest := splitTermHeader(line)
			terms = append(terms, Term{Name: name})
			parts = append(parts, nil)
			if rest != "" {
				parts[len(parts)-1] = append(parts[len(parts)-1], rest)
			}
			continue
		}

		// Text before the first term header has nowhere to go.
		if len(terms) == 0 {
			continue
		}
		parts[len(parts)-1] = append(parts[len(parts)-1], line)
	}

	for i := range terms {
		terms[i].Definition = strings.Join(parts[i], " ")
	}
	return terms
}

// splitTermHeader splits "- **Term:** text" into the bare term and the text
// that follows the closing bold marker.
func splitTermHeader(line string) (name, rest string) {
	header := strings.TrimPrefix(line, termHeaderPrefix)
	name, rest, _ = strings.Cut(header, "**")

	name = strings.TrimSpace(termMarkupReplacer.Replace(name))
	rest = strings.TrimSpace(rest)
	rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	return name, rest
}

// AnchorKey derives the anchor name of a glossary term: markup characters
// stripped, words joined by '_', lower-cased, and one trailing 's' removed.
func AnchorKey(term string) string {
	key := strings.Join(strings.Fields(anchorMarkupReplacer.Replace(term)), "_")
	key = strings.ToLower(key)
	return strings.TrimSuffix(key, "s")
}

// NewEntry builds the Entry for a parsed term.
func NewEntry(t Term) Entry {
	return Entry{
		Term:       strings.ReplaceAll(t.Name, "`", ""),
		AnchorKey:  AnchorKey(t.Name),
		Definition: t.Definition,
	}
}

// DisplayKey renders the glossary list item that introduces the entry.
// It doubles as the aggregation key.
func (e Entry) DisplayKey() string {
	return fmt.Sprintf("- <a name='%s'>%s</a>", e.AnchorKey, e.Term)
}

// EntriesFor converts parsed terms into entries, preserving order.
func EntriesFor(terms []Term) []Entry {
	if len(terms) == 0 {
		return nil
	}
	entries := make([]Entry, 0, len(terms))
	for _, t := range terms {
		entries = append(entries, NewEntry(t))
	}
	return entries
}

// normalizeSpace collapses whitespace runs to single spaces and trims.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
