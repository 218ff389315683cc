package book2md

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

const (
	endMarker        = `\end{document}`
	excludedSlugPart = "case_study"
	maxLineSize      = 1 << 20
)

var chapterMarker = regexp.MustCompile(`\\chapter\{(.*)\}`)

// slugReplacer drops characters that are awkward in file names and turns
// path separators into '_' so a slug always names a file in the output dir.
var slugReplacer = strings.NewReplacer(":", "", ",", "", "/", "_", `\`, "_")

// Split is the result of cutting a master document into chapters.
type Split struct {
	Chapters      []ChapterRecord // document order, excluded chapters included
	Dropped       *ChapterRecord  // chapter still open when input ended without the end marker
	EndMarkerSeen bool
}

// Written returns the chapters that must be written and processed.
func (s *Split) Written() []ChapterRecord {
	var out []ChapterRecord
	for _, c := range s.Chapters {
		if !c.Excluded {
			out = append(out, c)
		}
	}
	return out
}

// Slug turns a chapter title into a file stem: whitespace runs and path
// separators become '_', and ':' and ',' are removed.
// "Case Study: Word Play" -> "Case_Study_Word_Play", "Input/Output" -> "Input_Output".
func Slug(title string) string {
	return slugReplacer.Replace(strings.Join(strings.Fields(title), "_"))
}

// IsExcludedSlug reports whether a slug names a case-study chapter.
func IsExcludedSlug(slug string) bool {
	return strings.Contains(strings.ToLower(slug), excludedSlugPart)
}

// SplitChapters scans a master document and cuts it at every \chapter{Title}
// marker. Lines before the first marker and lines of excluded chapters are
// discarded. The line containing \end{document} closes the open chapter and
// stops the scan; without it the open chapter is reported as Dropped.
func SplitChapters(r io.Reader) (*Split, error) {
	split := &Split{}
	var open *ChapterRecord

	closeOpen := func() {
		if open != nil {
			split.Chapters = append(split.Chapters, *open)
			open = nil
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if m := chapterMarker.FindStringSubmatch(line); m != nil {
			closeOpen()
			slug := Slug(m[1])
			if IsExcludedSlug(slug) {
				split.Chapters = append(split.Chapters, ChapterRecord{Title: m[1], Slug: slug, Excluded: true})
				continue
			}
			open = &ChapterRecord{Title: m[1], Slug: slug, Lines: []string{line}}
			continue
		}

		if open == nil {
			if strings.Contains(line, endMarker) {
				split.EndMarkerSeen = true
				break
			}
			continue
		}

		open.Lines = append(open.Lines, line)
		if strings.Contains(line, endMarker) {
			split.EndMarkerSeen = true
			closeOpen()
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if open != nil {
		split.Dropped = open
	}
	return split, nil
}
