package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for the final cleanup.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Runs of blank (or whitespace-only) lines
	blankLineRun = regexp.MustCompile(`\n(?:[ \t]*\n)+`)

	// Pandoc attribute tags such as {#sec:intro} or {#fig:stack .wide}
	attributeTag = regexp.MustCompile(`\{#.*\}`)
)

// doctestPrompt is the interpreter prompt prefix of indented code examples.
const doctestPrompt = "    >>> "

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// CleanLine removes interpreter prompts and attribute tags from a line.
func CleanLine(line string) string {
	line = strings.ReplaceAll(line, doctestPrompt, "")
	return attributeTag.ReplaceAllString(line, "")
}

// CollapseBlankLines trims the content and reduces every run of blank lines
// to a single blank line.
func CollapseBlankLines(content string) string {
	return blankLineRun.ReplaceAllString(strings.TrimSpace(content), "\n\n")
}

// StripGlossarySection removes the "## Glossary" block from lines. The block
// runs until the next "## Exercises" heading; that heading and every line
// after it are kept.
func StripGlossarySection(lines []string) []string {
	kept := make([]string, 0, len(lines))
	inGlossary := false

	for _, line := range lines {
		lower := strings.ToLower(normalizeSpace(line))
		switch {
		case strings.Contains(lower, glossaryHeading):
			inGlossary = true
			continue
		case strings.Contains(lower, exercisesHeading):
			inGlossary = false
		}
		if inGlossary {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}
