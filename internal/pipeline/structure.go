package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// Setext underline patterns. Five characters is the shortest underline the
// converter emits for a heading.
var (
	h1Underline = regexp.MustCompile(`^\s*={5,}\s*$`)
	h2Underline = regexp.MustCompile(`^\s*-{5,}\s*$`)
)

// tagReplacer strips the markup of a {#tag} suffix and treats colons as
// word separators, so "{#sec:it}" yields "sec it".
var tagReplacer = strings.NewReplacer("#", "", "}", "", ":", " ")

// FixStructure promotes Setext headings and definition-list items to their
// Markdown equivalents, editing lines in place.
//
// Rules are checked in order and the first match wins:
//  1. a line of '=' turns the previous line into an H1 (with an optional anchor)
//  2. a line of '-' turns the previous line into an H2
//  3. a line starting with ':' whose line two above ends with ':' is a
//     definition; the term becomes a bold list item
func FixStructure(lines []string) {
	for i, line := range lines {
		switch {
		case h1Underline.MatchString(line):
			promoteH1(lines, i)
		case h2Underline.MatchString(line):
			promoteH2(lines, i)
		case strings.HasPrefix(line, ":") && isDefinitionTerm(lines, i-2):
			promoteDefinition(lines, i)
		}
	}
}

// promoteH1 rewrites lines[i-1] as an H1. A "Title {#tag}" line is split into
// an anchor on the previous line and the heading on the underline line.
func promoteH1(lines []string, i int) {
	if !hasContent(lines, i-1) {
		return
	}

	title := strings.TrimSpace(lines[i-1])
	if head, tag, ok := strings.Cut(title, "{"); ok {
		lines[i-1] = fmt.Sprintf("<a name='%s'></a>", anchorFromTag(tag))
		lines[i] = "# " + strings.TrimSpace(head)
		return
	}

	lines[i-1] = "# " + title
	lines[i] = ""
}

// promoteH2 rewrites lines[i-1] as an H2 and clears the underline.
func promoteH2(lines []string, i int) {
	if !hasContent(lines, i-1) {
		return
	}
	lines[i-1] = "## " + strings.TrimSpace(lines[i-1])
	lines[i] = ""
}

// promoteDefinition turns the term two lines above into a bold list item and
// drops the leading colon of the definition, keeping it indented.
func promoteDefinition(lines []string, i int) {
	lines[i-2] = "- **" + strings.TrimSpace(lines[i-2]) + "**"

	definition := lines[i][1:]
	if !strings.HasPrefix(definition, " ") && !strings.HasPrefix(definition, "\t") {
		definition = " " + definition
	}
	lines[i] = definition
}

// isDefinitionTerm reports whether lines[j] exists and ends with a colon.
func isDefinitionTerm(lines []string, j int) bool {
	if j < 0 || j >= len(lines) {
		return false
	}
	return strings.HasSuffix(strings.TrimRight(lines[j], " \t"), ":")
}

// hasContent reports whether lines[j] exists and is not blank.
func hasContent(lines []string, j int) bool {
	return j >= 0 && j < len(lines) && !isBlank(lines[j])
}

// anchorFromTag converts the part after '{' of a heading into an anchor name.
func anchorFromTag(tag string) string {
	return strings.Join(strings.Fields(tagReplacer.Replace(tag)), "_")
}

// isBlank returns true if the line is empty or contains only whitespace.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
