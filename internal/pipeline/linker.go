package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultGlossaryTarget is the file glossary links point to.
const DefaultGlossaryTarget = "glossary.md"

// figurePattern matches a figure reference such as figs/stack.pdf. Names
// may contain spaces; quotes, brackets and line breaks end the reference.
var figurePattern = regexp.MustCompile(`figs/[^\n'"(){}\[\]<>]+?\.pdf`)

// termLink pairs an anchor key with the pattern matching its bold mentions.
type termLink struct {
	anchor  string
	pattern *regexp.Regexp
}

// TermLinker rewrites bold mentions of glossary terms into links to the
// aggregated glossary.
type TermLinker struct {
	target string
	links  []termLink
}

// NewTermLinker compiles one case-insensitive pattern per anchor key. The
// pattern matches the bold term with an optional trailing 's', so a term
// links both its singular and simple plural mentions.
// Empty anchor keys are ignored.
func NewTermLinker(target string, entries []Entry) *TermLinker {
	l := &TermLinker{target: target}
	for _, e := range entries {
		if e.AnchorKey == "" {
			continue
		}
		words := regexp.QuoteMeta(strings.ReplaceAll(e.AnchorKey, "_", " "))
		l.links = append(l.links, termLink{
			anchor:  e.AnchorKey,
			pattern: regexp.MustCompile(`(?i)\*\*` + words + `s?\*\*`),
		})
	}
	return l
}

// Link replaces every bold mention of a known term in line with a Markdown
// link. Terms are applied in the order they were given, so when two patterns
// overlap the earlier term wins.
func (l *TermLinker) Link(line string) string {
	for _, tl := range l.links {
		line = tl.pattern.ReplaceAllStringFunc(line, func(match string) string {
			name := strings.TrimSpace(strings.ReplaceAll(match, "*", ""))
			return fmt.Sprintf("[%s](%s#%s)", name, l.target, tl.anchor)
		})
	}
	return line
}

// RewriteFigure replaces a line referencing figs/<name>.pdf with an image tag
// pointing at the PNG rendition of the same figure.
func RewriteFigure(line string) string {
	fig := figurePattern.FindString(line)
	if fig == "" {
		return line
	}
	return fmt.Sprintf("<img src='%s'/>", strings.TrimSuffix(fig, ".pdf")+".png")
}
