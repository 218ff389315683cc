package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled span patterns. Inner text is captured lazily so that two spans
// on one line are matched separately.
var (
	boldSpanPattern   = regexp.MustCompile(`<span>\*\*(.*?)\*\*</span>`)
	italicSpanPattern = regexp.MustCompile(`<span>\*(.*?)\*</span>`)
	spanTagPattern    = regexp.MustCompile(`</*span>`)
)

// codeDelimiter replaces span tags that carry no emphasis.
const codeDelimiter = "``"

// escapeReplacer undoes the backslash escaping the converter applies to
// characters that are meaningful in Markdown.
var escapeReplacer = strings.NewReplacer(`\*`, "*", `\>`, ">", `\<`, "<")

// NormalizeSpans rewrites span artifacts left by the LaTeX converter.
// Bold spans become **text**, italic spans become *text*, and any remaining
// span tag becomes an inline code delimiter.
func NormalizeSpans(content string) string {
	content = replaceDistinctSpans(content, boldSpanPattern, "**")
	content = replaceDistinctSpans(content, italicSpanPattern, "*")
	return spanTagPattern.ReplaceAllString(content, codeDelimiter)
}

// replaceDistinctSpans collects the distinct inner texts matched by pattern,
// then replaces every span wrapping each of them in one global pass per text.
func replaceDistinctSpans(content string, pattern *regexp.Regexp, marker string) string {
	seen := make(map[string]bool)
	var inner []string
	for _, m := range pattern.FindAllStringSubmatch(content, -1) {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		inner = append(inner, m[1])
	}

	for _, text := range inner {
		emphasized := marker + text + marker
		content = strings.ReplaceAll(content, "<span>"+emphasized+"</span>", emphasized)
	}
	return content
}

// UnescapeLine turns \*, \> and \< back into their literal characters.
func UnescapeLine(line string) string {
	return escapeReplacer.Replace(line)
}

// UnescapeLines applies UnescapeLine to every line in place.
func UnescapeLines(lines []string) {
	for i := range lines {
		lines[i] = UnescapeLine(lines[i])
	}
}
