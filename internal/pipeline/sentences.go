package pipeline

import (
	"strings"
	"unicode"
)

// JoinSentences reflows wrapped lines so every paragraph, heading and list
// item occupies a single line.
//
// A line starting with a letter, digit, '*' or '`' continues the previous
// entry, joined with one space. After a blank entry it starts a new paragraph
// instead. Any other line (blank, heading, list marker, indented text) is
// kept as its own entry.
func JoinSentences(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}

	joined := make([]string, 0, len(lines))
	joined = append(joined, lines[0])

	for _, line := range lines[1:] {
		last := len(joined) - 1
		switch {
		case isBlank(line):
			joined = append(joined, line)
		case isContinuation(line):
			if isBlank(joined[last]) {
				joined = append(joined, strings.TrimLeftFunc(line, unicode.IsSpace))
			} else {
				joined[last] += " " + line
			}
		default:
			joined = append(joined, line)
		}
	}

	return joined
}

// isContinuation reports whether the first byte of line is [A-Za-z0-9*`].
func isContinuation(line string) bool {
	if line == "" {
		return false
	}
	c := line[0]
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '*', c == '`':
		return true
	}
	return false
}
