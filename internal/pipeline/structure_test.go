package pipeline

import (
	"slices"
	"testing"
)

func TestFixStructure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "setext H1 promoted",
			input:    []string{"Iteration", "========="},
			expected: []string{"# Iteration", ""},
		},
		{
			name:     "H1 with tag becomes anchor and heading",
			input:    []string{"Iteration {#sec:it}", "========="},
			expected: []string{"<a name='sec_it'></a>", "# Iteration"},
		},
		{
			name:     "H1 tag with spaces joined by underscore",
			input:    []string{"Case Notes {#intro notes}", "=========="},
			expected: []string{"<a name='intro_notes'></a>", "# Case Notes"},
		},
		{
			name:     "setext H2 promoted and trimmed",
			input:    []string{"  Reassignment  ", "------------"},
			expected: []string{"## Reassignment", ""},
		},
		{
			name:     "definition list item",
			input:    []string{"list:", "", ":   an ordered sequence"},
			expected: []string{"- **list:**", "", "   an ordered sequence"},
		},
		{
			name:     "definition without indentation gets a space",
			input:    []string{"dict:", "", ":a mapping"},
			expected: []string{"- **dict:**", "", " a mapping"},
		},
		{
			name:     "colon line without term is left alone",
			input:    []string{"text", "", ": not a definition"},
			expected: []string{"text", "", ": not a definition"},
		},
		{
			name:     "colon on second line has no term two lines above",
			input:    []string{"term:", ": definition"},
			expected: []string{"term:", ": definition"},
		},
		{
			name:     "underline on first line is ignored",
			input:    []string{"=====", "text"},
			expected: []string{"=====", "text"},
		},
		{
			name:     "rule after blank line is not a heading",
			input:    []string{"para", "", "-----------"},
			expected: []string{"para", "", "-----------"},
		},
		{
			name:     "short underline ignored",
			input:    []string{"Hi", "=="},
			expected: []string{"Hi", "=="},
		},
		{
			name:     "several headings",
			input:    []string{"One", "=====", "", "Two", "-----", "", "body"},
			expected: []string{"# One", "", "", "## Two", "", "", "body"},
		},
		{
			name:     "empty input",
			input:    []string{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lines := slices.Clone(tt.input)
			FixStructure(lines)
			if !slices.Equal(lines, tt.expected) {
				t.Errorf("FixStructure() = %q, want %q", lines, tt.expected)
			}
		})
	}
}

func TestAnchorFromTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"#sec:it}", "sec_it"},
		{"#intro}", "intro"},
		{"#a b  c}", "a_b_c"},
		{"}", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := anchorFromTag(tt.input); got != tt.expected {
				t.Errorf("anchorFromTag(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
