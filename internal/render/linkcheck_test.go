package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestAnchors(t *testing.T) {
	t.Parallel()

	got, err := Anchors(`<ul><li><a name='function'>Function</a></li></ul><h2 id="glossary">Glossary</h2><a href="#x">x</a>`)
	if err != nil {
		t.Fatalf("Anchors() error = %v", err)
	}
	for _, want := range []string{"function", "glossary"} {
		if !got[want] {
			t.Errorf("Anchors() missing %q: %v", want, got)
		}
	}
	if len(got) != 2 {
		t.Errorf("Anchors() = %v, want 2 entries", got)
	}
}

func TestLinksTo(t *testing.T) {
	t.Parallel()

	htmlContent := `<p><a href="glossary.md#list">lists</a> and <a href="./glossary.md#tuple">tuple</a>` +
		` and <a href="Lists.md#x">other</a> and <a href="https://x.org/glossary.md#y">web</a></p>`

	got, err := LinksTo(htmlContent, "glossary.md")
	if err != nil {
		t.Fatalf("LinksTo() error = %v", err)
	}
	want := []TargetLink{
		{Href: "glossary.md#list", Fragment: "list", Text: "lists"},
		{Href: "./glossary.md#tuple", Fragment: "tuple", Text: "tuple"},
	}
	if !slices.Equal(got, want) {
		t.Errorf("LinksTo() = %+v, want %+v", got, want)
	}
}

func TestCheckGlossaryLinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := map[string]string{
		"glossary.md": "- <a name='function'>Function</a>\n   a named sequence of statements\n\n",
		"Functions.md": "# Functions\n\nA [Function](glossary.md#function) runs.\n\n" +
			"A [tuple](glossary.md#tuple) is dangling.\n",
		"Lists.md":  "# Lists\n\nSee [lists](glossary.md#list).\n",
		"notes.txt": "[x](glossary.md#nothing)\n",
		"Clean.md":  "# Clean\n\nNo links.\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	got, err := newRenderer(t).CheckGlossaryLinks(context.Background(), dir, "glossary.md")
	if err != nil {
		t.Fatalf("CheckGlossaryLinks() error = %v", err)
	}
	want := []DanglingLink{
		{File: "Functions.md", Href: "glossary.md#tuple", Text: "tuple"},
		{File: "Lists.md", Href: "glossary.md#list", Text: "lists"},
	}
	if !slices.Equal(got, want) {
		t.Errorf("CheckGlossaryLinks() = %+v, want %+v", got, want)
	}
	if s := got[0].String(); s != "Functions.md: [tuple](glossary.md#tuple)" {
		t.Errorf("String() = %q", s)
	}
}

func TestCheckGlossaryLinks_MissingGlossary(t *testing.T) {
	t.Parallel()

	_, err := newRenderer(t).CheckGlossaryLinks(context.Background(), t.TempDir(), "glossary.md")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("CheckGlossaryLinks() error = %v, want os.ErrNotExist", err)
	}
}

func TestTitleOf(t *testing.T) {
	t.Parallel()

	if got := titleOf("/out/Case_Notes.md"); got != "Case Notes" {
		t.Errorf("titleOf() = %q, want %q", got, "Case Notes")
	}
}
