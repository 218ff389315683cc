package main

// Notes:
// - This file contains fakes and fixtures shared by the command tests.
// - fakeConverter writes canned Markdown instead of running pandoc, so every
//   command test runs without external binaries.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	book2md "github.com/alnah/go-book2md"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

// fakeConverter writes outputs[base(texPath)] to mdPath, or returns fail[base].
type fakeConverter struct {
	mu      sync.Mutex
	outputs map[string]string
	fail    map[string]error
	calls   int
}

func (c *fakeConverter) ToMarkdown(_ context.Context, texPath, mdPath string) error {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	name := filepath.Base(texPath)
	if err, ok := c.fail[name]; ok {
		return err
	}
	out, ok := c.outputs[name]
	if !ok {
		return errors.New("no canned output for " + name)
	}
	return os.WriteFile(mdPath, []byte(out), 0o600)
}

func (c *fakeConverter) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// mockRunner answers Run with canned stdout or an error.
type mockRunner struct {
	stdout string
	err    error
}

func (r *mockRunner) Run(_ context.Context, _ string, _ ...string) (string, string, error) {
	return r.stdout, "", r.err
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

const testMaster = `\documentclass{book}
\begin{document}
\chapter{The way of the program}
text one
\chapter{Case Study: Word Play}
skipped
\chapter{Functions}
text two
\end{document}
`

// chapterMarkdown mimics pandoc output for a chapter with one glossary term.
func chapterMarkdown(term, definition string) string {
	return "Body with **" + term + "** and **" + term + "s**.\n\n" +
		"Glossary\n--------\n\n" + term + ":\n\n:   " + definition + "\n"
}

// bookOutputs returns converter output for every chapter of testMaster.
func bookOutputs() map[string]string {
	return map[string]string{
		"The_way_of_the_program.tex": chapterMarkdown("program", "A sequence of instructions."),
		"Functions.tex":              chapterMarkdown("function", "A named sequence of statements."),
	}
}

// testEnv returns an Environment writing to buffers and converting with conv.
func testEnv(conv book2md.Converter) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Stdout:       &stdout,
		Stderr:       &stderr,
		NewConverter: func(string) book2md.Converter { return conv },
		Runner:       &mockRunner{stdout: "pandoc 3.1.9\nFeatures: +server\n"},
		LookPath:     func(file string) (string, error) { return "/usr/bin/" + file, nil },
	}
	return env, &stdout, &stderr
}

// writeFile writes content under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
