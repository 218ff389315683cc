// Package render turns generated chapter and glossary Markdown into
// standalone HTML previews and inspects the result for glossary anchors.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"os"
	"slices"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	goldhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-book2md/internal/fileutil"
)

// Sentinel errors for rendering.
var (
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrUnknownStyle   = errors.New("unknown highlighting style")
)

// page wraps goldmark's fragment output in a complete HTML5 document.
const page = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
%s</style>
</head>
<body>
%s</body>
</html>
`

// Renderer converts Markdown to HTML with GFM and highlighted code blocks.
// A Renderer is safe for concurrent use.
type Renderer struct {
	md  goldmark.Markdown
	css string
}

// New creates a Renderer whose code blocks use the named chroma style.
func New(style string) (*Renderer, error) {
	s, ok := styles.Registry[style]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownStyle, style, StyleNames())
	}

	var css bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&css, s); err != nil {
		return nil, fmt.Errorf("writing %s stylesheet: %w", style, err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithGuessLanguage(true),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithRendererOptions(
			// Chapters carry raw <a name> anchors and <img> figure tags.
			goldhtml.WithUnsafe(),
			goldhtml.WithXHTML(),
		),
	)
	return &Renderer{md: md, css: css.String()}, nil
}

// StyleNames lists the registered chroma styles, sorted.
func StyleNames() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ToHTML converts Markdown content to a standalone HTML5 document.
// Supports context cancellation via goroutine + select since
// goldmark doesn't natively support context.
func (r *Renderer) ToHTML(ctx context.Context, title, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		body, err := r.fragment(content)
		if err != nil {
			done <- result{err: err}
			return
		}
		done <- result{html: fmt.Sprintf(page, html.EscapeString(title), r.css, body)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}

func (r *Renderer) fragment(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}

// RenderFile writes an HTML preview next to mdPath (same name, .html) and
// returns its path. Links to sibling .md files are pointed at their previews.
func (r *Renderer) RenderFile(ctx context.Context, mdPath string) (string, error) {
	content, err := os.ReadFile(mdPath) // #nosec G304 -- path produced by the build
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", mdPath, err)
	}
	htmlPath, err := fileutil.ReplaceExt(mdPath, ".html")
	if err != nil {
		return "", err
	}

	doc, err := r.ToHTML(ctx, titleOf(mdPath), string(content))
	if err != nil {
		return "", err
	}
	doc, err = RewriteMarkdownLinks(doc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	if err := fileutil.WriteFile(htmlPath, []byte(doc)); err != nil {
		return "", fmt.Errorf("writing %s: %w", htmlPath, err)
	}
	return htmlPath, nil
}
