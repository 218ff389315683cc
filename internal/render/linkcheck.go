package render

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DanglingLink is a glossary link whose anchor the glossary does not define.
type DanglingLink struct {
	File string // chapter file, relative to the checked directory
	Href string
	Text string
}

func (d DanglingLink) String() string {
	return fmt.Sprintf("%s: [%s](%s)", d.File, d.Text, d.Href)
}

// Anchors returns the anchor names defined in htmlContent, from both
// a[name] and any element id.
func Anchors(htmlContent string) (map[string]bool, error) {
	doc, _, err := parseHTML(htmlContent)
	if err != nil {
		return nil, err
	}
	anchors := make(map[string]bool)
	walk(doc, func(n *html.Node) {
		if v, ok := attr(n, "id"); ok && v != "" {
			anchors[v] = true
		}
		if n.DataAtom == atom.A {
			if v, ok := attr(n, "name"); ok && v != "" {
				anchors[v] = true
			}
		}
	})
	return anchors, nil
}

// TargetLink is an a[href] pointing into a given file.
type TargetLink struct {
	Href     string
	Fragment string
	Text     string
}

// LinksTo returns the links in htmlContent whose path is target.
func LinksTo(htmlContent, target string) ([]TargetLink, error) {
	doc, _, err := parseHTML(htmlContent)
	if err != nil {
		return nil, err
	}
	var links []TargetLink
	walk(doc, func(n *html.Node) {
		if n.DataAtom != atom.A {
			return
		}
		href, ok := attr(n, "href")
		if !ok {
			return
		}
		u, err := url.Parse(href)
		if err != nil || u.Scheme != "" || path.Clean(u.Path) != target {
			return
		}
		links = append(links, TargetLink{Href: href, Fragment: u.Fragment, Text: textOf(n)})
	})
	return links, nil
}

// CheckGlossaryLinks renders every Markdown file in dir and reports links
// to glossary anchors that the rendered glossary does not define.
// Files are visited in name order.
func (r *Renderer) CheckGlossaryLinks(ctx context.Context, dir, glossary string) ([]DanglingLink, error) {
	glossaryPath := filepath.Join(dir, glossary)
	content, err := os.ReadFile(glossaryPath) // #nosec G304 -- user-selected book directory
	if err != nil {
		return nil, fmt.Errorf("reading glossary: %w", err)
	}
	body, err := r.fragment(string(content))
	if err != nil {
		return nil, err
	}
	anchors, err := Anchors(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var dangling []DanglingLink
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".md" || name == glossary {
			continue
		}
		chapter, err := os.ReadFile(filepath.Join(dir, name)) // #nosec G304 -- listed from dir
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		body, err := r.fragment(string(chapter))
		if err != nil {
			return nil, err
		}
		links, err := LinksTo(body, glossary)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
		}
		for _, l := range links {
			if l.Fragment != "" && !anchors[l.Fragment] {
				dangling = append(dangling, DanglingLink{File: name, Href: l.Href, Text: l.Text})
			}
		}
	}
	return dangling, nil
}

// titleOf derives a page title from a generated file name: "Case_Notes.md" -> "Case Notes".
func titleOf(p string) string {
	base := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	return strings.ReplaceAll(base, "_", " ")
}
