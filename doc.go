// Package book2md converts a LaTeX book into one Markdown file per chapter
// plus an aggregated, cross-linked glossary.
//
// # Quick Start
//
// Build a whole book from its master document:
//
//	book := book2md.NewBook(
//	    book2md.WithOutputDir("md"),
//	    book2md.WithTimeout(time.Minute),
//	)
//	report, err := book.Build(ctx, "book/book.tex")
//	if err != nil {
//	    log.Fatal(err) // master read, output dir or glossary write
//	}
//	for _, ch := range report.Failed() {
//	    log.Printf("%s: %v", ch.Slug, ch.Err)
//	}
//
// # Pipeline
//
// The master document is split at every \chapter{Title} marker. Each chapter
// is written to <slug>.tex and handed to the ChapterProcessor:
//
//  1. the external converter (pandoc by default) writes <slug>.md
//  2. span artifacts and escaped characters are normalized
//  3. Setext headings and definition lists are rewritten
//  4. wrapped lines are joined into one line per paragraph
//  5. the chapter's glossary block is parsed into entries
//  6. bold mentions of those terms link to the glossary; figures become PNG tags
//
// Entries from every chapter are merged by the GlossaryAggregator and written,
// sorted, to glossary.md. A chapter whose conversion fails contributes nothing
// and the run continues.
//
// # Configuration
//
// Use functional options to customize the build:
//
//	book := book2md.NewBook(
//	    book2md.WithConverter(&book2md.PandocConverter{Runner: &book2md.ExecRunner{}, Binary: "/opt/pandoc"}),
//	    book2md.WithLogger(slog.Default()),
//	    book2md.WithGlossaryName("terms.md"),
//	)
//
// Chapters are processed strictly in document order, one converter
// subprocess at a time.
package book2md
