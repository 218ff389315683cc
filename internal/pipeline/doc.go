// Package pipeline implements the text passes that turn converter output
// into book-ready Markdown.
//
// Each pass works on plain strings or line slices and has no I/O:
//   - span normalization (<span>**x**</span> artifacts, escaped characters)
//   - structural fixes (Setext headings, definition lists)
//   - sentence joining (one logical line per paragraph)
//   - glossary block parsing and anchor-key derivation
//   - glossary term linking and figure rewriting
//   - final cleanup (glossary block removal, blank-line collapse)
//
// Running the converter and writing files is handled by the root book2md
// package, which applies these passes in order for every chapter.
package pipeline
