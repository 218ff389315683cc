package book2md

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyPath     = errors.New("path cannot be empty")
	ErrReadMaster    = errors.New("failed to read master document")
	ErrWriteChapter  = errors.New("failed to write chapter")
	ErrWriteGlossary = errors.New("failed to write glossary")

	// Converter errors. A conversion failure is recovered per chapter.
	ErrConversion         = errors.New("conversion failed")
	ErrConverterNotFound  = errors.New("converter not found")
	ErrConversionTimeout  = errors.New("conversion timed out")
	ErrMissingEndMarker   = errors.New(`master document has no \end{document}`)
	ErrNoChapterArguments = errors.New("no chapter files given")
)
