package main

import (
	"errors"
	"os"

	book2md "github.com/alnah/go-book2md"
	"github.com/alnah/go-book2md/internal/cache"
	"github.com/alnah/go-book2md/internal/config"
	"github.com/alnah/go-book2md/internal/render"
)

// Exit codes for book2md CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess   = 0 // Successful build
	ExitGeneral   = 1 // General/unexpected error, some chapters failed
	ExitUsage     = 2 // Invalid flags, config, or validation
	ExitIO        = 3 // File not found, permission denied
	ExitConverter = 4 // Converter missing or failed on every chapter
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Converter errors (exit 4)
	if errors.Is(err, book2md.ErrConversion) ||
		errors.Is(err, book2md.ErrConverterNotFound) ||
		errors.Is(err, book2md.ErrConversionTimeout) {
		return ExitConverter
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, book2md.ErrReadMaster) ||
		errors.Is(err, book2md.ErrWriteChapter) ||
		errors.Is(err, book2md.ErrWriteGlossary) ||
		errors.Is(err, cache.ErrMissingPath) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, render.ErrUnknownStyle) ||
		errors.Is(err, book2md.ErrNoChapterArguments) {
		return ExitUsage
	}

	return ExitGeneral
}
