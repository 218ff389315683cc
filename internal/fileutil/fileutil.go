// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	DirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	FilePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// ReplaceExt returns path with its extension swapped for ext (".md", "html").
// A missing leading dot is added.
func ReplaceExt(path, ext string) (string, error) {
	if err := ValidateExtension(ext); err != nil {
		return "", err
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext, nil
}

// ValidateExtension checks that the extension is safe to append to a path.
func ValidateExtension(extension string) error {
	if strings.TrimPrefix(extension, ".") == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// WriteFile overwrites path with content, creating parent directories.
// The write is not atomic: a crash mid-write can leave a truncated file.
func WriteFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPermissions); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	// #nosec G306 -- generated book files are meant to be readable
	return os.WriteFile(path, content, FilePermissions)
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "book" -> false (name)
//   - "./book.yaml" -> true (relative path)
//   - "/etc/book2md/book.yaml" -> true (absolute)
//   - "C:\books\book.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
