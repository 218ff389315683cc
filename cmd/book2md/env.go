package main

import (
	"io"
	"os"
	"os/exec"

	book2md "github.com/alnah/go-book2md"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, the converter factory and binary lookup.
type Environment struct {
	Stdout       io.Writer
	Stderr       io.Writer
	NewConverter func(binary string) book2md.Converter

	// Doctor locates the converter with LookPath and queries its version with Runner.
	Runner   book2md.CommandRunner
	LookPath func(file string) (string, error)
}

// DefaultEnv returns the production environment backed by the real pandoc.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewConverter: func(binary string) book2md.Converter {
			return book2md.NewPandocConverter(binary)
		},
		Runner:   &book2md.ExecRunner{},
		LookPath: exec.LookPath,
	}
}
