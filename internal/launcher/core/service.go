package core

import (
	"context"
	"io"

	"github.com/nemanja-m/gomr-hadoop/internal/options"
)

// ProcessorLookup answers whether names and files denote registered processors.
type ProcessorLookup interface {
	Registered(name string) bool
	NameFromFile(path string) string
}

// ProcessorRegistry is a lookup that can also load processor files.
type ProcessorRegistry interface {
	ProcessorLookup
	LoadFile(path string) error
}

// Shell runs a command line through a POSIX shell and blocks until it exits.
type Shell interface {
	Run(ctx context.Context, command string, stdout, stderr io.Writer) error
}

// CommandBuilder renders a resolved job into a single command line.
type CommandBuilder interface {
	Build(args Arguments, res Resolution, opts *options.Store) (string, error)
}
