// Package formatter renders calculation transcripts for the CLI.
package formatter

import (
	"fmt"
	"strings"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// Formats lists the supported output format names
var Formats = []string{"text", "json", "markdown", "csv"}

// Options controls the terminal formatter
type Options struct {
	Color bool
	Emoji bool
}

// New returns the formatter registered under name
func New(name string, opts Options) (Formatter, error) {
	switch name {
	case "", "text":
		return NewTerminal(opts.Color, opts.Emoji), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (must be one of: %s)", name, strings.Join(Formats, ", "))
	}
}
