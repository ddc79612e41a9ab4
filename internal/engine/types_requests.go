package engine

import "github.com/danieljhkim/propyaml/internal/config"

// ConvertRequest represents a request to convert every matching document
// under a root.
type ConvertRequest struct {
	// Root is the directory to convert (absolute)
	Root string

	// Options are the effective conversion options
	Options config.Options

	// DryRun plans, renders and validates without writing or removing
	DryRun bool
}

// RenderRequest represents a request to render a single document.
type RenderRequest struct {
	// Path is the document to render
	Path string

	// SortKeys renders keys in lexical order
	SortKeys bool
}
