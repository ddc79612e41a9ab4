package engine

import (
	"github.com/danieljhkim/propyaml/internal/planner"
	"github.com/danieljhkim/propyaml/internal/proptree"
)

// ConvertResult represents the result of a conversion run.
type ConvertResult struct {
	// Root is the converted directory
	Root string `json:"root"`

	// DryRun is set when nothing was written
	DryRun bool `json:"dryRun"`

	// Scanned is the number of documents discovered
	Scanned int `json:"scanned"`

	// Generated lists the documents written (or to be written on dry run)
	Generated []GeneratedDocument `json:"generated"`

	// Collisions lists sources whose target was not generated
	Collisions []planner.Collision `json:"collisions"`

	// Retired lists the originals removed (or to be removed on dry run)
	Retired []RetiredDocument `json:"retired"`

	// ManifestPath is the manifest written for this run, if any
	ManifestPath string `json:"manifestPath,omitempty"`
}

// GeneratedDocument describes one generated target.
type GeneratedDocument struct {
	Source  string `json:"source"`
	Target  string `json:"target"`
	Content string `json:"-"`
}

// RetiredDocument describes one retired original.
type RetiredDocument struct {
	Source        string `json:"source"`
	Backup        string `json:"backup,omitempty"`
	WithoutTarget bool   `json:"withoutTarget,omitempty"`
}

// RenderResult represents a single rendered document.
type RenderResult struct {
	// Path is the rendered document
	Path string `json:"path"`

	// Format is the detected source format
	Format string `json:"format"`

	// Content is the rendered nested text
	Content string `json:"content"`

	// Flat lists the dotted keys of the tree in iteration order
	Flat []proptree.FlatEntry `json:"flat"`
}
