// Package engine provides the core orchestration for propyaml conversions.
//
// The engine package sits between the CLI commands and the lower-level
// packages. A conversion run moves through fixed phases: scan every document
// under the root, plan the targets, render and validate every generated
// document, and only then write targets and retire the originals. Any hard
// failure aborts the run before the first filesystem mutation.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Convert: scan, plan, render, write and retire phases
//   - RenderDocument: single-document conversion without side effects
package engine

import (
	"github.com/danieljhkim/propyaml/internal/clock"
	"github.com/danieljhkim/propyaml/internal/fsops"
	"github.com/danieljhkim/propyaml/internal/hash"
)

// Engine orchestrates all propyaml operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs     fsops.FS
	hasher hash.Hasher
	clock  clock.Clock
}

// New creates a new Engine with the given dependencies.
func New(fs fsops.FS, hasher hash.Hasher, clk clock.Clock) *Engine {
	return &Engine{
		fs:     fs,
		hasher: hasher,
		clock:  clk,
	}
}
