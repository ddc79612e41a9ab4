package planner

import (
	"fmt"
	"sort"
	"sync"

	"github.com/danieljhkim/propyaml/internal/proptree"
)

// Accumulator collects the results of the scan phase. It is safe for
// concurrent use; each document contributes independently and paths are
// never aliased across documents.
type Accumulator struct {
	mu sync.Mutex

	// treesByPath maps a matched source document to its built tree
	treesByPath map[string]*proptree.Tree

	// existingTargetPaths holds every document path already present
	existingTargetPaths map[string]struct{}
}

// NewAccumulator creates an empty Accumulator for one run.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		treesByPath:         make(map[string]*proptree.Tree),
		existingTargetPaths: make(map[string]struct{}),
	}
}

// AddTree records the tree built from the source document at path.
func (a *Accumulator) AddTree(path string, tree *proptree.Tree) error {
	if tree == nil {
		return fmt.Errorf("nil tree for %s", path)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.treesByPath[path]; exists {
		return fmt.Errorf("source %s scanned twice", path)
	}
	a.treesByPath[path] = tree
	return nil
}

// AddExisting records that a document exists at path.
func (a *Accumulator) AddExisting(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.existingTargetPaths[path] = struct{}{}
}

// HasExisting reports whether a document was recorded at path.
func (a *Accumulator) HasExisting(path string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.existingTargetPaths[path]
	return ok
}

// Sources returns the matched source paths in lexical order.
func (a *Accumulator) Sources() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	sources := make([]string, 0, len(a.treesByPath))
	for p := range a.treesByPath {
		sources = append(sources, p)
	}
	sort.Strings(sources)
	return sources
}

// Tree returns the tree built for the source at path.
func (a *Accumulator) Tree(path string) (*proptree.Tree, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.treesByPath[path]
	return t, ok
}
