package proptree

import (
	"iter"
	"slices"
)

// Node is an entry of a Tree: either a nested *Tree or a *Leaf.
type Node interface {
	isNode()
}

// Tree is a mapping from segment to Node with a fixed iteration order.
// Trees are not safe for concurrent mutation; each document owns its own.
type Tree struct {
	sorted  bool
	keys    []string
	entries map[string]Node
}

// New creates an empty tree. When sorted is true, iteration is lexicographic
// by segment at every level, otherwise it follows first insertion.
func New(sorted bool) *Tree {
	return &Tree{
		sorted:  sorted,
		entries: make(map[string]Node),
	}
}

func (*Tree) isNode() {}

// Sorted reports whether the tree iterates in lexicographic order.
func (t *Tree) Sorted() bool {
	return t.sorted
}

// Len returns the number of entries at this level.
func (t *Tree) Len() int {
	return len(t.keys)
}

// Keys returns the segments at this level in iteration order.
func (t *Tree) Keys() []string {
	return slices.Clone(t.keys)
}

// Get returns the node stored under key.
func (t *Tree) Get(key string) (Node, bool) {
	n, ok := t.entries[key]
	return n, ok
}

// All iterates over the entries at this level in iteration order.
func (t *Tree) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		for _, k := range t.keys {
			if !yield(k, t.entries[k]) {
				return
			}
		}
	}
}

// Set stores n under key, replacing any previous node without conflict
// checks. Insert is the checked entry point for building from documents.
func (t *Tree) Set(key string, n Node) {
	if _, exists := t.entries[key]; !exists {
		t.addKey(key)
	}
	t.entries[key] = n
}

func (t *Tree) addKey(key string) {
	if !t.sorted {
		t.keys = append(t.keys, key)
		return
	}
	i, _ := slices.BinarySearch(t.keys, key)
	t.keys = slices.Insert(t.keys, i, key)
}

// Insert places value at path, creating intermediate trees as needed.
// Walking through an existing leaf, or replacing an existing subtree with a
// leaf, fails with a *ConflictError. An existing leaf at the exact path is
// overwritten.
func (t *Tree) Insert(path Path, value Value, comments []string) error {
	if err := path.Validate(); err != nil {
		return err
	}

	current := t
	for i, segment := range path[:len(path)-1] {
		existing, ok := current.entries[segment]
		if !ok {
			child := New(t.sorted)
			current.Set(segment, child)
			current = child
			continue
		}

		switch n := existing.(type) {
		case *Tree:
			current = n
		case *Leaf:
			return &ConflictError{Path: path, Prefix: path[:i+1], PrefixIsLeaf: true}
		}
	}

	last := path[len(path)-1]
	if existing, ok := current.entries[last]; ok {
		if _, isTree := existing.(*Tree); isTree {
			return &ConflictError{Path: path, Prefix: path, PrefixIsLeaf: false}
		}
	}
	current.Set(last, NewLeaf(value, comments))
	return nil
}

// Lookup walks path from t and returns the node at its end.
func (t *Tree) Lookup(path Path) (Node, bool) {
	current := t
	for i, segment := range path {
		n, ok := current.entries[segment]
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return n, true
		}
		sub, ok := n.(*Tree)
		if !ok {
			return nil, false
		}
		current = sub
	}
	return nil, false
}
