// Package proptree holds the canonical in-memory form of a configuration
// document: a tree of path segments whose terminal nodes carry a value and
// the comments that preceded it in the source.
//
// A tree is built by feeding it (path, value, comments) entries. Both the
// flat (.properties) and nested (YAML) ingestion adapters produce the same
// entries through the Producer interface, so the tree itself never knows
// which format it came from.
//
// Key invariants:
//   - A segment maps to exactly one of a nested *Tree or a *Leaf.
//   - A path may not pass through a leaf, and a leaf may not replace a
//     subtree. Both cases fail with ErrStructuralConflict.
//   - Re-inserting at an identical leaf path overwrites the previous leaf.
//   - Iteration order is insertion order per level, or lexicographic at
//     every level when the tree is sorted.
package proptree
