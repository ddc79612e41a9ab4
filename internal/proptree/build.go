package proptree

import (
	"errors"
	"fmt"
	"io"
)

// Entry is one property produced by a source document.
type Entry struct {
	Path     Path
	Value    Value
	Comments []string
}

// Producer yields the entries of one document in document order. Next
// returns io.EOF once the document is exhausted. Producers are single pass.
type Producer interface {
	Next() (Entry, error)
}

// Build drains p into a new tree.
func Build(p Producer, sorted bool) (*Tree, error) {
	tree := New(sorted)
	for {
		entry, err := p.Next()
		if errors.Is(err, io.EOF) {
			return tree, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read entry: %w", err)
		}
		if err := tree.Insert(entry.Path, entry.Value, entry.Comments); err != nil {
			return nil, err
		}
	}
}

// SliceProducer replays a fixed list of entries.
type SliceProducer struct {
	entries []Entry
	pos     int
}

// NewSliceProducer creates a producer over entries.
func NewSliceProducer(entries ...Entry) *SliceProducer {
	return &SliceProducer{entries: entries}
}

// Next returns the next entry or io.EOF.
func (p *SliceProducer) Next() (Entry, error) {
	if p.pos >= len(p.entries) {
		return Entry{}, io.EOF
	}
	e := p.entries[p.pos]
	p.pos++
	return e, nil
}
