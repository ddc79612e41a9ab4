package ingest

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/propyaml/internal/proptree"
)

var (
	// ErrUnsupportedDocument indicates a YAML document whose root is not a mapping.
	ErrUnsupportedDocument = errors.New("unsupported yaml document")

	// ErrUnsupportedFormat indicates a path whose extension has no producer.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// YAMLProducer yields one entry per scalar or sequence reached by a
// depth-first walk of a YAML mapping document. The entry path is the stack
// of mapping keys from the root.
type YAMLProducer struct {
	entries []proptree.Entry
	pos     int
}

// NewYAMLProducer parses data and walks the first document in it. sorted
// controls the ordering of mappings nested inside sequences.
func NewYAMLProducer(data []byte, sorted bool) (*YAMLProducer, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	w := &yamlWalker{sorted: sorted}
	if err := w.walk(&root, nil); err != nil {
		return nil, err
	}
	return &YAMLProducer{entries: w.entries}, nil
}

// Next returns the next entry or io.EOF.
func (p *YAMLProducer) Next() (proptree.Entry, error) {
	if p.pos >= len(p.entries) {
		return proptree.Entry{}, io.EOF
	}
	e := p.entries[p.pos]
	p.pos++
	return e, nil
}

type yamlWalker struct {
	sorted  bool
	pending []string
	entries []proptree.Entry
}

func (w *yamlWalker) collect(comment string) {
	w.pending = append(w.pending, ExtractComments(comment)...)
}

func (w *yamlWalker) emit(path proptree.Path, value proptree.Value) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: root is not a mapping", ErrUnsupportedDocument)
	}
	w.entries = append(w.entries, proptree.Entry{Path: path, Value: value, Comments: w.pending})
	w.pending = nil
	return nil
}

func (w *yamlWalker) walk(n *yaml.Node, path proptree.Path) error {
	switch n.Kind {
	case 0:
		// empty input
		return nil
	case yaml.DocumentNode:
		w.collect(n.HeadComment)
		for _, c := range n.Content {
			if err := w.walk(c, path); err != nil {
				return err
			}
		}
		return nil
	case yaml.MappingNode:
		w.collect(n.HeadComment)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			w.collect(key.HeadComment)
			if err := w.walk(value, path.Append(key.Value)); err != nil {
				return err
			}
		}
		return nil
	case yaml.SequenceNode:
		w.collect(n.HeadComment)
		list, err := w.list(n)
		if err != nil {
			return err
		}
		return w.emit(path, list)
	case yaml.ScalarNode:
		w.collect(n.HeadComment)
		return w.emit(path, proptree.Scalar(n.Value))
	case yaml.AliasNode:
		return w.walk(n.Alias, path)
	default:
		return fmt.Errorf("%w: node kind %d at %q", ErrUnsupportedDocument, n.Kind, path.String())
	}
}

// value converts a node found inside a sequence.
func (w *yamlWalker) value(n *yaml.Node) (proptree.Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return proptree.Scalar(n.Value), nil
	case yaml.SequenceNode:
		return w.list(n)
	case yaml.MappingNode:
		return w.mapping(n)
	case yaml.AliasNode:
		return w.value(n.Alias)
	default:
		return nil, fmt.Errorf("%w: node kind %d in sequence", ErrUnsupportedDocument, n.Kind)
	}
}

func (w *yamlWalker) list(n *yaml.Node) (proptree.List, error) {
	list := make(proptree.List, 0, len(n.Content))
	for _, item := range n.Content {
		v, err := w.value(item)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, nil
}

func (w *yamlWalker) mapping(n *yaml.Node) (*proptree.Tree, error) {
	tree := proptree.New(w.sorted)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, node := n.Content[i], n.Content[i+1]
		v, err := w.value(node)
		if err != nil {
			return nil, err
		}
		if sub, ok := v.(*proptree.Tree); ok {
			tree.Set(key.Value, sub)
			continue
		}
		if err := tree.Insert(proptree.Path{key.Value}, v, ExtractComments(key.HeadComment)); err != nil {
			return nil, err
		}
	}
	return tree, nil
}
