package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danieljhkim/propyaml/internal/proptree"
)

const indentUnit = "  "

// ErrUnsupportedValue indicates a tree node that has no YAML rendering.
var ErrUnsupportedValue = errors.New("unsupported value type")

// ValueError identifies the offending node.
type ValueError struct {
	Path  string
	Shape string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%v: %s at %q", ErrUnsupportedValue, e.Shape, e.Path)
}

func (e *ValueError) Unwrap() error {
	return ErrUnsupportedValue
}

// Render returns the YAML text for tree.
func Render(tree *proptree.Tree) (string, error) {
	if tree == nil {
		return "", &ValueError{Path: "", Shape: "nil tree"}
	}
	var b strings.Builder
	if err := writeMapping(&b, tree, 0, ""); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeMapping(b *strings.Builder, t *proptree.Tree, depth int, path string) error {
	for key, n := range t.All() {
		full := join(path, key)

		if leaf, ok := n.(*proptree.Leaf); ok {
			for _, c := range leaf.Comments {
				writeIndent(b, depth)
				writeComment(b, c)
			}
		}

		writeIndent(b, depth)
		b.WriteString(key)
		b.WriteString(":")

		switch n := n.(type) {
		case *proptree.Tree:
			if err := writeNested(b, n, depth+1, full); err != nil {
				return err
			}
		case *proptree.Leaf:
			if err := writeValue(b, n.Value, depth+1, full); err != nil {
				return err
			}
		default:
			return &ValueError{Path: full, Shape: fmt.Sprintf("%T", n)}
		}
	}
	return nil
}

// writeValue renders the part of a mapping entry that follows "key:".
func writeValue(b *strings.Builder, v proptree.Value, depth int, path string) error {
	switch v := v.(type) {
	case proptree.Scalar:
		writeScalar(b, string(v))
		return nil
	case proptree.List:
		if len(v) == 0 {
			b.WriteString(" []\n")
			return nil
		}
		b.WriteString("\n")
		return writeList(b, v, depth, path)
	case *proptree.Tree:
		return writeNested(b, v, depth, path)
	case nil:
		return &ValueError{Path: path, Shape: "nil value"}
	default:
		return &ValueError{Path: path, Shape: fmt.Sprintf("%T", v)}
	}
}

func writeNested(b *strings.Builder, t *proptree.Tree, depth int, path string) error {
	if t == nil || t.Len() == 0 {
		return &ValueError{Path: path, Shape: "empty map"}
	}
	b.WriteString("\n")
	return writeMapping(b, t, depth, path)
}

func writeList(b *strings.Builder, items proptree.List, depth int, path string) error {
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		writeIndent(b, depth)
		b.WriteString("-")

		switch item := item.(type) {
		case proptree.Scalar:
			writeScalar(b, string(item))
		case proptree.List:
			if len(item) == 0 {
				b.WriteString(" []\n")
				continue
			}
			b.WriteString("\n")
			if err := writeList(b, item, depth+1, itemPath); err != nil {
				return err
			}
		case *proptree.Tree:
			if err := writeNested(b, item, depth+1, itemPath); err != nil {
				return err
			}
		case nil:
			return &ValueError{Path: itemPath, Shape: "nil value"}
		default:
			return &ValueError{Path: itemPath, Shape: fmt.Sprintf("%T", item)}
		}
	}
	return nil
}

func writeComment(b *strings.Builder, comment string) {
	b.WriteString("#")
	if comment != "" {
		b.WriteString(" ")
		b.WriteString(comment)
	}
	b.WriteString("\n")
}

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(indentUnit)
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + proptree.Separator + key
}
