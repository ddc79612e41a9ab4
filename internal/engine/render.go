package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/danieljhkim/propyaml/internal/ctxlog"
	"github.com/danieljhkim/propyaml/internal/docpath"
	"github.com/danieljhkim/propyaml/internal/ingest"
	"github.com/danieljhkim/propyaml/internal/proptree"
	"github.com/danieljhkim/propyaml/internal/render"
)

// RenderDocument converts the document at req.Path in memory.
func (e *Engine) RenderDocument(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	data, err := e.fs.ReadFile(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", req.Path, err)
	}

	tree, err := buildTree(req.Path, data, req.SortKeys)
	if err != nil {
		return nil, err
	}

	content, err := renderTree(req.Path, tree)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("rendered document", "path", req.Path, "keys", tree.Len())

	return &RenderResult{
		Path:    req.Path,
		Format:  docpath.Detect(req.Path).String(),
		Content: content,
		Flat:    proptree.Flatten(tree),
	}, nil
}

// buildTree parses data as the document name and builds its tree.
func buildTree(name string, data []byte, sorted bool) (*proptree.Tree, error) {
	producer, err := ingest.Open(name, data, sorted)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	tree, err := proptree.Build(producer, sorted)
	if errors.Is(err, proptree.ErrStructuralConflict) {
		return nil, fmt.Errorf("%w in %s: %w", ErrStructuralConflict, name, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build tree for %s: %w", name, err)
	}
	return tree, nil
}

// renderTree renders tree and reads the result back as YAML. The run fails
// unless the document parses and yields exactly the keys and values of tree.
func renderTree(name string, tree *proptree.Tree) (string, error) {
	content, err := render.Render(tree)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrRender, name, err)
	}

	producer, err := ingest.NewYAMLProducer([]byte(content), tree.Sorted())
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrMalformedOutput, name, err)
	}
	reread, err := proptree.Build(producer, tree.Sorted())
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrMalformedOutput, name, err)
	}
	if diff := flatDiff(proptree.Flatten(tree), proptree.Flatten(reread)); diff != "" {
		return "", fmt.Errorf("%w: %s: %s", ErrMalformedOutput, name, diff)
	}
	return content, nil
}

// flatDiff describes the first difference between want and got, or returns
// "" when they are equal.
func flatDiff(want, got []proptree.FlatEntry) string {
	for i := 0; i < len(want) && i < len(got); i++ {
		switch {
		case want[i].Key != got[i].Key:
			return fmt.Sprintf("key %q reads back as %q", want[i].Key, got[i].Key)
		case want[i].Value != got[i].Value:
			return fmt.Sprintf("value of %q reads back as %q instead of %q", want[i].Key, got[i].Value, want[i].Value)
		}
	}
	switch {
	case len(want) > len(got):
		return fmt.Sprintf("key %q is missing when read back", want[len(got)].Key)
	case len(got) > len(want):
		return fmt.Sprintf("unexpected key %q when read back", got[len(want)].Key)
	}
	return ""
}
