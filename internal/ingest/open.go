package ingest

import (
	"fmt"

	"github.com/danieljhkim/propyaml/internal/docpath"
	"github.com/danieljhkim/propyaml/internal/proptree"
)

// Open returns the producer for the document at path, chosen by its format.
func Open(path string, data []byte, sorted bool) (proptree.Producer, error) {
	switch docpath.Detect(path) {
	case docpath.FormatProperties:
		return NewPropertiesProducer(data)
	case docpath.FormatYAML:
		return NewYAMLProducer(data, sorted)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
