package engine

import "errors"

var (
	// ErrStructuralConflict indicates a flat key collides with a scalar ancestor.
	ErrStructuralConflict = errors.New("structural conflict")

	// ErrRender indicates a tree could not be rendered.
	ErrRender = errors.New("render failed")

	// ErrMalformedOutput indicates rendered text did not parse back as YAML.
	ErrMalformedOutput = errors.New("malformed output")

	// ErrValidation indicates a validation failure.
	ErrValidation = errors.New("validation failed")
)
