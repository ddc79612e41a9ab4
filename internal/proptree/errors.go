package proptree

import (
	"errors"
	"fmt"
)

var (
	// ErrStructuralConflict indicates a key is used both as a value and as a
	// namespace for other keys.
	ErrStructuralConflict = errors.New("structural conflict")

	// ErrInvalidPath indicates a key that cannot be split into segments.
	ErrInvalidPath = errors.New("invalid property path")
)

// ConflictError reports the property that could not be inserted and the
// prefix it collided with. It matches ErrStructuralConflict with errors.Is;
// the message itself does not repeat the sentinel.
type ConflictError struct {
	// Path is the full path being inserted.
	Path Path

	// Prefix is the already-present node the insertion ran into.
	Prefix Path

	// PrefixIsLeaf is true when Prefix holds a value, false when it holds
	// nested properties.
	PrefixIsLeaf bool
}

func (e *ConflictError) Error() string {
	if e.PrefixIsLeaf {
		return fmt.Sprintf("cannot create property %q because %q is not a map",
			e.Path.String(), e.Prefix.String())
	}
	return fmt.Sprintf("cannot set property %q because %q already holds nested properties",
		e.Path.String(), e.Prefix.String())
}

func (e *ConflictError) Unwrap() error {
	return ErrStructuralConflict
}
