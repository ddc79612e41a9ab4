package proptree

import (
	"fmt"
	"strings"
)

// Separator joins the segments of a flat property key.
const Separator = "."

// Path is an ordered, non-empty sequence of key segments.
type Path []string

// ParsePath splits a dotted key into a Path. Empty segments are rejected.
func ParsePath(key string) (Path, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidPath)
	}
	segments := strings.Split(key, Separator)
	if err := Path(segments).Validate(); err != nil {
		return nil, err
	}
	return segments, nil
}

// Validate checks that the path has at least one segment and no empty ones.
func (p Path) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: no segments", ErrInvalidPath)
	}
	for i, segment := range p {
		if segment == "" {
			return fmt.Errorf("%w: segment %d of %q is empty", ErrInvalidPath, i, p.String())
		}
	}
	return nil
}

// String returns the dotted form of the path.
func (p Path) String() string {
	return strings.Join(p, Separator)
}

// Append returns a new path with segment added, leaving p untouched.
func (p Path) Append(segment string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, segment)
}
