// Package docpath handles document identity: the slash-separated relative
// path every document is keyed by, its format, glob filtering and target
// path computation.
package docpath

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"
)

// MatchAll is the pattern used when no file pattern is configured.
const MatchAll = "**"

// Format is the document format inferred from a path.
type Format int

const (
	FormatUnknown Format = iota
	FormatProperties
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatProperties:
		return "properties"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Detect returns the format of the document at p based on its extension.
func Detect(p string) Format {
	switch strings.ToLower(path.Ext(ToSlash(p))) {
	case ".properties":
		return FormatProperties
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// ToSlash converts p to the canonical slash-separated form.
func ToSlash(p string) string {
	return strings.ReplaceAll(filepath.ToSlash(p), `\`, "/")
}

// NormalizePattern strips a single leading "./", ".\", "/" or "\" from a
// glob. An empty pattern matches everything.
func NormalizePattern(pattern string) string {
	switch {
	case pattern == "":
		return MatchAll
	case strings.HasPrefix(pattern, "./"), strings.HasPrefix(pattern, `.\`):
		return pattern[2:]
	case strings.HasPrefix(pattern, "/"), strings.HasPrefix(pattern, `\`):
		return pattern[1:]
	}
	return pattern
}

// Match reports whether the document path p matches the glob pattern.
// The pattern is normalized first.
func Match(pattern, p string) (bool, error) {
	pattern = NormalizePattern(pattern)
	if pattern == MatchAll {
		return true, nil
	}
	ok, err := doublestar.Match(pattern, ToSlash(p))
	if err != nil {
		return false, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}
	return ok, nil
}

// ValidatePattern checks that pattern is a well-formed glob. doublestar
// stops at the first mismatching component, so the syntax check is done
// with path.Match, which always scans the whole pattern.
func ValidatePattern(pattern string) error {
	pattern = NormalizePattern(pattern)
	if _, err := path.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}
	return nil
}

// WithExtension replaces everything after the last "." of the file name of
// p with ext. A name without a dot gets ext appended. ext may be given with
// or without its leading dot.
func WithExtension(p, ext string) string {
	p = ToSlash(p)
	dir, name := path.Split(p)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[:i]
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return dir + name + ext
}
