package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/magiconair/properties"

	"github.com/danieljhkim/propyaml/internal/proptree"
)

// PropertiesProducer yields the entries of a flat .properties document in
// document order, one per occurrence. Keys are split on "." and each entry
// carries the comments that directly preceded that occurrence, so a key
// assigned twice ends up with the last value and the last comments.
//
// Values are the raw text after the separator: escape sequences are kept as
// written and ${...} references are not expanded. Line continuations are
// joined with the leading whitespace of the continued line removed.
type PropertiesProducer struct {
	entries []proptree.Entry
	pos     int
}

// NewPropertiesProducer parses data as a UTF-8 properties document.
func NewPropertiesProducer(data []byte) (*PropertiesProducer, error) {
	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	if _, err := loader.LoadBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse properties: %w", err)
	}

	p := &PropertiesProducer{}
	var pending []string
	for _, line := range logicalLines(string(data)) {
		trimmed := strings.TrimLeft(line.joined, whitespace)
		switch {
		case trimmed == "":
			continue
		case trimmed[0] == '#' || trimmed[0] == '!':
			pending = append(pending, strings.TrimSpace(trimmed[1:]))
			continue
		}

		// The key is decoded by the properties loader so escaped separators
		// and unicode escapes resolve exactly as they do for the whole file.
		keyProps, err := loader.LoadBytes([]byte(line.physical))
		if err != nil {
			return nil, fmt.Errorf("failed to parse properties line %d: %w", line.number, err)
		}
		keys := keyProps.Keys()
		if len(keys) != 1 {
			return nil, fmt.Errorf("failed to parse properties line %d: expected one key, got %d", line.number, len(keys))
		}

		path, err := proptree.ParsePath(keys[0])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", keys[0], err)
		}
		p.entries = append(p.entries, proptree.Entry{
			Path:     path,
			Value:    proptree.Scalar(rawValue(trimmed)),
			Comments: pending,
		})
		pending = nil
	}
	return p, nil
}

// Next returns the next entry or io.EOF.
func (p *PropertiesProducer) Next() (proptree.Entry, error) {
	if p.pos >= len(p.entries) {
		return proptree.Entry{}, io.EOF
	}
	e := p.entries[p.pos]
	p.pos++
	return e, nil
}

const whitespace = " \t\f"

type logicalLine struct {
	number   int    // first physical line, 1-based
	physical string // physical lines as written, continuations included
	joined   string // continuations removed
}

// logicalLines splits text into logical lines. A line ending in an odd
// number of backslashes continues on the next one; comment lines never
// continue.
func logicalLines(text string) []logicalLine {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	physical := strings.Split(text, "\n")

	var out []logicalLine
	for i := 0; i < len(physical); i++ {
		line := logicalLine{number: i + 1, physical: physical[i], joined: physical[i]}

		trimmed := strings.TrimLeft(line.joined, whitespace)
		isComment := trimmed != "" && (trimmed[0] == '#' || trimmed[0] == '!')
		for !isComment && continues(line.joined) && i+1 < len(physical) {
			i++
			line.physical += "\n" + physical[i]
			line.joined = line.joined[:len(line.joined)-1] + strings.TrimLeft(physical[i], whitespace)
		}
		if !isComment && continues(line.joined) {
			// continuation at end of input
			line.joined = line.joined[:len(line.joined)-1]
		}
		out = append(out, line)
	}
	return out
}

func continues(line string) bool {
	n := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// rawValue returns the text after the key and its separator. line starts
// with the key.
func rawValue(line string) string {
	i := 0
	for i < len(line) {
		c := line[i]
		if c == '\\' {
			i += 2
			continue
		}
		if c == '=' || c == ':' || strings.IndexByte(whitespace, c) >= 0 {
			break
		}
		i++
	}
	if i >= len(line) {
		return ""
	}

	rest := strings.TrimLeft(line[i:], whitespace)
	if rest != "" && (rest[0] == '=' || rest[0] == ':') {
		rest = strings.TrimLeft(rest[1:], whitespace)
	}
	return rest
}
