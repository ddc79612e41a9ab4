package ingest

import (
	"regexp"
	"strings"
)

var commentPattern = regexp.MustCompile(`(?m)#(.*)$`)

// ExtractComments returns one trimmed comment per "#" marker found in
// prefix, in order. Text before the marker on a line is ignored.
func ExtractComments(prefix string) []string {
	if strings.TrimSpace(prefix) == "" {
		return nil
	}
	matches := commentPattern.FindAllStringSubmatch(prefix, -1)
	comments := make([]string, 0, len(matches))
	for _, m := range matches {
		comments = append(comments, strings.TrimSpace(m[1]))
	}
	return comments
}
