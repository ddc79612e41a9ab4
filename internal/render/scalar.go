package render

import "strings"

// NeedsQuotes reports whether value must be quoted to survive a YAML parse.
func NeedsQuotes(value string) bool {
	return value == "" ||
		strings.ContainsAny(value, "\"':\n#") ||
		strings.HasPrefix(value, " ") ||
		strings.HasSuffix(value, " ")
}

// FormatScalar returns value as it appears after "key:" or "-", including
// the single separating space.
func FormatScalar(value string) string {
	if !NeedsQuotes(value) {
		return " " + value
	}
	if strings.Contains(value, `"`) {
		return " '" + value + "'"
	}
	return ` "` + value + `"`
}

func writeScalar(b *strings.Builder, value string) {
	b.WriteString(FormatScalar(value))
	b.WriteString("\n")
}
