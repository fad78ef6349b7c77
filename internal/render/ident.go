package render

import (
	"regexp"
	"strings"
)

var nonIdent = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// sanitizeID converts a container or connection id into a D2 identifier.
// Ids are prefixed so that ones starting with a digit stay valid keys and
// never collide with group names.
func sanitizeID(prefix, s string) string {
	s = nonIdent.ReplaceAllString(strings.ToLower(s), "_")
	if s == "" {
		s = "unknown"
	}
	return prefix + s
}

// quote wraps a string in double quotes for D2 labels.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
