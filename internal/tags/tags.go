// Package tags converts between the comma separated form users type and
// the tag lists stored on nodes.
package tags

import "strings"

// Parse splits a comma separated tag string. Entries are trimmed and empty
// entries are dropped, so "go, ,notes," yields [go notes].
func Parse(input string) []string {
	out := []string{}
	for _, part := range strings.Split(input, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// Join renders tags the way listings show them.
func Join(tags []string) string {
	return strings.Join(tags, ", ")
}
