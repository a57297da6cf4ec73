// Package shellquote quotes values that are spliced into sh -c scripts.
package shellquote

import "strings"

// Quote returns s as one single-quoted shell word. Embedded single quotes
// are closed, escaped and reopened.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
