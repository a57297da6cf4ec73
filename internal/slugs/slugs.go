// Package slugs validates plugin slugs and derives store file names from them.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// Valid reports whether s can be used as a plugin slug: lower case letters
// and digits, optionally separated by single '-' or '_'.
func Valid(s string) bool {
	return s != "" && goslug.IsSlug(s)
}

// Suggest returns a valid slug derived from s, for error hints.
func Suggest(s string) string {
	suggested := goslug.Make(s)
	if suggested == "" {
		suggested = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
	}
	return suggested
}

// StoreFile returns the store file name for slug, e.g. "url_patterns.yaml".
func StoreFile(slug, ext string) string {
	return slug + "." + strings.TrimPrefix(ext, ".")
}
