package identity

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// collisionSuffix matches the _NNN counter appended by collision resolution.
var collisionSuffix = regexp.MustCompile(`_\d{3}$`)

// FromFilename recovers the identity encoded in an already-renamed file,
// e.g. "Juan Perez Garcia_001.pdf" -> "Juan Perez Garcia". The exclusion
// vocabulary is not consulted: boilerplate never survives into cleaned
// filenames, only the word-count and word-length shape is re-checked.
// Returns "" when the stem does not look like a person name.
func FromFilename(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	stem = collisionSuffix.ReplaceAllString(stem, "")

	words := strings.Fields(stem)
	if len(words) < 2 {
		return ""
	}
	for _, word := range words {
		if utf8.RuneCountInString(word) < 2 {
			return ""
		}
	}
	return stem
}
