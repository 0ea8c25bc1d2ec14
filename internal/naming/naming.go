// Package naming produces filesystem-safe, collision-free output names for
// extracted identities.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// PlaceholderStem is used when sanitization leaves nothing usable.
const PlaceholderStem = "archivo_sin_nombre"

const maxStemLength = 100

var (
	illegalChars  = `<>:"/\|?*`
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Sanitize converts a candidate name into a filename stem: filesystem-illegal
// characters become underscores, whitespace runs collapse to single spaces,
// the result is trimmed and truncated to 100 characters.
func Sanitize(raw string) string {
	stem := strings.Map(func(r rune) rune {
		if strings.ContainsRune(illegalChars, r) {
			return '_'
		}
		return r
	}, raw)

	stem = whitespaceRun.ReplaceAllString(stem, " ")
	stem = strings.TrimSpace(stem)

	if runes := []rune(stem); len(runes) > maxStemLength {
		stem = string(runes[:maxStemLength])
	}
	if stem == "" {
		return PlaceholderStem
	}
	return stem
}

// ResolveCollision returns the first free path for stem+ext inside dir.
// When "stem.ext" already exists it probes "stem_001.ext", "stem_002.ext",
// and so on. The counter only increases within a run, so re-running against
// a partially populated destination stays collision-free; nothing existing
// is ever overwritten.
func ResolveCollision(dir, stem, ext string) string {
	path := filepath.Join(dir, stem+ext)
	for counter := 1; pathExists(path); counter++ {
		path = filepath.Join(dir, fmt.Sprintf("%s_%03d%s", stem, counter, ext))
	}
	return path
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
