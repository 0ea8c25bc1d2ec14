package identity

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const maxNameLength = 50

// Extractor turns raw page text into a canonical person name using an
// ordered, validated pattern pipeline. It is safe for concurrent use.
type Extractor struct {
	patterns *PatternSet
}

// NewExtractor creates an extractor using the given pattern set. A nil
// pattern set selects the default labor-document patterns.
func NewExtractor(patterns *PatternSet) *Extractor {
	if patterns == nil {
		patterns = DefaultPatternSet()
	}
	return &Extractor{patterns: patterns}
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExtractName returns the first structurally valid name produced by the
// highest-priority matching pattern, in Title Case. It returns "" when no
// pattern yields a valid candidate; a low-confidence guess is never
// preferred over no answer, because a wrong identity misfiles a document
// silently while a missing one just leaves it unrenamed.
func (e *Extractor) ExtractName(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	for _, pattern := range e.patterns.patterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			name := whitespaceRun.ReplaceAllString(match[1], " ")
			name = strings.TrimSpace(strings.ReplaceAll(name, ",", ""))

			if e.isValidName(name) {
				// A cases.Caser carries mutable transform state, so a
				// fresh one is built here instead of being shared across
				// concurrent runs.
				return cases.Title(language.Spanish).String(name)
			}
		}
	}
	return ""
}

// isValidName applies the structural shape check plus the exclusion
// vocabulary: at most 50 characters, at least two words of two or more
// characters each, and no boilerplate word anywhere in the candidate.
func (e *Extractor) isValidName(name string) bool {
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return false
	}

	words := strings.Fields(strings.ToLower(name))
	if len(words) < 2 {
		return false
	}
	for _, word := range words {
		if utf8.RuneCountInString(word) < 2 {
			return false
		}
		if e.patterns.IsExcluded(word) {
			return false
		}
	}
	return true
}
