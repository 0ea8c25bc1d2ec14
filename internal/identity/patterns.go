package identity

import "regexp"

// PatternSet holds the ordered name patterns and the exclusion vocabulary
// used to validate candidates. It is immutable after construction so a
// single instance can be shared across runs and substituted in tests.
type PatternSet struct {
	patterns []*regexp.Regexp
	excluded map[string]struct{}
}

// Default pattern sources, ordered by specificity. Less specific patterns
// carry a higher false-positive risk, so they are tried last.
var defaultPatternSources = []string{
	// Work certificates: "Que el Sr. <name> identificado con DNI"
	`(?is)(?:Que el Sr\.|Que la Sra\.)\s+([A-ZÁÉÍÓÚÑ][a-záéíóúñ]+(?:\s+[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+){1,4})\s+(?:identificado|identificada)\s+con\s+(?:DNI|C\.?I\.?)`,

	// Termination notices: PERÚ <UPPERCASE NAME> dd/mm/yyyy
	`(?is)PERÚ\s+([A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑ\s]+)\s+\d{2}/\d{2}/\d{4}`,

	// Attendance records labelled "Apellidos y nombres:"
	`(?is)(?:Apellidos y nombres|Nombres y apellidos):\s*([A-ZÁÉÍÓÚÑ][a-záéíóúñ]+(?:\s+[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+){1,4})`,

	// Fifth-category income statements
	`(?is)(?:Trabajador|Empleado):\s*([A-ZÁÉÍÓÚÑ][a-záéíóúñ]+(?:\s+[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+){1,4})`,

	// Generic: a name immediately followed by an ID number
	`(?is)([A-ZÁÉÍÓÚÑ][a-záéíóúñ]+(?:\s+[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+){1,4})\s+(?:DNI|C\.?I\.?)\s*[:\-]?\s*\d`,
}

// Boilerplate terms that appear adjacent to names in these document
// templates. A candidate containing any of them is rejected outright.
var defaultExcludedWords = []string{
	"fecha", "baja", "alta", "certificado", "constancia",
	"trabajador", "empleado", "dni", "documento", "prestadores",
	"empleador", "ejercicio", "gravable", "retenciones", "rentas",
	"quinta", "categoría", "certifica",
}

// DefaultPatternSet returns the pattern set covering the supported labor
// document templates (work certificates, termination constancias,
// attendance constancias, fifth-category withholding statements).
func DefaultPatternSet() *PatternSet {
	return NewPatternSet(defaultPatternSources, defaultExcludedWords)
}

// NewPatternSet compiles a custom pattern set. Each pattern must capture the
// candidate name in its first submatch group. Panics on an invalid pattern,
// mirroring regexp.MustCompile, since pattern sets are built from constants.
func NewPatternSet(sources []string, excludedWords []string) *PatternSet {
	ps := &PatternSet{
		patterns: make([]*regexp.Regexp, 0, len(sources)),
		excluded: make(map[string]struct{}, len(excludedWords)),
	}
	for _, src := range sources {
		ps.patterns = append(ps.patterns, regexp.MustCompile(src))
	}
	for _, w := range excludedWords {
		ps.excluded[w] = struct{}{}
	}
	return ps
}

// IsExcluded reports whether a lowercased word belongs to the exclusion
// vocabulary.
func (ps *PatternSet) IsExcluded(word string) bool {
	_, ok := ps.excluded[word]
	return ok
}
