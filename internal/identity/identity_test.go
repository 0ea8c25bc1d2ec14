package identity

import (
	"strings"
	"sync"
	"testing"
)

func TestExtractName_EmptyAndGarbageInput(t *testing.T) {
	extractor := NewExtractor(nil)

	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"whitespace only", "   \n\t  "},
		{"digits only", "1234567890"},
		{"unrelated prose", "Lorem ipsum dolor sit amet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractor.ExtractName(tt.text); got != "" {
				t.Errorf("expected no identity, got %q", got)
			}
		})
	}
}

func TestExtractName_Templates(t *testing.T) {
	extractor := NewExtractor(nil)

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "work certificate",
			text: "Que el Sr. Juan Perez identificado con DNI 12345678 ha laborado",
			want: "Juan Perez",
		},
		{
			name: "work certificate female",
			text: "Que la Sra. Maria Lopez Garcia identificada con DNI 87654321",
			want: "Maria Lopez Garcia",
		},
		{
			name: "termination constancia uppercase block",
			text: "PERÚ\nCARLOS RAMIREZ TORRES\n15/03/2023",
			want: "Carlos Ramirez Torres",
		},
		{
			name: "attendance constancia label",
			text: "Apellidos y nombres: Maria Lopez Garcia",
			want: "Maria Lopez Garcia",
		},
		{
			name: "label order swapped",
			text: "Nombres y apellidos: Pedro Castillo Vega",
			want: "Pedro Castillo Vega",
		},
		{
			name: "fifth category statement",
			text: "Trabajador: Rosa Flores Diaz\nEjercicio 2023",
			want: "Rosa Flores Diaz",
		},
		{
			name: "generic name before DNI",
			text: "Luis Mendoza Castro DNI: 44556677",
			want: "Luis Mendoza Castro",
		},
		{
			name: "internal whitespace collapsed",
			text: "Apellidos y nombres: Ana   Maria    Quispe",
			want: "Ana Maria Quispe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractor.ExtractName(tt.text); got != tt.want {
				t.Errorf("ExtractName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractName_Validation(t *testing.T) {
	extractor := NewExtractor(nil)

	tests := []struct {
		name string
		text string
	}{
		{
			// "certificado" is boilerplate; the whole candidate is rejected,
			// not trimmed.
			name: "excluded word in candidate",
			text: "Trabajador: Certificado Laboral",
		},
		{
			name: "single word candidate",
			text: "Trabajador: Juan",
		},
		{
			name: "one-letter word in candidate",
			text: "Apellidos y nombres: Juan P",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractor.ExtractName(tt.text); got != "" {
				t.Errorf("expected rejection, got %q", got)
			}
		})
	}
}

func TestExtractName_FirstValidMatchWins(t *testing.T) {
	extractor := NewExtractor(nil)

	// Both the certificate pattern and the generic DNI pattern could match;
	// the more specific certificate phrasing must win.
	text := "Que el Sr. Juan Perez identificado con DNI 12345678\n" +
		"Otro Nombre DNI: 99887766"
	if got := extractor.ExtractName(text); got != "Juan Perez" {
		t.Errorf("ExtractName() = %q, want %q", got, "Juan Perez")
	}
}

func TestExtractName_CustomPatternSet(t *testing.T) {
	ps := NewPatternSet(
		[]string{`(?i)employee:\s*([A-Za-z ]+)`},
		[]string{"total"},
	)
	extractor := NewExtractor(ps)

	if got := extractor.ExtractName("Employee: jane doe"); got != "Jane Doe" {
		t.Errorf("ExtractName() = %q, want %q", got, "Jane Doe")
	}
	if got := extractor.ExtractName("Employee: total amount"); got != "" {
		t.Errorf("expected excluded-word rejection, got %q", got)
	}
}

func TestExtractName_LengthLimit(t *testing.T) {
	extractor := NewExtractor(nil)

	// Five words of 13 characters each: structurally a name, but 69
	// characters long.
	long := "Apellidos y nombres: " + strings.TrimSpace(
		strings.Repeat("Abcdefghijklm ", 5))
	if got := extractor.ExtractName(long); got != "" {
		t.Errorf("expected over-length rejection, got %q", got)
	}
}

func TestExtractName_ConcurrentUse(t *testing.T) {
	extractor := NewExtractor(nil)

	// One extractor serves every in-flight run, so extraction must stay
	// correct under parallel callers.
	inputs := []struct {
		text string
		want string
	}{
		{"Que el Sr. Juan Perez identificado con DNI 12345678", "Juan Perez"},
		{"Apellidos y nombres: Maria Lopez Garcia", "Maria Lopez Garcia"},
		{"PERÚ\nCARLOS RAMIREZ TORRES\n15/03/2023", "Carlos Ramirez Torres"},
		{"contenido sin datos reconocibles", ""},
	}

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				in := inputs[i%len(inputs)]
				if got := extractor.ExtractName(in.text); got != in.want {
					t.Errorf("ExtractName(%q) = %q, want %q", in.text, got, in.want)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"plain name", "Juan Perez.pdf", "Juan Perez"},
		{"three words", "Maria Lopez Garcia.pdf", "Maria Lopez Garcia"},
		{"collision suffix stripped", "Juan Perez_001.pdf", "Juan Perez"},
		{"only three-digit suffixes stripped", "Juan Perez_01.pdf", "Juan Perez_01"},
		{"single word rejected", "Factura.pdf", ""},
		{"short word rejected", "Juan P.pdf", ""},
		{"page fallback rejected", "Page_003.pdf", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromFilename(tt.filename); got != tt.want {
				t.Errorf("FromFilename(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}
