package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ldmerino/organizadorArchivos/internal/pdftest"
)

func TestLedongthucEngine_PageText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	pdftest.WriteFile(t, path,
		"Que el Sr. Juan Perez identificado con DNI 12345678",
		"Second page content")

	engine := LedongthucEngine{}

	text, err := engine.PageText(path, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Juan Perez") {
		t.Errorf("page 0 text missing expected phrase, got %q", text)
	}

	text, err = engine.PageText(path, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Second page") {
		t.Errorf("page 1 text missing expected phrase, got %q", text)
	}

	if _, err := engine.PageText(path, 2); err == nil {
		t.Errorf("expected out-of-range error for page 2")
	}
	if _, err := engine.PageText(path, -1); err == nil {
		t.Errorf("expected out-of-range error for page -1")
	}
}

func TestPDFCPUEngine_PageText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	pdftest.WriteFile(t, path, "Apellidos y nombres: Maria Lopez Garcia")

	engine := PDFCPUEngine{}

	text, err := engine.PageText(path, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Maria Lopez Garcia") {
		t.Errorf("text missing expected phrase, got %q", text)
	}

	if _, err := engine.PageText(path, 5); err == nil {
		t.Errorf("expected out-of-range error")
	}
}

// stubEngine lets fallback behavior be exercised without real files.
type stubEngine struct {
	name string
	text string
	err  error
}

func (s stubEngine) Name() string { return s.name }

func (s stubEngine) PageText(string, int) (string, error) { return s.text, s.err }

func TestExtractor_FallbackChain(t *testing.T) {
	tests := []struct {
		name    string
		engines []Engine
		want    string
	}{
		{
			name: "primary succeeds",
			engines: []Engine{
				stubEngine{name: "a", text: "primary text"},
				stubEngine{name: "b", text: "fallback text"},
			},
			want: "primary text",
		},
		{
			name: "primary fails, fallback used",
			engines: []Engine{
				stubEngine{name: "a", err: errors.New("parse failure")},
				stubEngine{name: "b", text: "fallback text"},
			},
			want: "fallback text",
		},
		{
			name: "primary returns whitespace, fallback used",
			engines: []Engine{
				stubEngine{name: "a", text: "   \n"},
				stubEngine{name: "b", text: "fallback text"},
			},
			want: "fallback text",
		},
		{
			name: "all engines fail",
			engines: []Engine{
				stubEngine{name: "a", err: errors.New("broken")},
				stubEngine{name: "b", err: errors.New("also broken")},
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := NewExtractorWithEngines(zap.NewNop(), tt.engines...)
			if got := extractor.Text("irrelevant.pdf", 0); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractor_UnreadableFileReturnsEmpty(t *testing.T) {
	extractor := NewExtractor(zap.NewNop())
	if got := extractor.Text(filepath.Join(t.TempDir(), "missing.pdf"), 0); got != "" {
		t.Errorf("expected empty text for missing file, got %q", got)
	}
}

func TestSniffPDF(t *testing.T) {
	dir := t.TempDir()

	pdfPath := filepath.Join(dir, "real.pdf")
	pdftest.WriteFile(t, pdfPath, "some content")
	if err := SniffPDF(pdfPath); err != nil {
		t.Errorf("expected real PDF to pass sniffing: %v", err)
	}

	fakePath := filepath.Join(dir, "fake.pdf")
	if err := os.WriteFile(fakePath, []byte("just text with a pdf extension"), 0o600); err != nil {
		t.Fatalf("failed to write fake file: %v", err)
	}
	if err := SniffPDF(fakePath); err == nil {
		t.Errorf("expected mis-named text file to fail sniffing")
	}
}

func TestDecodeContentStreamText(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   string
	}{
		{
			name:   "single Tj",
			stream: "BT /F1 12 Tf (Hola Mundo) Tj ET",
			want:   "Hola Mundo",
		},
		{
			name:   "TJ array",
			stream: "BT [(Juan) -250 ( Perez)] TJ ET",
			want:   "Juan Perez",
		},
		{
			name:   "escaped parentheses",
			stream: `BT (balance \(neto\)) Tj ET`,
			want:   "balance (neto)",
		},
		{
			name:   "no text operators",
			stream: "q 1 0 0 1 0 0 cm Q",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeContentStreamText(strings.NewReader(tt.stream))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.TrimSpace(got) != tt.want {
				t.Errorf("decoded %q, want %q", got, tt.want)
			}
		})
	}
}
