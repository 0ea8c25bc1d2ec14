// Package extract obtains plain text for individual pages of a PDF file.
//
// Two engines are layered: ledongthuc/pdf gives the best text fidelity on
// well-formed documents, while the pdfcpu engine decodes page content
// streams directly and copes with files the primary parser rejects. The
// Extractor tries them in order and degrades to an empty string rather than
// failing, so one unreadable page never aborts a batch.
package extract

import (
	"fmt"
	"os"

	ledongthuc "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Engine extracts the plain text of a single page. Page indexes are
// 0-based; an index past the last page is an error, not empty text.
type Engine interface {
	Name() string
	PageText(path string, pageIndex int) (string, error)
}

// LedongthucEngine is the primary engine, backed by ledongthuc/pdf.
type LedongthucEngine struct{}

// Name identifies the engine in logs.
func (LedongthucEngine) Name() string { return "ledongthuc" }

// PageText extracts the plain text of one page.
func (LedongthucEngine) PageText(path string, pageIndex int) (string, error) {
	f, reader, err := ledongthuc.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	if pageIndex < 0 || pageIndex >= reader.NumPage() {
		return "", fmt.Errorf("page index %d out of range (document has %d pages)",
			pageIndex, reader.NumPage())
	}

	page := reader.Page(pageIndex + 1)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d has no content", pageIndex)
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract page text: %w", err)
	}
	return text, nil
}

// PDFCPUEngine is the fallback engine. It reads the page content stream via
// pdfcpu with relaxed validation and decodes the text-showing operators
// itself. Fidelity is lower than the primary engine (no font decoding), but
// it tolerates files the primary parser cannot open.
type PDFCPUEngine struct{}

// Name identifies the engine in logs.
func (PDFCPUEngine) Name() string { return "pdfcpu" }

// PageText extracts the plain text of one page from its content stream.
func (PDFCPUEngine) PageText(path string, pageIndex int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return "", fmt.Errorf("failed to ensure page count: %w", err)
	}

	if pageIndex < 0 || pageIndex >= ctx.PageCount {
		return "", fmt.Errorf("page index %d out of range (document has %d pages)",
			pageIndex, ctx.PageCount)
	}

	content, err := pdfcpu.ExtractPageContent(ctx, pageIndex+1)
	if err != nil {
		return "", fmt.Errorf("failed to extract page content: %w", err)
	}

	return decodeContentStreamText(content)
}
