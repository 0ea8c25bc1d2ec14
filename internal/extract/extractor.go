package extract

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// Extractor runs the configured engines in order until one yields usable
// text. It opens and closes the source file on every call; batch callers
// invoke it once per page, and correctness does not depend on caching.
type Extractor struct {
	engines []Engine
	logger  *zap.Logger
}

// NewExtractor creates an extractor with the default engine order:
// ledongthuc first, pdfcpu content-stream decoding as fallback.
func NewExtractor(logger *zap.Logger) *Extractor {
	return NewExtractorWithEngines(logger, LedongthucEngine{}, PDFCPUEngine{})
}

// NewExtractorWithEngines creates an extractor with a custom engine chain,
// tried in the given order.
func NewExtractorWithEngines(logger *zap.Logger, engines ...Engine) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{engines: engines, logger: logger}
}

// Text returns the plain text of the given 0-based page, or "" when no
// engine can produce non-whitespace text. Engine failures are logged and
// swallowed; the method never returns an error so one unreadable page
// degrades gracefully instead of aborting a whole batch.
func (e *Extractor) Text(path string, pageIndex int) string {
	for _, engine := range e.engines {
		text, err := engine.PageText(path, pageIndex)
		if err != nil {
			e.logger.Debug("page text extraction failed",
				zap.String("engine", engine.Name()),
				zap.String("path", path),
				zap.Int("page", pageIndex),
				zap.Error(err))
			continue
		}
		if strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}

// SniffPDF verifies that the file content actually is a PDF, regardless of
// its extension. It guards batch modes against mis-named files that would
// otherwise waste both engines' parsers.
func SniffPDF(path string) error {
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("cannot read file: %w", err)
	}
	if !mime.Is("application/pdf") {
		return fmt.Errorf("not a PDF file (detected %s)", mime.String())
	}
	return nil
}
