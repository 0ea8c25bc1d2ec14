package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"

	"github.com/ldmerino/organizadorArchivos/internal/extract"
	"github.com/ldmerino/organizadorArchivos/internal/naming"
)

const dirPerm = 0o750

// runSplit separates a multi-page PDF into one file per page, named after
// the identity extracted from each page's text. Pages without a
// recognizable identity are still written, under Page_NNN.pdf, and recorded
// as failed results; a page is never silently dropped.
func (e *Engine) runSplit(ctx context.Context, r *Run) ([]ProcessResult, error) {
	src := r.cfg.Source
	info, err := os.Stat(src)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("source file does not exist: %s", src)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access source file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("source path is a directory, not a file: %s", src)
	}
	if err := e.checkFileSize(info.Size()); err != nil {
		return nil, err
	}
	if err := extract.SniffPDF(src); err != nil {
		return nil, fmt.Errorf("invalid source file: %w", err)
	}

	pageCount, err := api.PageCountFile(src)
	if err != nil {
		return nil, fmt.Errorf("cannot determine page count: %w", err)
	}
	if pageCount == 0 {
		return nil, fmt.Errorf("PDF contains no pages: %s", src)
	}

	if err := os.MkdirAll(r.cfg.Destination, dirPerm); err != nil {
		return nil, fmt.Errorf("cannot create destination folder: %w", err)
	}

	r.status(fmt.Sprintf("Splitting %s (%d pages)", filepath.Base(src), pageCount))

	results := make([]ProcessResult, 0, pageCount)
	for page := 0; page < pageCount; page++ {
		if r.interrupted(ctx) {
			return nil, nil
		}
		results = append(results, e.splitPage(r, src, page))
		r.progress((page + 1) * 100 / pageCount)
	}
	return results, nil
}

func (e *Engine) splitPage(r *Run, src string, page int) ProcessResult {
	label := fmt.Sprintf("%s - page %d", filepath.Base(src), page+1)

	text := e.extractor.Text(src, page)
	name := e.names.ExtractName(text)

	if name == "" {
		// Fallback naming keeps the page; page numbers are unique within a
		// run so no collision probe is needed.
		fileName := fmt.Sprintf("Page_%03d.pdf", page+1)
		outPath := filepath.Join(r.cfg.Destination, fileName)
		if err := writeSinglePage(src, outPath, page); err != nil {
			return ProcessResult{
				OriginalLabel:  label,
				Error:          fmt.Sprintf("failed to write page: %v", err),
				UnitsProcessed: 1,
			}
		}
		return ProcessResult{
			OriginalLabel:  label,
			NewName:        fileName,
			Error:          "identity not found",
			UnitsProcessed: 1,
		}
	}

	stem := naming.Sanitize(name)
	outPath := naming.ResolveCollision(r.cfg.Destination, stem, ".pdf")
	if err := writeSinglePage(src, outPath, page); err != nil {
		return ProcessResult{
			OriginalLabel:  label,
			Identity:       name,
			Error:          fmt.Sprintf("failed to write page: %v", err),
			UnitsProcessed: 1,
		}
	}

	e.logger.Debug("page split",
		zap.String("source", src),
		zap.Int("page", page+1),
		zap.String("identity", name))

	return ProcessResult{
		OriginalLabel:  label,
		Success:        true,
		NewName:        filepath.Base(outPath),
		Identity:       name,
		UnitsProcessed: 1,
	}
}

// writeSinglePage writes a new PDF containing only the given 0-based page
// of src.
func writeSinglePage(src, dst string, page int) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.TrimFile(src, dst, []string{strconv.Itoa(page + 1)}, conf); err != nil {
		return fmt.Errorf("failed to extract page %d: %w", page+1, err)
	}
	return nil
}
