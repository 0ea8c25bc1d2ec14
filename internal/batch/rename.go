package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ldmerino/organizadorArchivos/internal/extract"
	"github.com/ldmerino/organizadorArchivos/internal/naming"
)

// runRename copies every *.pdf in the source folder (non-recursive) to the
// destination under an identity-based name. Sources are assumed to be
// single-document files, so only page 0 is read. Originals stay untouched:
// copying instead of moving keeps reprocessing safe when an extracted
// identity turns out to be wrong.
func (e *Engine) runRename(ctx context.Context, r *Run) ([]ProcessResult, error) {
	if err := ensureSourceDir(r.cfg.Source); err != nil {
		return nil, err
	}

	files, err := listPDFs(r.cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("cannot scan source folder: %w", err)
	}
	if len(files) == 0 {
		r.status("No PDF files found")
		return []ProcessResult{}, nil
	}

	if err := mkdirDestination(r.cfg.Destination); err != nil {
		return nil, err
	}

	results := make([]ProcessResult, 0, len(files))
	for i, name := range files {
		if r.interrupted(ctx) {
			return nil, nil
		}
		r.status(fmt.Sprintf("Processing: %s", name))
		results = append(results, e.renameFile(r, name))
		r.progress((i + 1) * 100 / len(files))
	}
	return results, nil
}

func (e *Engine) renameFile(r *Run, fileName string) ProcessResult {
	srcPath := filepath.Join(r.cfg.Source, fileName)

	info, err := os.Stat(srcPath)
	if err != nil {
		return ProcessResult{
			OriginalLabel: fileName,
			Error:         fmt.Sprintf("cannot stat file: %v", err),
		}
	}
	if err := e.checkFileSize(info.Size()); err != nil {
		return ProcessResult{
			OriginalLabel: fileName,
			Error:         err.Error(),
		}
	}

	if err := extract.SniffPDF(srcPath); err != nil {
		return ProcessResult{
			OriginalLabel: fileName,
			Error:         fmt.Sprintf("invalid PDF: %v", err),
		}
	}

	text := e.extractor.Text(srcPath, 0)
	if strings.TrimSpace(text) == "" {
		return ProcessResult{
			OriginalLabel: fileName,
			Error:         "no extractable text",
		}
	}

	name := e.names.ExtractName(text)
	if name == "" {
		return ProcessResult{
			OriginalLabel: fileName,
			Error:         "identity not found",
		}
	}

	stem := naming.Sanitize(name)
	ext := filepath.Ext(fileName)
	dstPath := naming.ResolveCollision(r.cfg.Destination, stem, ext)

	if err := copyFile(srcPath, dstPath); err != nil {
		return ProcessResult{
			OriginalLabel: fileName,
			Identity:      name,
			Error:         fmt.Sprintf("failed to copy file: %v", err),
		}
	}

	e.logger.Debug("file renamed",
		zap.String("original", fileName),
		zap.String("new_name", filepath.Base(dstPath)),
		zap.String("identity", name))

	return ProcessResult{
		OriginalLabel:  fileName,
		Success:        true,
		NewName:        filepath.Base(dstPath),
		Identity:       name,
		UnitsProcessed: 1,
	}
}

func mkdirDestination(dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("cannot create destination folder: %w", err)
	}
	return nil
}
