package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/ldmerino/organizadorArchivos/internal/classify"
	"github.com/ldmerino/organizadorArchivos/internal/identity"
)

// workerIndex maps identity -> category -> source path. It is rebuilt from
// scratch every run and discarded afterwards.
type workerIndex map[string]map[string]string

// runOrganize regroups already-renamed, already-categorized documents into
// one folder per identity. Subfolder names determine the category; the
// identity comes from each filename, not from file content. When two files
// in the same category map to the same identity, the later one in scan
// order wins and the earlier one is silently dropped from the index.
func (e *Engine) runOrganize(ctx context.Context, r *Run) ([]ProcessResult, error) {
	if err := ensureSourceDir(r.cfg.Source); err != nil {
		return nil, err
	}

	r.status("Scanning processed folders...")
	r.progress(10)

	if r.interrupted(ctx) {
		return nil, nil
	}

	index, classified, err := e.buildWorkerIndex(r.cfg.Source)
	if err != nil {
		return nil, err
	}
	if classified == 0 {
		return nil, fmt.Errorf("no classified subfolders with PDF files found in %s", r.cfg.Source)
	}

	if err := mkdirDestination(r.cfg.Destination); err != nil {
		return nil, err
	}

	r.status(fmt.Sprintf("Organizing documents from %d folders...", classified))
	r.progress(30)

	if r.interrupted(ctx) {
		return nil, nil
	}

	totalCopies := 0
	for _, docs := range index {
		totalCopies += len(docs)
	}

	// Sorted traversal keeps output and result order deterministic.
	identities := make([]string, 0, len(index))
	for name := range index {
		identities = append(identities, name)
	}
	sort.Strings(identities)

	results := make([]ProcessResult, 0, totalCopies)
	copied := 0
	for _, worker := range identities {
		if r.interrupted(ctx) {
			return nil, nil
		}
		workerDir := filepath.Join(r.cfg.Destination, worker)
		if err := os.MkdirAll(workerDir, dirPerm); err != nil {
			results = append(results, ProcessResult{
				OriginalLabel: fmt.Sprintf("documents of %s", worker),
				Error:         fmt.Sprintf("cannot create worker folder: %v", err),
			})
			copied += len(index[worker])
			r.progress(30 + copied*70/totalCopies)
			continue
		}

		categories := make([]string, 0, len(index[worker]))
		for category := range index[worker] {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		for _, category := range categories {
			results = append(results, e.organizeCopy(worker, category, index[worker][category], workerDir))
			copied++
			r.progress(30 + copied*70/totalCopies)
		}
	}
	return results, nil
}

// buildWorkerIndex scans the immediate subfolders of source, classifies
// each by name and indexes the identities encoded in their PDF filenames.
// Unclassified subfolders are skipped entirely; that is not an error.
func (e *Engine) buildWorkerIndex(source string) (workerIndex, int, error) {
	entries, err := os.ReadDir(source)
	if err != nil {
		return nil, 0, fmt.Errorf("cannot scan source folder: %w", err)
	}

	index := make(workerIndex)
	classified := 0

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		category := classify.FolderCategory(entry.Name())
		if category == "" {
			continue
		}

		subdir := filepath.Join(source, entry.Name())
		files, err := listPDFs(subdir)
		if err != nil {
			e.logger.Warn("skipping unreadable subfolder",
				zap.String("folder", subdir), zap.Error(err))
			continue
		}
		if len(files) == 0 {
			continue
		}
		classified++

		for _, file := range files {
			worker := identity.FromFilename(file)
			if worker == "" {
				continue
			}
			if index[worker] == nil {
				index[worker] = make(map[string]string)
			}
			// Last write wins on duplicate identity+category.
			index[worker][category] = filepath.Join(subdir, file)
		}
	}
	return index, classified, nil
}

func (e *Engine) organizeCopy(worker, category, srcPath, workerDir string) ProcessResult {
	newName := fmt.Sprintf("%s_%s.pdf", worker, category)
	dstPath := filepath.Join(workerDir, newName)

	if err := copyFile(srcPath, dstPath); err != nil {
		return ProcessResult{
			OriginalLabel: filepath.Base(srcPath),
			Identity:      worker,
			Error:         fmt.Sprintf("failed to copy document: %v", err),
		}
	}

	e.logger.Debug("document organized",
		zap.String("identity", worker),
		zap.String("category", category),
		zap.String("new_name", newName))

	return ProcessResult{
		OriginalLabel:  filepath.Base(srcPath),
		Success:        true,
		NewName:        newName,
		Identity:       worker,
		UnitsProcessed: 1,
	}
}
