package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/ldmerino/organizadorArchivos/internal/classify"
	"github.com/ldmerino/organizadorArchivos/internal/identity"
	"github.com/ldmerino/organizadorArchivos/internal/naming"
)

// Preview caps per mode.
const (
	previewMaxPages        = 5
	previewMaxFiles        = 10
	previewMaxPerSubfolder = 3
)

// PreviewSample describes what one unit of work would produce.
type PreviewSample struct {
	Label    string `json:"label"`
	Identity string `json:"identity,omitempty"`
	NewName  string `json:"new_name,omitempty"`
	Category string `json:"category,omitempty"`
}

// Preview is a bounded, read-only sample of a prospective run.
type Preview struct {
	Mode       Mode            `json:"mode"`
	TotalUnits int             `json:"total_units"`
	Samples    []PreviewSample `json:"samples"`
	Truncated  bool            `json:"truncated"`
}

// Preview reports what extraction would produce for the given
// configuration without touching the filesystem beyond reads. Sample sizes
// are capped: 5 pages for split, 10 files for rename, 3 files per
// subfolder for organize.
func (e *Engine) Preview(cfg Config) (*Preview, error) {
	switch cfg.Mode {
	case ModeSplit:
		return e.previewSplit(cfg)
	case ModeRename:
		return e.previewRename(cfg)
	case ModeOrganize:
		return e.previewOrganize(cfg)
	default:
		return nil, fmt.Errorf("unknown mode: %q", cfg.Mode)
	}
}

func (e *Engine) previewSplit(cfg Config) (*Preview, error) {
	pageCount, err := api.PageCountFile(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("cannot read PDF: %w", err)
	}

	sample := pageCount
	if sample > previewMaxPages {
		sample = previewMaxPages
	}

	p := &Preview{Mode: ModeSplit, TotalUnits: pageCount, Truncated: sample < pageCount}
	for page := 0; page < sample; page++ {
		text := e.extractor.Text(cfg.Source, page)
		name := e.names.ExtractName(text)
		s := PreviewSample{Label: fmt.Sprintf("page %d", page+1), Identity: name}
		if name != "" {
			s.NewName = naming.Sanitize(name) + ".pdf"
		} else {
			s.NewName = fmt.Sprintf("Page_%03d.pdf", page+1)
		}
		p.Samples = append(p.Samples, s)
	}
	return p, nil
}

func (e *Engine) previewRename(cfg Config) (*Preview, error) {
	if err := ensureSourceDir(cfg.Source); err != nil {
		return nil, err
	}
	files, err := listPDFs(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("cannot scan source folder: %w", err)
	}

	sample := len(files)
	if sample > previewMaxFiles {
		sample = previewMaxFiles
	}

	p := &Preview{Mode: ModeRename, TotalUnits: len(files), Truncated: sample < len(files)}
	for _, file := range files[:sample] {
		text := e.extractor.Text(filepath.Join(cfg.Source, file), 0)
		name := e.names.ExtractName(text)
		s := PreviewSample{Label: file, Identity: name}
		if name != "" {
			s.NewName = naming.Sanitize(name) + filepath.Ext(file)
		}
		p.Samples = append(p.Samples, s)
	}
	return p, nil
}

func (e *Engine) previewOrganize(cfg Config) (*Preview, error) {
	if err := ensureSourceDir(cfg.Source); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("cannot scan source folder: %w", err)
	}

	p := &Preview{Mode: ModeOrganize}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		category := classify.FolderCategory(entry.Name())
		if category == "" {
			continue
		}
		files, err := listPDFs(filepath.Join(cfg.Source, entry.Name()))
		if err != nil {
			continue
		}
		p.TotalUnits += len(files)

		sample := len(files)
		if sample > previewMaxPerSubfolder {
			sample = previewMaxPerSubfolder
			p.Truncated = true
		}
		for _, file := range files[:sample] {
			worker := identity.FromFilename(file)
			s := PreviewSample{
				Label:    filepath.Join(entry.Name(), file),
				Identity: worker,
				Category: category,
			}
			if worker != "" {
				s.NewName = fmt.Sprintf("%s_%s.pdf", worker, category)
			}
			p.Samples = append(p.Samples, s)
		}
	}
	return p, nil
}
