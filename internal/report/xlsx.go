// Package report renders a batch result list as an XLSX workbook, the file
// counterpart of the results table a caller would present on screen.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ldmerino/organizadorArchivos/internal/batch"
)

const sheet = "Resultados"

var headers = []string{
	"Original", "Status", "New Name", "Identity", "Error", "Units",
}

// WriteXLSX writes one row per ProcessResult plus a summary block to path.
func WriteXLSX(path string, results []batch.ProcessResult) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("cannot create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("cannot drop default sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("cannot write header: %w", err)
		}
	}

	for i, r := range results {
		status := "OK"
		if !r.Success {
			status = "FAILED"
		}
		values := []interface{}{
			r.OriginalLabel, status, r.NewName, r.Identity, r.Error, r.UnitsProcessed,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("cannot write result row: %w", err)
			}
		}
	}

	if err := writeSummary(f, len(results)+3, batch.Summarize(results)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("cannot save report: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, startRow int, s batch.Summary) error {
	lines := []struct {
		label string
		value interface{}
	}{
		{"Total processed", s.Total},
		{"Successful", s.Successful},
		{"Failed", s.Failed},
		{"Success rate (%)", s.SuccessRate},
		{"Unique identities", s.UniqueIdentities},
		{"Total units", s.TotalUnits},
	}
	for i, line := range lines {
		labelCell, _ := excelize.CoordinatesToCellName(1, startRow+i)
		valueCell, _ := excelize.CoordinatesToCellName(2, startRow+i)
		if err := f.SetCellValue(sheet, labelCell, line.label); err != nil {
			return fmt.Errorf("cannot write summary: %w", err)
		}
		if err := f.SetCellValue(sheet, valueCell, line.value); err != nil {
			return fmt.Errorf("cannot write summary: %w", err)
		}
	}
	return nil
}
