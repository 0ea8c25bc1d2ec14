package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ldmerino/organizadorArchivos/internal/batch"
)

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resultados.xlsx")
	results := []batch.ProcessResult{
		{OriginalLabel: "scan_001.pdf", Success: true, NewName: "Juan Perez.pdf", Identity: "Juan Perez", UnitsProcessed: 1},
		{OriginalLabel: "scan_002.pdf", Error: "identity not found", UnitsProcessed: 1},
	}

	require.NoError(t, WriteXLSX(path, results))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{sheet}, f.GetSheetList())

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Equal(t, headers, rows[0])
	require.Equal(t, []string{"scan_001.pdf", "OK", "Juan Perez.pdf", "Juan Perez", "", "1"}, rows[1])
	require.Equal(t, "FAILED", rows[2][1])
	require.Equal(t, "identity not found", rows[2][4])

	// Summary block sits two rows below the table.
	require.Equal(t, "Total processed", rows[4][0])
	require.Equal(t, "2", rows[4][1])
	require.Equal(t, "Unique identities", rows[8][0])
	require.Equal(t, "1", rows[8][1])
}

func TestWriteXLSX_EmptyResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vacio.xlsx")
	require.NoError(t, WriteXLSX(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Equal(t, headers, rows[0])
	require.Equal(t, "Total processed", rows[2][0])
}
