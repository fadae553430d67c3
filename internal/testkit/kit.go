// Package testkit builds workbook and table fixtures for tests.
package testkit

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"maestro/domain/core"
	"maestro/domain/table"
)

// Source describes a Valo/Base source workbook fixture. HeaderA and
// HeaderB are the two physical header rows of the Valo sheet (rows 2 and
// 3); Base, when non-nil, becomes a Base sheet with its first row as
// header.
type Source struct {
	HeaderA []string
	HeaderB []string
	Rows    [][]string
	Base    [][]string
}

// WriteSource renders the fixture into dir and returns the workbook path.
func WriteSource(t *testing.T, dir string, src Source) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Valo"))
	require.NoError(t, setRow(f, "Valo", 1, []string{"Cartera endosada"}))
	require.NoError(t, setRow(f, "Valo", 2, src.HeaderA))
	require.NoError(t, setRow(f, "Valo", 3, src.HeaderB))
	for i, row := range src.Rows {
		require.NoError(t, setRow(f, "Valo", 4+i, row))
	}

	if src.Base != nil {
		_, err := f.NewSheet("Base")
		require.NoError(t, err)
		for i, row := range src.Base {
			require.NoError(t, setRow(f, "Base", 1+i, row))
		}
	}

	path := filepath.Join(dir, "fuente.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	if len(values) == 0 {
		return nil
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	name, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, name, &cells)
}

// NewRaw builds an in-memory source table from string rows.
func NewRaw(headers []string, rows ...[]string) *table.Raw {
	cells := make([][]core.Cell, len(rows))
	for i, r := range rows {
		row := make([]core.Cell, len(r))
		for j, v := range r {
			row[j] = core.Cell(v)
		}
		cells[i] = row
	}
	return table.NewRaw(headers, cells)
}

// MasterRow builds a schema-ordered master row from column/value pairs.
func MasterRow(vals map[string]string) table.Row {
	r := table.NewRow()
	for col, v := range vals {
		r.Set(col, core.Cell(v))
	}
	return r
}
