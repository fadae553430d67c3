package excel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"maestro/domain/core"
	"maestro/internal/errors"
	"maestro/internal/testkit"
)

func TestSourceReaderTwoRowHeader(t *testing.T) {
	path := testkit.WriteSource(t, t.TempDir(), testkit.Source{
		HeaderA: []string{"Cliente", "Rut", "Tasa"},
		HeaderB: []string{"Nombres", "", "Tasa Venta"},
		Rows: [][]string{
			{"Ana Soto", "12.345.678-9", "6.2"},
			{"Luis Rojas", "11.111.111-1", "5.9"},
		},
	})

	wb, err := NewSourceReader(path, true).Read()
	require.NoError(t, err)

	assert.Equal(t, ValoSheet, wb.SheetUsed)
	assert.Equal(t, []string{"Nombres", "Rut", "Tasa Venta"}, wb.Valo.Headers)
	require.Equal(t, 2, wb.Valo.NumRows())
	assert.Equal(t, core.Cell("12.345.678-9"), wb.Valo.Cell(0, 1))
	assert.Nil(t, wb.Base)
}

func TestSourceReaderTwoRowDisabled(t *testing.T) {
	path := testkit.WriteSource(t, t.TempDir(), testkit.Source{
		HeaderA: []string{"Cliente", "Rut"},
		HeaderB: []string{"Nombres", ""},
		Rows:    [][]string{{"Ana", "1-9"}},
	})

	wb, err := NewSourceReader(path, false).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"Nombres", "col-1"}, wb.Valo.Headers)
}

func TestSourceReaderBaseSheet(t *testing.T) {
	path := testkit.WriteSource(t, t.TempDir(), testkit.Source{
		HeaderB: []string{"Rut"},
		Rows:    [][]string{{"1-9"}},
		Base: [][]string{
			{"Rut", "Fecha de suscripción"},
			{"1-9", "2020-05-01"},
		},
	})

	wb, err := NewSourceReader(path, true).Read()
	require.NoError(t, err)
	require.NotNil(t, wb.Base)
	assert.Equal(t, []string{"Rut", "Fecha de suscripción"}, wb.Base.Headers)
	require.Equal(t, 1, wb.Base.NumRows())
	assert.Equal(t, core.Cell("2020-05-01"), wb.Base.Cell(0, 1))
}

func TestSourceReaderFallsBackToFirstSheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fuente.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Datos"))
	require.NoError(t, f.SetSheetRow("Datos", "A3", &[]interface{}{"Rut", "Comuna"}))
	require.NoError(t, f.SetSheetRow("Datos", "A4", &[]interface{}{"1-9", "Macul"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb, err := NewSourceReader(path, true).Read()
	require.NoError(t, err)
	assert.Equal(t, "Datos", wb.SheetUsed)
	assert.Equal(t, []string{"Rut", "Comuna"}, wb.Valo.Headers)
	assert.Equal(t, 1, wb.Valo.NumRows())
}

func TestSourceReaderMissingFile(t *testing.T) {
	_, err := NewSourceReader(filepath.Join(t.TempDir(), "nope.xlsx"), true).Read()
	require.Error(t, err)
	assert.Equal(t, errors.CodeWorkbookError, errors.GetCode(err))
}

func TestSourceReaderEmptyDataRows(t *testing.T) {
	path := testkit.WriteSource(t, t.TempDir(), testkit.Source{
		HeaderB: []string{"Rut", "Comuna"},
	})
	wb, err := NewSourceReader(path, true).Read()
	require.NoError(t, err)
	assert.Equal(t, 0, wb.Valo.NumRows())
}
