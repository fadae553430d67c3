// Package excel adapts xlsx workbooks to the load pipeline: it reads the
// Valo/Base source workbook and reads/writes the persistent master.
package excel

import (
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"maestro/domain/core"
	"maestro/domain/mapping"
	"maestro/domain/table"
	"maestro/internal"
	"maestro/internal/errors"
)

// Sheet names of the source workbook.
const (
	ValoSheet = "Valo"
	BaseSheet = "Base"
)

// Valo header geometry (1-based): the effective header spans rows 2-3
// and data starts on row 4. The Base sheet is plain: header row 1, data
// row 2.
const (
	valoHeaderRowA = 2
	valoHeaderRowB = 3
	valoDataRow    = 4
)

// Workbook is the parsed source workbook.
type Workbook struct {
	Valo      *table.Raw
	Base      *table.Raw // nil when the sheet is absent
	SheetUsed string     // the sheet Valo data actually came from
}

// SourceReader reads a Valo/Base source workbook.
type SourceReader struct {
	path         string
	twoRowHeader bool
	log          *internal.Logger
}

// NewSourceReader creates a reader for one source workbook path.
func NewSourceReader(path string, twoRowHeader bool) *SourceReader {
	return &SourceReader{path: path, twoRowHeader: twoRowHeader, log: internal.DefaultLogger}
}

// Read loads the whole workbook into memory: the Valo sheet (falling
// back to the first sheet when Valo is absent) and the optional Base
// sheet. Structural problems are fatal; an absent Base sheet is not.
func (r *SourceReader) Read() (*Workbook, error) {
	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		return nil, errors.WorkbookError("source workbook not found: "+r.path, err)
	}
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, errors.WorkbookError("failed to open source workbook", err)
	}
	defer f.Close()

	sheet := ValoSheet
	if idx, err := f.GetSheetIndex(ValoSheet); err != nil || idx < 0 {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, errors.SheetMissing(ValoSheet)
		}
		sheet = list[0]
		r.log.Warn("sheet %q not found, falling back to first sheet %q", ValoSheet, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.WorkbookError("failed to read sheet "+sheet, err)
	}
	wb := &Workbook{SheetUsed: sheet, Valo: buildValoTable(rows, r.twoRowHeader)}
	r.log.Info("sheet %q read (%d columns, %d rows)", sheet, len(wb.Valo.Headers), wb.Valo.NumRows())

	if idx, err := f.GetSheetIndex(BaseSheet); err == nil && idx >= 0 {
		brows, err := f.GetRows(BaseSheet)
		if err != nil {
			return nil, errors.WorkbookError("failed to read sheet "+BaseSheet, err)
		}
		wb.Base = buildPlainTable(brows)
		r.log.Info("sheet %q read (%d columns, %d rows)", BaseSheet, len(wb.Base.Headers), wb.Base.NumRows())
	} else {
		r.log.Debug("no %q sheet in source workbook", BaseSheet)
	}
	return wb, nil
}

// buildValoTable resolves the two-row header and collects the data rows.
// A sheet too short to hold the header yields an empty table.
func buildValoTable(rows [][]string, twoRowHeader bool) *table.Raw {
	var rowA, rowB []string
	if len(rows) >= valoHeaderRowA {
		rowA = rows[valoHeaderRowA-1]
	}
	if len(rows) >= valoHeaderRowB {
		rowB = rows[valoHeaderRowB-1]
	}

	var data [][]string
	if len(rows) >= valoDataRow {
		data = rows[valoDataRow-1:]
	}

	// GetRows trims trailing empty cells, so the real width is the widest
	// of the header rows and the data rows. Pad the header rows to it so
	// anonymous trailing columns still get placeholder names.
	width := len(rowB)
	if twoRowHeader && len(rowA) > width {
		width = len(rowA)
	}
	for _, row := range data {
		if len(row) > width {
			width = len(row)
		}
	}
	rowA = padRow(rowA, width)
	rowB = padRow(rowB, width)
	headers := mapping.ResolveHeaders(rowA, rowB, twoRowHeader)

	return table.NewRaw(headers, toCells(data))
}

// buildPlainTable reads a header-on-row-1 sheet; resolved names equal
// the raw names.
func buildPlainTable(rows [][]string) *table.Raw {
	if len(rows) == 0 {
		return table.NewRaw(nil, nil)
	}
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	return table.NewRaw(headers, toCells(rows[1:]))
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}

func toCells(rows [][]string) [][]core.Cell {
	out := make([][]core.Cell, len(rows))
	for i, r := range rows {
		row := make([]core.Cell, len(r))
		for j, v := range r {
			row[j] = core.Cell(strings.TrimSpace(v))
		}
		out[i] = row
	}
	return out
}
