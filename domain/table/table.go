// Package table holds the row-major tabular structures the load pipeline
// passes between stages: raw source sheets and master-schema rows.
package table

import (
	"maestro/domain/core"
	"maestro/domain/schema"
)

// Raw is one source sheet read fully into memory: an ordered header per
// column and row-major cells. Rows are padded to the header width, so
// every column has the same row count.
type Raw struct {
	Headers []string
	Rows    [][]core.Cell
}

// NewRaw builds a Raw table, padding or truncating each data row to the
// header width.
func NewRaw(headers []string, rows [][]core.Cell) *Raw {
	t := &Raw{Headers: headers, Rows: make([][]core.Cell, 0, len(rows))}
	for _, r := range rows {
		row := make([]core.Cell, len(headers))
		copy(row, r)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// NumRows returns the data row count.
func (t *Raw) NumRows() int {
	return len(t.Rows)
}

// Cell returns the value at (row, col), empty when out of range.
func (t *Raw) Cell(row, col int) core.Cell {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Headers) {
		return core.Empty
	}
	return t.Rows[row][col]
}

// Row is one master-schema record: exactly one cell per schema column,
// in schema order.
type Row []core.Cell

// NewRow allocates an all-empty master row.
func NewRow() Row {
	return make(Row, len(schema.Columns))
}

// Get returns the cell for a master column, empty for unknown names.
func (r Row) Get(col string) core.Cell {
	i := schema.Index(col)
	if i < 0 || i >= len(r) {
		return core.Empty
	}
	return r[i]
}

// Set assigns the cell for a master column; unknown names are ignored.
func (r Row) Set(col string, v core.Cell) {
	if i := schema.Index(col); i >= 0 && i < len(r) {
		r[i] = v
	}
}
