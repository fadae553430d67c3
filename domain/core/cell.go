package core

import (
	"strconv"
	"strings"
)

// Cell is a single scalar spreadsheet value, kept in the string form the
// workbook reader produced. The blank string is the explicit "missing"
// marker; numeric helpers report missing instead of coercing it to zero.
type Cell string

// Empty is the missing-value marker.
const Empty Cell = ""

// String returns the raw cell text.
func (c Cell) String() string {
	return string(c)
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return strings.TrimSpace(string(c)) == ""
}

// Float parses the cell as a number. A comma decimal separator is
// accepted because the source workbooks are written under es-CL locales.
// The second return is false for empty or non-numeric cells.
func (c Cell) Float() (float64, bool) {
	s := strings.TrimSpace(string(c))
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// NumberCell renders a computed numeric value back into cell form.
func NumberCell(v float64) Cell {
	return Cell(strconv.FormatFloat(v, 'f', -1, 64))
}
