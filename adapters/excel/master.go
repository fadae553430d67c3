package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"maestro/domain/core"
	"maestro/domain/schema"
	"maestro/domain/table"
	"maestro/internal"
	"maestro/internal/errors"
)

// Master workbook geometry (1-based): row 1 is a title band kept for the
// consumers of the file, the schema header sits on row 2 and data starts
// on row 3.
const (
	masterSheet     = "Sheet1"
	masterHeaderRow = 2
)

// MasterStore reads and writes the persistent master workbook.
type MasterStore struct {
	path string
	log  *internal.Logger
}

// NewMasterStore creates a store for one master workbook path.
func NewMasterStore(path string) *MasterStore {
	return &MasterStore{path: path, log: internal.DefaultLogger}
}

// Path returns the master workbook location.
func (s *MasterStore) Path() string {
	return s.path
}

// Read loads the accumulated master rows. A missing file is an empty
// master, not an error: the first run creates it. Columns are realigned
// to schema order by header name; columns the file lacks read empty.
func (s *MasterStore) Read() ([]table.Row, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		s.log.Info("master workbook %s does not exist yet, starting empty", s.path)
		return nil, nil
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, errors.WorkbookError("failed to open master workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.WorkbookError("failed to read master sheet", err)
	}
	if len(rows) < masterHeaderRow {
		return nil, nil
	}

	// Column position per master column, first occurrence wins.
	pos := make(map[int]int, len(schema.Columns))
	for j, h := range rows[masterHeaderRow-1] {
		i := schema.Index(strings.TrimSpace(h))
		if i < 0 {
			continue
		}
		if _, taken := pos[i]; !taken {
			pos[i] = j
		}
	}

	out := make([]table.Row, 0, len(rows)-masterHeaderRow)
	for _, fileRow := range rows[masterHeaderRow:] {
		row := table.NewRow()
		for i, j := range pos {
			if j < len(fileRow) {
				row[i] = core.Cell(strings.TrimSpace(fileRow[j]))
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// Write persists the merged master. The workbook is saved to a hidden
// temporary file in the target directory first and renamed over the
// destination, so a failure mid-write never leaves a half-written
// master.
func (s *MasterStore) Write(rows []table.Row, runID core.RunID) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(schema.Columns))
	for i, c := range schema.Columns {
		header[i] = c
	}
	cell, _ := excelize.CoordinatesToCellName(1, masterHeaderRow)
	if err := f.SetSheetRow(masterSheet, cell, &header); err != nil {
		return errors.PersistError("failed to write master header", err)
	}

	for i, r := range rows {
		vals := make([]interface{}, len(r))
		for j, c := range r {
			vals[j] = c.String()
		}
		cell, _ := excelize.CoordinatesToCellName(1, masterHeaderRow+1+i)
		if err := f.SetSheetRow(masterSheet, cell, &vals); err != nil {
			return errors.PersistError(fmt.Sprintf("failed to write master row %d", i), err)
		}
	}

	tmp := filepath.Join(filepath.Dir(s.path), fmt.Sprintf(".maestro-%s.xlsx", runID))
	if err := f.SaveAs(tmp); err != nil {
		return errors.PersistError("failed to save master workbook", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return errors.PersistError("failed to replace master workbook", err)
	}
	s.log.Info("master workbook updated: %s (%d rows)", s.path, len(rows))
	return nil
}
