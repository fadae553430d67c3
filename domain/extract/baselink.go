package extract

import (
	"maestro/domain/core"
	"maestro/domain/mapping"
	"maestro/domain/schema"
	"maestro/domain/table"
)

// BaseLookup joins Valo rows to the Base sheet. Keys are normalized Ruts
// so formatting variants of one identifier land on the same entry; when
// several Base rows share a key the first one read wins.
type BaseLookup struct {
	rows map[string]map[string]core.Cell // normalized key -> master column -> value
}

// NewBaseLookup indexes a Base sheet. The key column and each linked
// field column are located by normalized header name. Returns ok=false
// when the sheet is unusable (empty, or no key column) in which case the
// run proceeds without base linking.
func NewBaseLookup(base *table.Raw) (*BaseLookup, bool) {
	if base == nil || base.NumRows() == 0 {
		return nil, false
	}
	keyIdx, ok := findColumn(base.Headers, schema.BaseKey)
	if !ok {
		return nil, false
	}

	fields := make(map[string]int, len(schema.BaseFields))
	for masterCol, baseName := range schema.BaseFields {
		if idx, ok := findColumn(base.Headers, baseName); ok {
			fields[masterCol] = idx
		}
	}

	l := &BaseLookup{rows: make(map[string]map[string]core.Cell, base.NumRows())}
	for r := 0; r < base.NumRows(); r++ {
		key := mapping.NormalizeKey(base.Cell(r, keyIdx).String())
		if key == "" {
			continue
		}
		if _, dup := l.rows[key]; dup {
			continue
		}
		vals := make(map[string]core.Cell, len(fields))
		for masterCol, idx := range fields {
			vals[masterCol] = base.Cell(r, idx)
		}
		l.rows[key] = vals
	}
	return l, true
}

// Lookup probes the index with a raw key value. On a miss every linked
// field reads empty, which is the documented behavior, not an error.
func (l *BaseLookup) Lookup(rawKey core.Cell) (map[string]core.Cell, bool) {
	vals, ok := l.rows[mapping.NormalizeKey(rawKey.String())]
	return vals, ok
}

// Len returns the number of distinct keys indexed.
func (l *BaseLookup) Len() int {
	return len(l.rows)
}

func findColumn(headers []string, name string) (int, bool) {
	want := mapping.Normalize(name)
	for i, h := range headers {
		if mapping.Normalize(h) == want {
			return i, true
		}
	}
	return 0, false
}
