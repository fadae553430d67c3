// Package extract turns mapped source rows into master-schema rows. Each
// master column has exactly one extraction rule; every rule is a pure
// function of the row, the mapping plan, the base lookup and the per-run
// purchase date.
package extract

import (
	"strings"
	"time"

	"maestro/domain/core"
	"maestro/domain/mapping"
	"maestro/domain/schema"
	"maestro/domain/table"
)

// Accepted purchase-date input layouts; the first is also the canonical
// stored form.
var purchaseDateLayouts = []string{"2006-01-02", "02/01/2006", "02-01-2006"}

// ParsePurchaseDate validates the external run date and normalizes it to
// the canonical stored form (ISO). ok=false when the input matches no
// accepted layout; the caller aborts the run rather than guessing.
func ParsePurchaseDate(s string) (core.Cell, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.Empty, false
	}
	for _, layout := range purchaseDateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return core.Cell(d.Format("2006-01-02")), true
		}
	}
	return core.Empty, false
}

// LeadingDigits returns the run of decimal digits at the start of s,
// stopping at the first non-digit. "12345ABC" gives "12345"; a value
// with no leading digit gives "".
func LeadingDigits(s string) string {
	s = strings.TrimSpace(s)
	for i, r := range s {
		if r < '0' || r > '9' {
			return s[:i]
		}
	}
	return s
}

// Params carries the per-run inputs of batch extraction.
type Params struct {
	Plan         *mapping.Plan
	Source       *table.Raw
	Base         *BaseLookup // nil when the workbook has no usable Base sheet
	PurchaseDate core.Cell   // canonical form; empty when not supplied
}

// BuildBatch converts every source row into a master row, in source
// order. Row order is preserved; rows are independent of each other.
func BuildBatch(p Params) []table.Row {
	rows := make([]table.Row, 0, p.Source.NumRows())
	for r := 0; r < p.Source.NumRows(); r++ {
		rows = append(rows, buildRow(p, r))
	}
	return rows
}

func buildRow(p Params, r int) table.Row {
	row := table.NewRow()

	// Direct copies, date-column values and the run input first; the
	// computed columns read the assembled cells afterwards.
	for i, spec := range p.Plan.Specs {
		switch spec.Origin {
		case mapping.OriginValo, mapping.OriginDateCol:
			if spec.Rule == schema.RuleSecondDateMinusOne {
				continue // handled below, needs numeric coercion
			}
			row[i] = p.Source.Cell(r, spec.SourceIndex)
		case mapping.OriginInput:
			row[i] = p.PurchaseDate
		}
	}

	if spec, ok := p.Plan.SpecFor(schema.PrecioMenosUnaUF); ok && spec.Origin == mapping.OriginDateCol {
		if v, ok := p.Source.Cell(r, spec.SourceIndex).Float(); ok {
			row.Set(schema.PrecioMenosUnaUF, core.NumberCell(v-1))
		}
	}

	if p.Base != nil {
		linkBase(p, row)
	}

	row.Set(schema.IDBlotter, core.Cell(LeadingDigits(row.Get(schema.NumOperacion).String())))

	// Dif. Tasa: empty, never zero, when either operand is missing or
	// non-numeric.
	if ta, ok := row.Get(schema.TasaArriendo).Float(); ok {
		if tv, ok := row.Get(schema.TasaVenta).Float(); ok {
			row.Set(schema.DifTasa, core.NumberCell(ta-tv))
		}
	}
	return row
}

// linkBase fills the base-linked columns from the lookup. The probe key
// is the row's own Rut; on a miss the three cells stay empty.
func linkBase(p Params, row table.Row) {
	var vals map[string]core.Cell
	if found, ok := p.Base.Lookup(row.Get(schema.Rut)); ok {
		vals = found
	}
	for _, spec := range p.Plan.Specs {
		if spec.Origin != mapping.OriginBase {
			continue
		}
		row.Set(spec.Column, vals[spec.Column])
	}
}
