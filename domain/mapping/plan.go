package mapping

import (
	"maestro/domain/schema"
)

// Origin identifies where a master column's value comes from during one run.
type Origin string

const (
	OriginValo     Origin = "valo"     // copied from a matched source column
	OriginBase     Origin = "base"     // joined from the Base sheet by Rut
	OriginComputed Origin = "computed" // derived from other master cells
	OriginDateCol  Origin = "datecol"  // copied from a date-headed column
	OriginInput    Origin = "input"    // supplied once per run
	OriginNone     Origin = "unmapped" // left empty in new rows
)

// Spec describes how one master column is filled.
type Spec struct {
	Column      string
	Origin      Origin
	Rule        schema.Rule
	SourceIndex int       // source column, valid for OriginValo and OriginDateCol
	Detail      string    // source header, base column or rule description
	MatchKind   MatchKind // valid for OriginValo
}

// UnclaimedColumn is a source column no mapping ever used.
type UnclaimedColumn struct {
	Index  int
	Header string
}

// Plan is the complete, immutable column mapping for one run: one Spec
// per master column in schema order, the date-column index, and the
// source columns nothing claimed.
type Plan struct {
	Specs     []Spec
	DateCols  DateColumns
	Unclaimed []UnclaimedColumn
}

// Inputs gathers what plan construction needs besides the header match.
type Inputs struct {
	Headers     []string
	Match       *MatchResult
	DateCols    DateColumns
	HaveBase    bool // workbook has a usable Base sheet
	HaveRunDate bool // a purchase date was supplied for this run
}

// BuildPlan resolves every master column to its source. When the run has
// no Base sheet or no external date, the affected columns fall back to a
// direct copy if their header matched, otherwise they stay unmapped.
func BuildPlan(in Inputs) *Plan {
	p := &Plan{
		Specs:    make([]Spec, 0, len(schema.Columns)),
		DateCols: in.DateCols,
	}
	used := make(map[int]bool)

	for _, col := range schema.Columns {
		spec := Spec{Column: col, Rule: schema.RuleFor(col), Origin: OriginNone, SourceIndex: -1}
		switch spec.Rule {
		case schema.RuleIDBlotter:
			spec.Origin = OriginComputed
			spec.Detail = "leading digits of " + schema.NumOperacion
		case schema.RuleDifTasa:
			spec.Origin = OriginComputed
			spec.Detail = schema.TasaArriendo + " - " + schema.TasaVenta
		case schema.RuleFirstDateColumn:
			if dc, ok := in.DateCols.Nth(1); ok {
				spec.Origin = OriginDateCol
				spec.SourceIndex = dc.Index
				spec.Detail = dc.Header
				used[dc.Index] = true
			}
		case schema.RuleSecondDateColumn, schema.RuleSecondDateMinusOne:
			if dc, ok := in.DateCols.Nth(2); ok {
				spec.Origin = OriginDateCol
				spec.SourceIndex = dc.Index
				spec.Detail = dc.Header
				used[dc.Index] = true
			}
		case schema.RuleExternalDate:
			if in.HaveRunDate {
				spec.Origin = OriginInput
				spec.Detail = "purchase date"
			} else {
				fillDirect(&spec, in, used)
			}
		case schema.RuleBase:
			if in.HaveBase {
				spec.Origin = OriginBase
				spec.Detail = schema.BaseFields[col]
			} else {
				fillDirect(&spec, in, used)
			}
		default:
			fillDirect(&spec, in, used)
		}
		p.Specs = append(p.Specs, spec)
	}

	for i, h := range in.Headers {
		if used[i] || in.Match.Claimed(i) {
			continue
		}
		p.Unclaimed = append(p.Unclaimed, UnclaimedColumn{Index: i, Header: h})
	}
	return p
}

func fillDirect(spec *Spec, in Inputs, used map[int]bool) {
	idx, ok := in.Match.SourceFor(spec.Column)
	if !ok {
		return
	}
	spec.Origin = OriginValo
	spec.SourceIndex = idx
	if idx < len(in.Headers) {
		spec.Detail = in.Headers[idx]
	}
	if k, ok := in.Match.Kind(spec.Column); ok {
		spec.MatchKind = k
	}
	used[idx] = true
}

// SpecFor returns the Spec for a master column.
func (p *Plan) SpecFor(col string) (Spec, bool) {
	i := schema.Index(col)
	if i < 0 || i >= len(p.Specs) {
		return Spec{}, false
	}
	return p.Specs[i], true
}
