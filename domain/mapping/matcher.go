package mapping

import (
	"strings"

	"maestro/domain/schema"
)

// MatchKind records which strategy claimed a master column.
type MatchKind int

const (
	MatchOverride MatchKind = iota // manual position override
	MatchExact                     // canonical name or alias, normalized
	MatchContained                 // containment fallback, lower confidence
)

func (k MatchKind) String() string {
	switch k {
	case MatchOverride:
		return "override"
	case MatchExact:
		return "exact"
	case MatchContained:
		return "contained"
	default:
		return "unknown"
	}
}

// Matcher assigns source columns to master columns by header name. Built
// once per run from the schema alias table plus run configuration; it is
// immutable and safe to reuse across tables.
type Matcher struct {
	overrides map[int]string      // source column index -> master column
	aliases   map[string][]string // master column -> normalized spellings, canonical first
}

// NewMatcher builds a matcher. overrides maps 0-based source column
// positions to master columns, for headers unrecoverable from text;
// extraAliases adds run-local spellings after the schema's own.
func NewMatcher(overrides map[int]string, extraAliases map[string][]string) *Matcher {
	aliases := make(map[string][]string, len(schema.Columns))
	for _, col := range schema.Columns {
		list := []string{Normalize(col)}
		for _, a := range schema.Aliases[col] {
			list = appendAlias(list, a)
		}
		for _, a := range extraAliases[col] {
			list = appendAlias(list, a)
		}
		aliases[col] = list
	}
	ov := make(map[int]string, len(overrides))
	for i, col := range overrides {
		ov[i] = col
	}
	return &Matcher{overrides: ov, aliases: aliases}
}

func appendAlias(list []string, raw string) []string {
	n := Normalize(raw)
	if n == "" {
		return list
	}
	for _, have := range list {
		if have == n {
			return list
		}
	}
	return append(list, n)
}

// MatchResult is the outcome of matching one header set: which source
// column claimed each master column, and how.
type MatchResult struct {
	byMaster map[string]int
	kinds    map[string]MatchKind
	bySource map[int]string
}

// SourceFor returns the source column index claimed for a master column.
func (r *MatchResult) SourceFor(col string) (int, bool) {
	i, ok := r.byMaster[col]
	return i, ok
}

// Kind returns the strategy that claimed a master column.
func (r *MatchResult) Kind(col string) (MatchKind, bool) {
	k, ok := r.kinds[col]
	return k, ok
}

// Claimed reports whether a source column was claimed by any master column.
func (r *MatchResult) Claimed(sourceIdx int) bool {
	_, ok := r.bySource[sourceIdx]
	return ok
}

func (r *MatchResult) claim(col string, sourceIdx int, kind MatchKind) {
	r.byMaster[col] = sourceIdx
	r.kinds[col] = kind
	r.bySource[sourceIdx] = col
}

// Match assigns each source column to at most one master column.
//
// Strategies run as whole-table passes in priority order: manual
// overrides first, then exact alias matches, then the containment
// fallback. A pass never steals a claim made by an earlier pass, so a
// loose containment hit cannot shadow another column's exact match. A
// master column, once claimed, is never re-claimed in the same run:
// when two source headers match the same master column under the same
// strategy, the lower index wins and the later one stays unclaimed.
func (m *Matcher) Match(headers []string) *MatchResult {
	res := &MatchResult{
		byMaster: make(map[string]int),
		kinds:    make(map[string]MatchKind),
		bySource: make(map[int]string),
	}

	for i := range headers {
		col, ok := m.overrides[i]
		if !ok || !schema.IsColumn(col) {
			continue
		}
		if _, taken := res.byMaster[col]; taken {
			continue
		}
		res.claim(col, i, MatchOverride)
	}

	for i, h := range headers {
		if res.Claimed(i) {
			continue
		}
		n := Normalize(h)
		if n == "" {
			continue
		}
		if col, ok := m.exact(n, res); ok {
			res.claim(col, i, MatchExact)
		}
	}

	for i, h := range headers {
		if res.Claimed(i) {
			continue
		}
		if col, ok := m.contained(Normalize(h), res); ok {
			res.claim(col, i, MatchContained)
		}
	}
	return res
}

// exact tests the normalized header against each unclaimed master
// column's spellings in declared order; first match wins.
func (m *Matcher) exact(norm string, res *MatchResult) (string, bool) {
	for _, col := range schema.Columns {
		if _, taken := res.byMaster[col]; taken {
			continue
		}
		for _, a := range m.aliases[col] {
			if a == norm {
				return col, true
			}
		}
	}
	return "", false
}

// contained is the lower-confidence fallback: the header contains, or is
// contained by, a spelling. Both sides need length 3 or more so short
// fragments like "n" cannot claim arbitrary columns.
func (m *Matcher) contained(norm string, res *MatchResult) (string, bool) {
	if len(norm) < 3 {
		return "", false
	}
	for _, col := range schema.Columns {
		if _, taken := res.byMaster[col]; taken {
			continue
		}
		for _, a := range m.aliases[col] {
			if len(a) < 3 {
				continue
			}
			if strings.Contains(norm, a) || strings.Contains(a, norm) {
				return col, true
			}
		}
	}
	return "", false
}
