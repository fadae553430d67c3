// Package merge appends a freshly extracted batch to the accumulated
// master table and removes duplicates by the (Rut, Fecha de emisión)
// business key.
package merge

import (
	"strings"

	"maestro/domain/mapping"
	"maestro/domain/schema"
	"maestro/domain/table"
)

// Stats summarizes one merge for the run report.
type Stats struct {
	Existing   int // rows already in the master
	Incoming   int // rows built from the source workbook
	Duplicates int // rows dropped by the key
	Final      int // rows in the merged master
}

// Merge concatenates existing rows then incoming rows and deduplicates
// keep-first: a pre-existing row always beats an incoming row with the
// same key, and within the batch the earlier row wins. Inputs are not
// modified; the result is a fresh slice in stable order.
func Merge(existing, incoming []table.Row) ([]table.Row, Stats) {
	stats := Stats{Existing: len(existing), Incoming: len(incoming)}
	out := make([]table.Row, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing)+len(incoming))

	keep := func(r table.Row) {
		k := Key(r)
		if _, dup := seen[k]; dup {
			stats.Duplicates++
			return
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	for _, r := range existing {
		keep(r)
	}
	for _, r := range incoming {
		keep(r)
	}
	stats.Final = len(out)
	return out, stats
}

// Key is the composite dedup identity of a master row: the normalized
// Rut joined with the trimmed emission date. Formatting variants of one
// Rut ("12.345.678-9", "12345678-9") produce the same key.
func Key(r table.Row) string {
	rut := mapping.NormalizeKey(r.Get(schema.Rut).String())
	fecha := strings.TrimSpace(r.Get(schema.FechaEmision).String())
	return rut + "|" + fecha
}
