// Package report renders the per-run column mapping summary: where every
// master column was filled from, which source columns went unused, and
// the merge row counts.
package report

import (
	"fmt"
	"io"
	"strings"

	"maestro/domain/core"
	"maestro/domain/mapping"
	"maestro/domain/merge"
)

// Report is the full mapping and merge summary for one run.
type Report struct {
	RunID      core.RunID
	SourcePath string
	MasterPath string
	SheetUsed  string
	Plan       *mapping.Plan
	Stats      merge.Stats
	DryRun     bool // mapping only, nothing merged or persisted
}

const frame = "============================================================"

// Render writes the framed textual summary.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, frame)
	fmt.Fprintln(w, "COLUMN MAPPING REPORT")
	fmt.Fprintf(w, "run %s\n", r.RunID)
	fmt.Fprintf(w, "source: %s (sheet %q)\n", r.SourcePath, r.SheetUsed)
	if !r.DryRun {
		fmt.Fprintf(w, "master: %s\n", r.MasterPath)
	}
	fmt.Fprintln(w, frame)

	fmt.Fprintln(w, "\n--- Master columns ---")
	for _, spec := range r.Plan.Specs {
		fmt.Fprintf(w, "  %s %q%s\n", tag(spec), spec.Column, detail(spec))
	}

	fmt.Fprintln(w, "\n--- Unused source columns ---")
	if len(r.Plan.Unclaimed) == 0 {
		fmt.Fprintln(w, "  (none; every source column was used)")
	} else {
		for _, u := range r.Plan.Unclaimed {
			fmt.Fprintf(w, "  - [%d] %q\n", u.Index, u.Header)
		}
	}

	if !r.DryRun {
		fmt.Fprintln(w, "\n--- Rows ---")
		fmt.Fprintf(w, "  master before:      %d\n", r.Stats.Existing)
		fmt.Fprintf(w, "  read from source:   %d\n", r.Stats.Incoming)
		fmt.Fprintf(w, "  dropped duplicates: %d\n", r.Stats.Duplicates)
		fmt.Fprintf(w, "  master now:         %d\n", r.Stats.Final)
	}
	fmt.Fprintln(w, frame)
}

// String renders the report to a string.
func (r *Report) String() string {
	var b strings.Builder
	r.Render(&b)
	return b.String()
}

func tag(spec mapping.Spec) string {
	switch spec.Origin {
	case mapping.OriginValo:
		if spec.MatchKind == mapping.MatchOverride {
			return "[OVERRIDE]"
		}
		return "[OK]"
	case mapping.OriginBase:
		return "[FROM BASE]"
	case mapping.OriginComputed:
		return "[COMPUTED]"
	case mapping.OriginDateCol:
		return "[FROM DATE COL]"
	case mapping.OriginInput:
		return "[INPUT]"
	default:
		return "[UNMAPPED]"
	}
}

func detail(spec mapping.Spec) string {
	switch spec.Origin {
	case mapping.OriginValo:
		return fmt.Sprintf(" <- [%d] %q", spec.SourceIndex, spec.Detail)
	case mapping.OriginBase:
		return fmt.Sprintf(" <- Base %q", spec.Detail)
	case mapping.OriginComputed, mapping.OriginDateCol:
		return fmt.Sprintf(" (%s)", spec.Detail)
	case mapping.OriginNone:
		return " (stays empty in new rows)"
	default:
		return ""
	}
}
