package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"maestro/domain/core"
	"maestro/domain/mapping"
	"maestro/domain/merge"
)

func testPlan(headers []string) *mapping.Plan {
	m := mapping.NewMatcher(nil, nil)
	return mapping.BuildPlan(mapping.Inputs{
		Headers:     headers,
		Match:       m.Match(headers),
		DateCols:    mapping.LocateDateColumns(headers),
		HaveBase:    true,
		HaveRunDate: true,
	})
}

func TestRender(t *testing.T) {
	r := &Report{
		RunID:      core.RunID("run-1"),
		SourcePath: "fuente.xlsx",
		MasterPath: "maestro.xlsx",
		SheetUsed:  "Valo",
		Plan:       testPlan([]string{"Rut", "2022-06-01", "2023-01-15", "Misteriosa"}),
		Stats:      merge.Stats{Existing: 10, Incoming: 4, Duplicates: 1, Final: 13},
	}
	out := r.String()

	assert.Contains(t, out, "COLUMN MAPPING REPORT")
	assert.Contains(t, out, `[OK] "Rut" <- [0] "Rut"`)
	assert.Contains(t, out, `[COMPUTED] "ID Blotter"`)
	assert.Contains(t, out, `[FROM BASE] "Fecha de emisión" <- Base "Fecha de suscripción"`)
	assert.Contains(t, out, `[FROM DATE COL] "VPN 1ra fecha" (2022-06-01)`)
	assert.Contains(t, out, `[INPUT] "Fecha de compra"`)
	assert.Contains(t, out, `[UNMAPPED] "Comuna"`)
	assert.Contains(t, out, `- [3] "Misteriosa"`)
	assert.Contains(t, out, "dropped duplicates: 1")
}

func TestRenderDryRunSkipsRowCounts(t *testing.T) {
	r := &Report{
		RunID:      core.NewRunID(),
		SourcePath: "fuente.xlsx",
		SheetUsed:  "Valo",
		Plan:       testPlan([]string{"Rut"}),
		DryRun:     true,
	}
	out := r.String()
	assert.NotContains(t, out, "master before")
	assert.False(t, strings.Contains(out, "maestro.xlsx"))
}

func TestRenderAllColumnsListed(t *testing.T) {
	r := &Report{
		RunID:     core.NewRunID(),
		SheetUsed: "Valo",
		Plan:      testPlan(nil),
		DryRun:    true,
	}
	out := r.String()
	assert.Equal(t, 34, strings.Count(out, "  ["), "one line per master column")
}
