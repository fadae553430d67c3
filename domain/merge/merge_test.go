package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maestro/domain/core"
	"maestro/domain/schema"
	"maestro/domain/table"
)

func row(rut, fecha, comuna string) table.Row {
	r := table.NewRow()
	r.Set(schema.Rut, core.Cell(rut))
	r.Set(schema.FechaEmision, core.Cell(fecha))
	r.Set(schema.Comuna, core.Cell(comuna))
	return r
}

func TestMergeExistingRowWins(t *testing.T) {
	existing := []table.Row{row("12.345.678-9", "2024-01-01", "Santiago")}
	incoming := []table.Row{row("12345678-9", "2024-01-01", "Valparaíso")}

	out, stats := Merge(existing, incoming)

	require.Len(t, out, 1)
	assert.Equal(t, core.Cell("Santiago"), out[0].Get(schema.Comuna),
		"the pre-existing row survives, not the incoming one")
	assert.Equal(t, Stats{Existing: 1, Incoming: 1, Duplicates: 1, Final: 1}, stats)
}

func TestMergeWithinBatchEarlierWins(t *testing.T) {
	incoming := []table.Row{
		row("1-9", "2024-01-01", "primera"),
		row("19", "2024-01-01", "segunda"),
	}
	out, stats := Merge(nil, incoming)

	require.Len(t, out, 1)
	assert.Equal(t, core.Cell("primera"), out[0].Get(schema.Comuna))
	assert.Equal(t, 1, stats.Duplicates)
}

func TestMergePreservesOrder(t *testing.T) {
	existing := []table.Row{
		row("1-1", "2023-01-01", "a"),
		row("2-2", "2023-01-01", "b"),
	}
	incoming := []table.Row{
		row("3-3", "2024-01-01", "c"),
		row("4-4", "2024-01-01", "d"),
	}
	out, stats := Merge(existing, incoming)

	require.Len(t, out, 4)
	for i, want := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, core.Cell(want), out[i].Get(schema.Comuna))
	}
	assert.Zero(t, stats.Duplicates)
}

func TestMergeIdempotent(t *testing.T) {
	incoming := []table.Row{
		row("1-9", "2024-01-01", "x"),
		row("2-7", "2024-02-02", "y"),
	}
	once, _ := Merge(nil, incoming)
	twice, stats := Merge(once, incoming)

	assert.Equal(t, once, twice, "re-running the same batch must not change the master")
	assert.Equal(t, 2, stats.Duplicates)
}

func TestMergeDifferentDatesAreDistinct(t *testing.T) {
	incoming := []table.Row{
		row("1-9", "2024-01-01", "x"),
		row("1-9", "2024-06-01", "y"),
	}
	out, _ := Merge(nil, incoming)
	assert.Len(t, out, 2, "same Rut with different emission dates is not a duplicate")
}

func TestKey(t *testing.T) {
	a := row("12.345.678-9", " 2024-01-01 ", "")
	b := row("12345678-9", "2024-01-01", "")
	assert.Equal(t, Key(a), Key(b))

	c := row("12345678-9", "2024-01-02", "")
	assert.NotEqual(t, Key(a), Key(c))
}
