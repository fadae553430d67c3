package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maestro/domain/core"
	"maestro/domain/schema"
)

func TestNewBaseLookupKeyNormalization(t *testing.T) {
	base := sourceTable(
		[]string{"Rut", "Fecha de suscripción", "Tasa anual de emisión", "Tasa anual de endoso"},
		[]string{"123456789", "2020-05-01", "3.9", "3.1"},
	)
	lookup, ok := NewBaseLookup(base)
	require.True(t, ok)
	require.Equal(t, 1, lookup.Len())

	for _, variant := range []string{"12.345.678-9", "12345678-9", "123456789"} {
		vals, hit := lookup.Lookup(core.Cell(variant))
		require.True(t, hit, "variant %q must normalize onto the stored key", variant)
		assert.Equal(t, core.Cell("2020-05-01"), vals[schema.FechaEmision])
		assert.Equal(t, core.Cell("3.9"), vals[schema.TasaArriendo])
		assert.Equal(t, core.Cell("3.1"), vals[schema.TasaVenta])
	}
}

func TestNewBaseLookupDuplicateKeysKeepFirst(t *testing.T) {
	base := sourceTable(
		[]string{"Rut", "Fecha de suscripción", "Tasa anual de emisión", "Tasa anual de endoso"},
		[]string{"12.345.678-9", "2020-05-01", "3.9", "3.1"},
		[]string{"123456789", "2021-12-31", "9.9", "9.1"},
	)
	lookup, ok := NewBaseLookup(base)
	require.True(t, ok)
	require.Equal(t, 1, lookup.Len())

	vals, hit := lookup.Lookup(core.Cell("12345678-9"))
	require.True(t, hit)
	assert.Equal(t, core.Cell("2020-05-01"), vals[schema.FechaEmision])
}

func TestNewBaseLookupHeadersMatchedByNormalizedName(t *testing.T) {
	base := sourceTable(
		[]string{"RUT", "fecha de suscripcion", "TASA ANUAL DE EMISIÓN", "tasa anual de endoso"},
		[]string{"1-9", "2019-01-01", "4.5", "4.0"},
	)
	lookup, ok := NewBaseLookup(base)
	require.True(t, ok)

	vals, hit := lookup.Lookup(core.Cell("19"))
	require.True(t, hit)
	assert.Equal(t, core.Cell("2019-01-01"), vals[schema.FechaEmision])
	assert.Equal(t, core.Cell("4.5"), vals[schema.TasaArriendo])
}

func TestNewBaseLookupUnusable(t *testing.T) {
	_, ok := NewBaseLookup(nil)
	assert.False(t, ok)

	empty := sourceTable([]string{"Rut", "Fecha de suscripción"})
	_, ok = NewBaseLookup(empty)
	assert.False(t, ok, "no data rows")

	noKey := sourceTable(
		[]string{"Cliente", "Fecha de suscripción"},
		[]string{"x", "2020-01-01"},
	)
	_, ok = NewBaseLookup(noKey)
	assert.False(t, ok, "key column absent")
}

func TestBuildBatchBaseLink(t *testing.T) {
	src := sourceTable(
		[]string{"Rut", "Tasa Venta"},
		[]string{"12.345.678-9", "6.2"},
		[]string{"99.999.999-9", "5.0"},
	)
	base := sourceTable(
		[]string{"Rut", "Fecha de suscripción", "Tasa anual de emisión", "Tasa anual de endoso"},
		[]string{"123456789", "2020-05-01", "7.5", "6.2"},
	)
	lookup, ok := NewBaseLookup(base)
	require.True(t, ok)

	batch := BuildBatch(Params{Plan: planFor(src, true, false), Source: src, Base: lookup})
	require.Len(t, batch, 2)

	linked := batch[0]
	assert.Equal(t, core.Cell("2020-05-01"), linked.Get(schema.FechaEmision))
	assert.Equal(t, core.Cell("7.5"), linked.Get(schema.TasaArriendo))
	assert.Equal(t, core.Cell("6.2"), linked.Get(schema.TasaVenta))
	dif, okDif := linked.Get(schema.DifTasa).Float()
	require.True(t, okDif, "Dif. Tasa computed from the linked rates")
	assert.InDelta(t, 1.3, dif, 1e-9)

	missed := batch[1]
	assert.True(t, missed.Get(schema.FechaEmision).IsEmpty(), "base-key miss leaves the cell empty")
	assert.True(t, missed.Get(schema.TasaArriendo).IsEmpty())
	assert.True(t, missed.Get(schema.TasaVenta).IsEmpty(),
		"Base origin overrides the matched Tasa Venta source column")
	assert.True(t, missed.Get(schema.DifTasa).IsEmpty())
}
