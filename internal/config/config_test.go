package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maestro/domain/schema"
	"maestro/internal/errors"
)

func writeMapping(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.TwoRowHeader)
	assert.True(t, cfg.ShowReport)
	assert.Empty(t, cfg.Mapping.Overrides)
}

func TestLoadMappingFile(t *testing.T) {
	path := writeMapping(t, `
two_row_header: false
overrides:
  4: "Rut"
  7: "Cuota Mes"
aliases:
  Morosidad:
    - atraso total
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.TwoRowHeader, "mapping file switch wins over the env default")
	assert.Equal(t, schema.Rut, cfg.Mapping.Overrides[4])
	assert.Equal(t, schema.CuotaMes, cfg.Mapping.Overrides[7])
	assert.Equal(t, []string{"atraso total"}, cfg.Mapping.Aliases[schema.Morosidad])
}

func TestLoadMappingRejectsUnknownColumns(t *testing.T) {
	path := writeMapping(t, `
overrides:
  0: "Columna Inventada"
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoadMappingRejectsNegativeIndex(t *testing.T) {
	path := writeMapping(t, `
overrides:
  -1: "Rut"
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMappingMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "no-such.yaml"))
	require.Error(t, err)
}
