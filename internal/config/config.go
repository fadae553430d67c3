package config

import (
	"os"
	"strconv"

	"github.com/goccy/go-yaml"

	"maestro/domain/schema"
	"maestro/internal/errors"
)

// Config is the complete run configuration. Built once at startup and
// immutable afterwards; every component receives it explicitly instead
// of reading ambient state mid-run.
type Config struct {
	MasterPath   string  // persistent master workbook; empty means "next to the source"
	MappingPath  string  // optional YAML mapping configuration
	TwoRowHeader bool    // resolve the Valo header across rows 2-3
	ShowReport   bool    // render the mapping report after a run
	Mapping      Mapping // parsed mapping configuration
}

// Mapping is the YAML-backed matching configuration: manual position
// overrides for columns whose header is unrecoverable from text, and
// run-local alias spellings on top of the schema's own.
type Mapping struct {
	// TwoRowHeader overrides the env switch when set.
	TwoRowHeader *bool `yaml:"two_row_header"`
	// Overrides maps 0-based source column positions to master columns.
	Overrides map[int]string `yaml:"overrides"`
	// Aliases adds extra accepted spellings per master column.
	Aliases map[string][]string `yaml:"aliases"`
}

// Load reads configuration from environment variables and, when
// MAESTRO_MAPPING (or the path argument) names a file, the YAML mapping
// configuration on top.
func Load(mappingPath string) (*Config, error) {
	cfg := &Config{
		MasterPath:   getEnvOrDefault("MAESTRO_MASTER", ""),
		MappingPath:  mappingPath,
		TwoRowHeader: getEnvBoolOrDefault("MAESTRO_TWO_ROW_HEADER", true),
		ShowReport:   getEnvBoolOrDefault("MAESTRO_REPORT", true),
	}
	if cfg.MappingPath == "" {
		cfg.MappingPath = getEnvOrDefault("MAESTRO_MAPPING", "")
	}
	if cfg.MappingPath != "" {
		m, err := loadMapping(cfg.MappingPath)
		if err != nil {
			return nil, err
		}
		cfg.Mapping = *m
		if m.TwoRowHeader != nil {
			cfg.TwoRowHeader = *m.TwoRowHeader
		}
	}
	return cfg, nil
}

func loadMapping(path string) (*Mapping, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to read mapping config "+path)
	}
	var m Mapping
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to parse mapping config")
	}
	if err := validateMapping(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func validateMapping(m *Mapping) error {
	for idx, col := range m.Overrides {
		if idx < 0 {
			return errors.ConfigInvalid("override positions must be 0-based column indexes")
		}
		if !schema.IsColumn(col) {
			return errors.ConfigInvalid("override target " + strconv.Quote(col) + " is not a master column")
		}
	}
	for col := range m.Aliases {
		if !schema.IsColumn(col) {
			return errors.ConfigInvalid("alias target " + strconv.Quote(col) + " is not a master column")
		}
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
