package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlens/formlens/schema"
)

func TestValidateDefaults(t *testing.T) {
	in := &ConfigRawInput{Current: "a.yaml", Reference: "b.yaml"}
	cfg, err := in.Validate()
	require.NoError(t, err)

	assert.Equal(t, "a.yaml", cfg.CurrentPath)
	assert.Equal(t, "b.yaml", cfg.ReferencePath)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, DefaultPrecision, cfg.Precision)
	assert.True(t, cfg.UseColors)
	assert.Empty(t, cfg.Stages)
	assert.Equal(t, DefaultRunLimit, cfg.RunLimit)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
}

func TestValidateOutputModes(t *testing.T) {
	for _, mode := range []string{"text", "json", "csv", "JSON"} {
		in := &ConfigRawInput{Output: mode}
		_, err := in.Validate()
		assert.NoError(t, err, mode)
	}

	in := &ConfigRawInput{Output: "xml"}
	_, err := in.Validate()
	assert.ErrorContains(t, err, "invalid output mode")
}

func TestValidateParquetRequiresOutputFile(t *testing.T) {
	in := &ConfigRawInput{Output: "parquet"}
	_, err := in.Validate()
	require.ErrorContains(t, err, "parquet output requires --output-file")

	in.OutputFile = "runs.parquet"
	cfg, err := in.Validate()
	require.NoError(t, err)
	assert.Equal(t, schema.ParquetOut, cfg.Output)
}

func TestValidateColor(t *testing.T) {
	in := &ConfigRawInput{Color: "no"}
	cfg, err := in.Validate()
	require.NoError(t, err)
	assert.False(t, cfg.UseColors)

	in.Color = "maybe"
	_, err = in.Validate()
	assert.ErrorContains(t, err, "invalid boolean string")
}

func TestValidatePrecision(t *testing.T) {
	in := &ConfigRawInput{Precision: -1}
	_, err := in.Validate()
	assert.ErrorContains(t, err, "precision must be non-negative")

	in.Precision = 4
	cfg, err := in.Validate()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Precision)
}

func TestValidateRunLimitClamped(t *testing.T) {
	in := &ConfigRawInput{RunLimit: MaxRunLimit + 500}
	cfg, err := in.Validate()
	require.NoError(t, err)
	assert.Equal(t, MaxRunLimit, cfg.RunLimit)

	in.RunLimit = -1
	_, err = in.Validate()
	assert.ErrorContains(t, err, "run limit must be non-negative")
}

func TestValidateBackend(t *testing.T) {
	in := &ConfigRawInput{StoreBackend: "PostgreSQL"}
	cfg, err := in.Validate()
	require.NoError(t, err)
	assert.Equal(t, schema.PostgreSQLBackend, cfg.StoreBackend)

	in.StoreBackend = "oracle"
	_, err = in.Validate()
	assert.ErrorContains(t, err, "invalid store backend")
}

func TestParseStages(t *testing.T) {
	stages, err := ParseStages("questions, choices")
	require.NoError(t, err)
	assert.Equal(t, []schema.Category{schema.QuestionsCategory, schema.ChoicesCategory}, stages)

	// Full category names work too.
	stages, err = ParseStages("survey_columns")
	require.NoError(t, err)
	assert.Equal(t, []schema.Category{schema.ColumnsCategory}, stages)

	stages, err = ParseStages("")
	require.NoError(t, err)
	assert.Nil(t, stages)

	_, err = ParseStages("questions,bogus")
	assert.ErrorContains(t, err, "unknown stage")
}

func TestStageMap(t *testing.T) {
	cfg := &Config{}
	assert.Nil(t, cfg.StageMap())

	cfg.Stages = []schema.Category{schema.SettingsCategory}
	m := cfg.StageMap()
	assert.True(t, m[schema.SettingsCategory])
	assert.False(t, m[schema.QuestionsCategory])
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		CurrentPath: "a.yaml",
		Stages:      []schema.Category{schema.SettingsCategory},
	}
	clone := cfg.Clone()
	clone.CurrentPath = "other.yaml"
	clone.Stages[0] = schema.ChoicesCategory

	assert.Equal(t, "a.yaml", cfg.CurrentPath)
	assert.Equal(t, schema.SettingsCategory, cfg.Stages[0])
}
