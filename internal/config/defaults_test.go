package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultInputPath, cfg.Input.Path)
	assert.Equal(t, DefaultEncoding, cfg.Input.Encoding)
	assert.Equal(t, DefaultSMILESColumn, cfg.Input.SMILESColumn)
	assert.Equal(t, FormatText, cfg.Output.Format)
	assert.Equal(t, DefaultChunkSize, cfg.Pipeline.ChunkSize)
	assert.GreaterOrEqual(t, cfg.Pipeline.Workers, 1)
	assert.Equal(t, DefaultMinIORegion, cfg.Storage.MinIO.Region)
	assert.Equal(t, DefaultMetricsNamespace, cfg.Metrics.Namespace)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)

	require.Len(t, cfg.Screening.Stages, 2)
	assert.Equal(t, StageConfig{Name: "scaffold", Mode: ModeRequire, SMARTS: DefaultScaffoldSMARTS, Reason: "lack of scaffold"}, cfg.Screening.Stages[0])
	assert.Equal(t, StageConfig{Name: "carboxylate", Mode: ModeExclude, SMARTS: DefaultCarboxylateSMARTS, Reason: "carboxylate"}, cfg.Screening.Stages[1])
}

func TestApplyDefaults_PreserveExistingValues(t *testing.T) {
	cfg := &Config{}
	cfg.Pipeline.Workers = 3
	cfg.Output.Format = FormatJSON
	cfg.Screening.Stages = []StageConfig{{Name: "amide", Mode: ModeExclude, SMARTS: "C(=O)N"}}
	ApplyDefaults(cfg)

	assert.Equal(t, 3, cfg.Pipeline.Workers)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	require.Len(t, cfg.Screening.Stages, 1)
	assert.Equal(t, "amide", cfg.Screening.Stages[0].Reason)
}

func TestApplyDefaults_Nil(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

func TestDefaultStages_FreshCopy(t *testing.T) {
	a := DefaultStages()
	a[0].Name = "mutated"
	assert.Equal(t, "scaffold", DefaultStages()[0].Name)
}

//Personal.AI order the ending
