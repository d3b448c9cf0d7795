package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

const validConfigYAML = `
input:
  path: "hits.tsv"
  encoding: "latin1"
output:
  format: "json"
  export: "survivors.csv"
screening:
  stages:
    - name: core
      mode: require
      smarts: "c1ccc2[nH]ccc2c1"
      reason: "lack of indole"
    - name: amine
      mode: exclude
      smarts: "[NX3;H2]"
pipeline:
  workers: 2
storage:
  minio:
    endpoint: "localhost:9000"
    access_key: "key"
    secret_key: "secret"
metrics:
  enabled: true
  textfile: "sieve.prom"
log:
  level: debug
`

func createTempConfigFile(t *testing.T, content string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	cfg, err := Load(createTempConfigFile(t, validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "hits.tsv", cfg.Input.Path)
	assert.Equal(t, "latin1", cfg.Input.Encoding)
	assert.Equal(t, DefaultSMILESColumn, cfg.Input.SMILESColumn)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, "survivors.csv", cfg.Output.Export)
	assert.Equal(t, 2, cfg.Pipeline.Workers)
	assert.Equal(t, DefaultChunkSize, cfg.Pipeline.ChunkSize)
	assert.Equal(t, "localhost:9000", cfg.Storage.MinIO.Endpoint)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "sieve.prom", cfg.Metrics.Textfile)
	assert.Equal(t, "debug", cfg.Log.Level)

	require.Len(t, cfg.Screening.Stages, 2)
	assert.Equal(t, "core", cfg.Screening.Stages[0].Name)
	assert.Equal(t, ModeRequire, cfg.Screening.Stages[0].Mode)
	assert.Equal(t, "lack of indole", cfg.Screening.Stages[0].Reason)
	assert.Equal(t, "amine", cfg.Screening.Stages[1].Reason)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	t.Setenv("SIEVE_PIPELINE_WORKERS", "7")
	t.Setenv("SIEVE_OUTPUT_FORMAT", "yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Pipeline.Workers)
	assert.Equal(t, FormatYAML, cfg.Output.Format)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfigNotFound))
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(createTempConfigFile(t, "input: [unterminated"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfigInvalid))
}

func TestLoad_InvalidValues(t *testing.T) {
	_, err := Load(createTempConfigFile(t, "output:\n  format: xml\n"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfigInvalid))
	assert.Contains(t, err.Error(), "output.format")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SIEVE_INPUT_PATH", "s3://hits/cache3.csv")
	t.Setenv("SIEVE_STORAGE_MINIO_ENDPOINT", "minio:9000")
	t.Setenv("SIEVE_METRICS_ENABLED", "true")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "s3://hits/cache3.csv", cfg.Input.Path)
	assert.Equal(t, "minio:9000", cfg.Storage.MinIO.Endpoint)
	assert.True(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.NeedsObjectStorage())
	assert.Len(t, cfg.Screening.Stages, 2)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "explicit.yaml", Resolve("explicit.yaml"))
	assert.Equal(t, DefaultConfigName, SearchPaths()[0])
}

func TestMustLoad_Panics(t *testing.T) {
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "absent.yaml")) })
}

//Personal.AI order the ending
