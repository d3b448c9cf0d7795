// Package config defines all configuration structures for ScaffoldSieve.
// Loading lives in loader.go and defaults in defaults.go; this file holds only
// plain data types and validation.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// InputConfig describes where the candidate table comes from and how to read it.
type InputConfig struct {
	Path         string `mapstructure:"path"`
	Delimiter    string `mapstructure:"delimiter"` // empty = infer from extension
	Encoding     string `mapstructure:"encoding"`  // utf-8 | latin1 | windows-1252
	SMILESColumn string `mapstructure:"smiles_column"`
}

// OutputConfig controls the report format and the optional survivor export.
type OutputConfig struct {
	Format          string `mapstructure:"format"` // text | json | yaml | table
	Export          string `mapstructure:"export"`
	ExportDelimiter string `mapstructure:"export_delimiter"`
}

// StageConfig is one screening stage: a SMARTS pattern applied to every record
// in either require or exclude mode.
type StageConfig struct {
	Name   string `mapstructure:"name"`
	Mode   string `mapstructure:"mode"`
	SMARTS string `mapstructure:"smarts"`
	// Reason is the phrase printed after "dropping N molecules due to".
	Reason string `mapstructure:"reason"`
}

// ScreeningConfig is the ordered stage list.
type ScreeningConfig struct {
	Stages []StageConfig `mapstructure:"stages"`
}

// PipelineConfig holds concurrency tunables.
type PipelineConfig struct {
	Workers   int `mapstructure:"workers"`
	ChunkSize int `mapstructure:"chunk_size"`
}

// MinIOConfig holds S3-compatible object storage parameters used for s3://
// input and export locations.
type MinIOConfig struct {
	Endpoint     string `mapstructure:"endpoint"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	UseSSL       bool   `mapstructure:"use_ssl"`
	Region       string `mapstructure:"region"`
	CreateBucket bool   `mapstructure:"create_bucket"`
}

// StorageConfig groups remote storage backends.
type StorageConfig struct {
	MinIO MinIOConfig `mapstructure:"minio"`
}

// MetricsConfig controls the Prometheus registry and its textfile export.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Textfile  string `mapstructure:"textfile"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "console"
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration object.  It is populated by the Loader and
// then passed by pointer to every component that needs it.
type Config struct {
	Input     InputConfig     `mapstructure:"input"`
	Output    OutputConfig    `mapstructure:"output"`
	Screening ScreeningConfig `mapstructure:"screening"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Log       LogConfig       `mapstructure:"log"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Output formats understood by the CLI.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

// Stage modes.
const (
	ModeRequire = "require"
	ModeExclude = "exclude"
)

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered as a CFG_001 AppError; callers treat
// any error as fatal.  SMARTS syntax is checked later when stages compile.
func (c *Config) Validate() error {
	// Input
	if strings.TrimSpace(c.Input.SMILESColumn) == "" {
		return invalid("input.smiles_column is required")
	}
	switch strings.ToLower(strings.TrimSpace(c.Input.Encoding)) {
	case "utf-8", "utf8", "latin1", "latin-1", "iso-8859-1", "iso8859-1", "windows-1252", "cp1252":
	default:
		return invalid("input.encoding %q is invalid; expected utf-8|latin1|windows-1252", c.Input.Encoding)
	}

	// Output
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML, FormatTable:
	default:
		return invalid("output.format %q is invalid; expected text|json|yaml|table", c.Output.Format)
	}

	// Screening
	if len(c.Screening.Stages) == 0 {
		return invalid("screening.stages must contain at least one stage")
	}
	seen := make(map[string]struct{}, len(c.Screening.Stages))
	for i, s := range c.Screening.Stages {
		if s.Name == "" {
			return invalid("screening.stages[%d].name is required", i)
		}
		if _, dup := seen[s.Name]; dup {
			return invalid("screening.stages[%d].name %q is duplicated", i, s.Name)
		}
		seen[s.Name] = struct{}{}
		switch s.Mode {
		case ModeRequire, ModeExclude:
		default:
			return invalid("screening.stages[%d].mode %q is invalid; expected require|exclude", i, s.Mode)
		}
		if strings.TrimSpace(s.SMARTS) == "" {
			return invalid("screening.stages[%d].smarts is required", i)
		}
	}

	// Pipeline
	if c.Pipeline.Workers < 1 {
		return invalid("pipeline.workers must be >= 1, got %d", c.Pipeline.Workers)
	}
	if c.Pipeline.ChunkSize < 1 {
		return invalid("pipeline.chunk_size must be >= 1, got %d", c.Pipeline.ChunkSize)
	}

	// Metrics
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return invalid("metrics.namespace is required when metrics are enabled")
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return invalid("log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}

// NeedsObjectStorage reports whether any configured location uses s3://.
func (c *Config) NeedsObjectStorage() bool {
	return strings.HasPrefix(c.Input.Path, "s3://") ||
		strings.HasPrefix(c.Output.Export, "s3://")
}

func invalid(format string, args ...interface{}) error {
	return errors.New(errors.ErrCodeConfigInvalid, "config: "+fmt.Sprintf(format, args...))
}

func defaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

//Personal.AI order the ending
