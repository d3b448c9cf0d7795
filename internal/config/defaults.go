package config

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultInputPath    = "cache3_analog_hunters_and_scaffold_hoppers_from_10_hits.csv"
	DefaultEncoding     = "utf-8"
	DefaultSMILESColumn = "smiles"

	DefaultOutputFormat = FormatText

	DefaultChunkSize = 256

	DefaultMetricsNamespace = "scaffoldsieve"

	DefaultMinIORegion = "us-east-1"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// Default screening patterns.  The scaffold is the fused pyrimido-indole core
// shared by the hit series; the carboxylate matches both the acid and its
// anion.
const (
	DefaultScaffoldSMARTS    = "[c]1[n][c][n][c]2[nH][c]4[a][a][a][a][a]4[a]12"
	DefaultCarboxylateSMARTS = "[CX3](=O)[OX1H0-,OX2H1]"
)

// DefaultStages returns the stage list used when none is configured: keep
// records carrying the scaffold, then drop those with a carboxylate.
func DefaultStages() []StageConfig {
	return []StageConfig{
		{Name: "scaffold", Mode: ModeRequire, SMARTS: DefaultScaffoldSMARTS, Reason: "lack of scaffold"},
		{Name: "carboxylate", Mode: ModeExclude, SMARTS: DefaultCarboxylateSMARTS, Reason: "carboxylate"},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ApplyDefaults fills zero-value fields in cfg with well-known defaults.
// It must be called after unmarshalling raw config data and before Validate()
// so that optional-but-defaulted fields are never seen as missing.
// ─────────────────────────────────────────────────────────────────────────────

// ApplyDefaults fills every zero-value field in cfg with its default.
// Fields that have already been set (non-zero values) are left unchanged so
// that explicit configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Input ─────────────────────────────────────────────────────────────────
	if cfg.Input.Path == "" {
		cfg.Input.Path = DefaultInputPath
	}
	if cfg.Input.Encoding == "" {
		cfg.Input.Encoding = DefaultEncoding
	}
	if cfg.Input.SMILESColumn == "" {
		cfg.Input.SMILESColumn = DefaultSMILESColumn
	}

	// ── Output ────────────────────────────────────────────────────────────────
	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultOutputFormat
	}

	// ── Screening ─────────────────────────────────────────────────────────────
	if len(cfg.Screening.Stages) == 0 {
		cfg.Screening.Stages = DefaultStages()
	}
	for i := range cfg.Screening.Stages {
		if cfg.Screening.Stages[i].Reason == "" {
			cfg.Screening.Stages[i].Reason = cfg.Screening.Stages[i].Name
		}
	}

	// ── Pipeline ──────────────────────────────────────────────────────────────
	if cfg.Pipeline.Workers == 0 {
		cfg.Pipeline.Workers = defaultWorkers()
	}
	if cfg.Pipeline.ChunkSize == 0 {
		cfg.Pipeline.ChunkSize = DefaultChunkSize
	}

	// ── Storage ───────────────────────────────────────────────────────────────
	if cfg.Storage.MinIO.Region == "" {
		cfg.Storage.MinIO.Region = DefaultMinIORegion
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}

//Personal.AI order the ending
