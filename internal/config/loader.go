package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

const (
	envPrefix = "SIEVE"

	// DefaultConfigName is looked up in the working directory.
	DefaultConfigName = "scaffoldsieve.yaml"
	// DotEnvFile is loaded into the process environment when present.
	DotEnvFile = ".env"
)

// envKeys are the scalar keys that may be overridden through SIEVE_* variables,
// e.g. SIEVE_INPUT_PATH or SIEVE_STORAGE_MINIO_ENDPOINT.  Stage lists can only
// come from a file.
var envKeys = []string{
	"input.path", "input.delimiter", "input.encoding", "input.smiles_column",
	"output.format", "output.export", "output.export_delimiter",
	"pipeline.workers", "pipeline.chunk_size",
	"storage.minio.endpoint", "storage.minio.access_key", "storage.minio.secret_key",
	"storage.minio.use_ssl", "storage.minio.region", "storage.minio.create_bucket",
	"metrics.enabled", "metrics.namespace", "metrics.textfile",
	"log.level", "log.format",
}

// newViper creates a pre-configured viper instance with environment variable
// support.  Env keys use the SIEVE_ prefix and replace "." with "_".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range envKeys {
		_ = v.BindEnv(k)
	}
	return v
}

// SearchPaths returns the config files tried, in order, when no explicit path
// is given.
func SearchPaths() []string {
	paths := []string{DefaultConfigName}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".scaffoldsieve", "config.yaml"))
	}
	return paths
}

// Resolve returns the config file Load would read for configPath, or "" when
// only defaults and the environment apply.
func Resolve(configPath string) string {
	if configPath != "" {
		return configPath
	}
	for _, p := range SearchPaths() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Load reads configuration from configPath, overlays SIEVE_* environment
// variables, applies defaults and validates.  With an empty configPath the
// SearchPaths are tried and a missing file is not an error.
func Load(configPath string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := newViper()
	path := Resolve(configPath)
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigNotFound, "config: file not found").WithDetail("path=" + path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "config: failed to read file").WithDetail("path=" + path)
		}
	}
	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config from defaults and SIEVE_* environment variables
// only.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "config: failed to decode")
	}
	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotEnv merges .env into the process environment without overriding
// variables that are already set.
func loadDotEnv() error {
	if _, err := os.Stat(DotEnvFile); err != nil {
		return nil
	}
	if err := godotenv.Load(DotEnvFile); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "config: failed to parse .env")
	}
	return nil
}

// MustLoad is a convenience wrapper around Load that panics on any error.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic("config: MustLoad failed: " + err.Error())
	}
	return cfg
}

//Personal.AI order the ending
