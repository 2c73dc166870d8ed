// Package loader handles configuration file loading and validation for the
// shale CLI.
//
// Configuration is optional; every value has a documented default in the
// config package and the file only overrides what it names. Environment
// variables are expanded before parsing.
package loader

import (
	"fmt"
	"os"

	"github.com/shaledb/shale/config"
	"github.com/shaledb/shale/internal/errors"
	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration.
type Config struct {
	Log   LogConfig   `yaml:"log"`
	Read  ReadConfig  `yaml:"read"`
	Write WriteConfig `yaml:"write"`
	Query QueryConfig `yaml:"query"`
}

// LogConfig controls logging output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// JSON switches output from text to JSON.
	JSON bool `yaml:"json"`
}

// ReadConfig controls the read path.
type ReadConfig struct {
	// BatchSize is the per-call decode batch size.
	BatchSize int `yaml:"batch_size"`
}

// WriteConfig controls the write path.
type WriteConfig struct {
	// RowGroupSize is the number of rows per row group.
	RowGroupSize int `yaml:"row_group_size"`
}

// QueryConfig controls the DuckDB query service.
type QueryConfig struct {
	// MemoryLimit is passed to DuckDB, e.g. "512MB".
	MemoryLimit string `yaml:"memory_limit"`
}

// DefaultConfig returns a config populated with the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Log:   LogConfig{Level: "info"},
		Read:  ReadConfig{BatchSize: config.DefaultBatchSize},
		Write: WriteConfig{RowGroupSize: config.DefaultRowGroupSize},
		Query: QueryConfig{MemoryLimit: config.DefaultQueryMemoryLimit},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	// Start with defaults
	cfg := DefaultConfig()

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configured values against their documented ranges.
func (c *Config) Validate() error {
	if c.Read.BatchSize < 1 || c.Read.BatchSize > config.MaxBatchSize {
		return errors.NewInvalidArgument("read.batch_size",
			fmt.Sprintf("must be between 1 and %d", config.MaxBatchSize))
	}
	if c.Write.RowGroupSize < 1 || c.Write.RowGroupSize > config.MaxRowGroupSize {
		return errors.NewInvalidArgument("write.row_group_size",
			fmt.Sprintf("must be between 1 and %d", config.MaxRowGroupSize))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.NewInvalidArgument("log.level", "must be debug, info, warn or error")
	}
	return nil
}
