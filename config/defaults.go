// Package config provides configuration defaults and utilities
// for the shale tools.
//
// This package defines all configurable constants with documented defaults.
// Users can override these values via shale.yaml or command line flags.
package config

// =============================================================================
// Read Defaults
// =============================================================================

const (
	// DefaultBatchSize is the number of values a column reader decodes per
	// batch. Larger batches cost more scratch memory on narrow columns.
	// Override via config: read.batch_size
	DefaultBatchSize = 8192

	// MaxBatchSize caps the per-call decode batch to keep scratch buffers
	// bounded.
	MaxBatchSize = 1 << 20
)

// =============================================================================
// Write Defaults
// =============================================================================

const (
	// DefaultRowGroupSize is the number of rows per row group when the caller
	// does not specify one. The final group may be shorter.
	// Override via config: write.row_group_size
	DefaultRowGroupSize = 64 * 1024

	// MaxRowGroupSize caps a single row group. One row group's chunk must be
	// held in memory on both the write and the read path.
	MaxRowGroupSize = 64 * 1024 * 1024

	// WriteBufferSize is the size of the buffered writer in front of the
	// output file.
	WriteBufferSize = 64 * 1024
)

// =============================================================================
// Query Defaults
// =============================================================================

const (
	// DefaultQueryMemoryLimit bounds DuckDB memory use for the query service.
	// Override via config: query.memory_limit
	DefaultQueryMemoryLimit = "1GB"
)

// =============================================================================
// CLI Defaults
// =============================================================================

const (
	// DefaultConfigPath is where the CLI looks for its optional config file.
	DefaultConfigPath = "shale.yaml"
)
