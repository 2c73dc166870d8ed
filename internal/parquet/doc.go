// Package parquet implements interchange between shale files and Apache
// Parquet.
//
// The package provides:
//   - ExportColumn for writing one shale column as a single-column
//     Parquet file, preserving row group boundaries
//   - ImportFile for mapping a Parquet file's supported leaf columns
//     into a shale file, one row group per Parquet row group
//   - Support for multiple compression algorithms on export (snappy,
//     zstd, lz4, gzip)
//
// Unsigned 64-bit columns cross the boundary as their signed bit patterns
// under an unsigned annotation, the same convention the shale format uses
// on disk.
package parquet
