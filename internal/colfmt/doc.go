// Package colfmt implements the shale columnar file format: a row-grouped,
// chunked, little-endian binary column format for fixed-width integer
// columns.
//
// A file is an ordered sequence of row groups; a row group holds one
// independently decodable column chunk per schema column. The footer at the
// end of the file carries the schema and the chunk index; a fixed trailer
// locates the footer. Readers decode one column at a time in fixed-size
// batches, widening narrow on-disk values to a single 8-byte output
// representation.
//
// The package provides:
//   - Schema / PhysicalType: the type catalog for column resolution
//   - FileWriter / RowGroupWriter / ChunkWriter: the write path
//   - File / RowGroupCursor / ChunkReader: the read path
//   - ReadColumn / WriteColumn: whole-column convenience operations
//
// Everything here is single-threaded and synchronous: one session per open
// file, no locking, no cancellation once an operation starts.
package colfmt
