// Package shale exposes a narrow columnar read/write surface over shale
// files: row count, column type discovery, whole-column reads and
// single-column writes. It is the Go face of a boundary designed to be
// re-exported through a C-compatible shim; every operation takes a file
// path and plain buffers, and every failure maps to a small closed set of
// result kinds.
//
// Buffer sizing is the caller's contract: ReadColumn writes at most
// len(dst) values and a buffer smaller than the file's row count truncates
// the read. No operation retains a reference to a caller buffer past the
// call.
package shale

import (
	"github.com/shaledb/shale/config"
	"github.com/shaledb/shale/internal/colfmt"
	"github.com/shaledb/shale/internal/errors"
)

// Type is the physical type of a column as the catalog reports it.
type Type = colfmt.PhysicalType

// The supported physical types. Anything else in a file reports as
// Undefined, which is a value, not an error: the caller decides whether an
// undefined column is a problem.
const (
	Undefined = colfmt.TypeUndefined
	Int32     = colfmt.TypeInt32
	Int64     = colfmt.TypeInt64
	Uint64    = colfmt.TypeUint64
	Timestamp = colfmt.TypeTimestamp
)

// GetNumRows returns the total row count across all row groups, read from
// the file's footer metadata alone; no chunk data is touched.
func GetNumRows(path string) (int64, error) {
	f, err := colfmt.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return f.NumRows(), nil
}

// GetColumnType returns the declared physical type of the named column.
// A column outside the supported set reports Undefined with a nil error;
// an absent column fails with a ColumnNotFound error whose message carries
// both the file path and the column name.
func GetColumnType(path, column string) (Type, error) {
	f, err := colfmt.Open(path)
	if err != nil {
		return Undefined, err
	}
	defer f.Close()

	_, typ, err := f.ResolveColumn(column)
	if err != nil {
		return Undefined, err
	}
	switch typ {
	case Int32, Int64, Uint64, Timestamp:
		return typ, nil
	default:
		return Undefined, nil
	}
}

// ReadColumn decodes the named column into dst, batchSize values at a
// time, and returns the number of values written. Narrow on-disk values
// widen with sign extension; uint64 columns return their bit patterns in
// the int64 buffer for the caller to reinterpret. batchSize below 1 falls
// back to the configured default.
func ReadColumn(path, column string, dst []int64, batchSize int) (int, error) {
	if batchSize < 1 {
		batchSize = config.DefaultBatchSize
	}
	if batchSize > config.MaxBatchSize {
		batchSize = config.MaxBatchSize
	}

	f, err := colfmt.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return colfmt.ReadColumn(f, column, dst, batchSize)
}

// WriteColumn writes values as a new single-column file at path, slicing
// the input into row groups of rowGroupSize. The written schema holds
// exactly one column, so the operation takes no column index; the name
// alone identifies the column. typ must be Int64 or Uint64;
// the unsigned case stores the signed bit pattern unchanged, which the
// catalog still reports as Uint64. An existing file at path is replaced.
//
// A finalize failure after data has been appended leaves the file in an
// indeterminate state; the error reports it and nothing attempts repair.
func WriteColumn(path, column string, values []int64, rowGroupSize int, typ Type) error {
	return colfmt.WriteColumn(path, column, values, rowGroupSize, typ)
}

// Version returns the version string of the underlying format library.
func Version() string {
	return colfmt.Version()
}

// Code re-exports the boundary result code for an error, for callers that
// speak codes rather than sentinel errors.
func Code(err error) int32 {
	return errors.ErrorToCode(err)
}
