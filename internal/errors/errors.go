// Package errors defines the error taxonomy for the shale store.
//
// Every fallible operation in the store maps its failure to exactly one of
// the sentinel errors below before it reaches a caller. The boundary layer
// turns a sentinel into a numeric result code plus an owned message, which
// is the only error shape that crosses out of the library.
package errors

import (
	"errors"
	"fmt"
)

// ============================================================================
// Boundary result codes
// ============================================================================

const (
	// CodeOK is the success code; only a nil error maps to it.
	CodeOK              int32 = 0
	CodeUnknown         int32 = 1
	CodeOpenFailed      int32 = 2
	CodeColumnNotFound  int32 = 3
	CodeUnsupportedType int32 = 4
	CodeIndexOutOfRange int32 = 5
	CodeWriteFailed     int32 = 6
	CodeInvalidArgument int32 = 7
)

// CodeName returns a human-readable name for a boundary result code.
func CodeName(code int32) string {
	switch code {
	case CodeOK:
		return "OK"
	case CodeUnknown:
		return "Unknown"
	case CodeOpenFailed:
		return "OpenFailed"
	case CodeColumnNotFound:
		return "ColumnNotFound"
	case CodeUnsupportedType:
		return "UnsupportedType"
	case CodeIndexOutOfRange:
		return "IndexOutOfRange"
	case CodeWriteFailed:
		return "WriteFailed"
	case CodeInvalidArgument:
		return "InvalidArgument"
	default:
		return fmt.Sprintf("Code(%d)", code)
	}
}

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	// ErrOpenFailed covers a missing, unreadable, truncated or corrupt file.
	ErrOpenFailed = errors.New("open failed")

	// ErrColumnNotFound is the expected, recoverable outcome of asking for a
	// column name the schema does not contain.
	ErrColumnNotFound = errors.New("column not found")

	// ErrUnsupportedType means the column exists but its physical type is
	// outside the set the read path decodes.
	ErrUnsupportedType = errors.New("unsupported column type")

	// ErrIndexOutOfRange marks an internal invariant violation: a column
	// index past the schema width reached a layer that should never see one.
	ErrIndexOutOfRange = errors.New("column index out of range")

	// ErrWriteFailed covers encode and finalize failures on the write path.
	ErrWriteFailed = errors.New("write failed")

	// ErrInvalidArgument covers caller-supplied values that fail validation
	// before any I/O happens.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ============================================================================
// Helper functions for error checking
// ============================================================================

// Is is a convenience wrapper for errors.Is
var Is = errors.Is

// As is a convenience wrapper for errors.As
var As = errors.As

// IsNotFound returns true if err is a column-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrColumnNotFound)
}

// IsUserFacing returns true for errors that represent a normal, recoverable
// outcome rather than corruption or an internal bug.
func IsUserFacing(err error) bool {
	return errors.Is(err, ErrColumnNotFound) ||
		errors.Is(err, ErrUnsupportedType) ||
		errors.Is(err, ErrInvalidArgument)
}

// IsInternal returns true for errors that indicate a bug in the caller or
// the store itself, as opposed to an environmental condition.
func IsInternal(err error) bool {
	return errors.Is(err, ErrIndexOutOfRange)
}

// ============================================================================
// Error to boundary code mapping
// ============================================================================

// ErrorToCode maps a sentinel error to its boundary result code. A nil
// error is success and maps to CodeOK.
func ErrorToCode(err error) int32 {
	switch {
	case err == nil:
		return CodeOK
	case Is(err, ErrOpenFailed):
		return CodeOpenFailed
	case Is(err, ErrColumnNotFound):
		return CodeColumnNotFound
	case Is(err, ErrUnsupportedType):
		return CodeUnsupportedType
	case Is(err, ErrIndexOutOfRange):
		return CodeIndexOutOfRange
	case Is(err, ErrWriteFailed):
		return CodeWriteFailed
	case Is(err, ErrInvalidArgument):
		return CodeInvalidArgument
	default:
		return CodeUnknown
	}
}

// CodeToError maps a boundary code back to its sentinel error.
func CodeToError(code int32) error {
	switch code {
	case CodeOpenFailed:
		return ErrOpenFailed
	case CodeColumnNotFound:
		return ErrColumnNotFound
	case CodeUnsupportedType:
		return ErrUnsupportedType
	case CodeIndexOutOfRange:
		return ErrIndexOutOfRange
	case CodeWriteFailed:
		return ErrWriteFailed
	case CodeInvalidArgument:
		return ErrInvalidArgument
	default:
		return errors.New(CodeName(code))
	}
}

// ============================================================================
// Error wrapping utilities
// ============================================================================

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ============================================================================
// Error constructors with context
// ============================================================================

// NewOpenFailed creates an open-failed error carrying the file path and the
// underlying cause.
func NewOpenFailed(path string, cause error) error {
	return fmt.Errorf("file %s: %v: %w", path, cause, ErrOpenFailed)
}

// NewCorruptFile creates an open-failed error for a structurally invalid
// file. Corruption reports through the same kind as open failures; the
// message carries the detail.
func NewCorruptFile(path, detail string) error {
	return fmt.Errorf("file %s: %s: %w", path, detail, ErrOpenFailed)
}

// NewColumnNotFound creates a column-not-found error. The message includes
// both the column name and the file path so the caller can surface it as-is.
func NewColumnNotFound(path, column string) error {
	return fmt.Errorf("column %q does not exist in file %s: %w", column, path, ErrColumnNotFound)
}

// NewUnsupportedType creates an unsupported-type error for a column whose
// physical type the read path does not decode.
func NewUnsupportedType(path, column, typeName string) error {
	return fmt.Errorf("column %q in file %s has unsupported type %s: %w", column, path, typeName, ErrUnsupportedType)
}

// NewIndexOutOfRange creates an index-out-of-range error. Callers treat this
// as a bug, not an environmental condition.
func NewIndexOutOfRange(index, width int) error {
	return fmt.Errorf("column index %d outside schema of %d columns: %w", index, width, ErrIndexOutOfRange)
}

// NewWriteFailed creates a write-failed error carrying the file path and the
// underlying cause.
func NewWriteFailed(path string, cause error) error {
	return fmt.Errorf("file %s: %v: %w", path, cause, ErrWriteFailed)
}

// NewInvalidArgument creates a validation error for a caller-supplied value.
func NewInvalidArgument(field, reason string) error {
	return fmt.Errorf("invalid %s: %s: %w", field, reason, ErrInvalidArgument)
}
