package shale

import "github.com/shaledb/shale/internal/errors"

// BoundaryError is the error shape that crosses the C-compatible boundary:
// a numeric result code plus an owned message string. Inside Go the message
// is garbage collected like any other string; the shim that re-exports this
// package duplicates Message into caller-owned memory and the caller frees
// it explicitly. Release models that handoff so the shim and tests share
// one lifecycle.
type BoundaryError struct {
	Code    int32
	Message string
}

// Error implements the error interface.
func (e *BoundaryError) Error() string {
	return e.Message
}

// Kind returns the human-readable name of the result code.
func (e *BoundaryError) Kind() string {
	return errors.CodeName(e.Code)
}

// Release gives the message back. After Release the error must not be
// used; the boundary contract is a single explicit free.
func (e *BoundaryError) Release() {
	e.Message = ""
	e.Code = 0
}

// AsBoundaryError converts any error from this package into the boundary
// shape. The returned value owns its message copy. A nil error returns
// nil.
func AsBoundaryError(err error) *BoundaryError {
	if err == nil {
		return nil
	}
	return &BoundaryError{
		Code:    errors.ErrorToCode(err),
		Message: err.Error(),
	}
}
