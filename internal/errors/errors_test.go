package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestErrorToCode(t *testing.T) {
	tests := []struct {
		err  error
		code int32
	}{
		{nil, CodeOK},
		{ErrOpenFailed, CodeOpenFailed},
		{ErrColumnNotFound, CodeColumnNotFound},
		{ErrUnsupportedType, CodeUnsupportedType},
		{ErrIndexOutOfRange, CodeIndexOutOfRange},
		{ErrWriteFailed, CodeWriteFailed},
		{ErrInvalidArgument, CodeInvalidArgument},
		{fmt.Errorf("something else"), CodeUnknown},
	}
	for _, tt := range tests {
		if got := ErrorToCode(tt.err); got != tt.code {
			t.Errorf("ErrorToCode(%v) = %d, want %d", tt.err, got, tt.code)
		}
	}
}

func TestErrorToCodeUnwrapsChains(t *testing.T) {
	err := Wrap(NewColumnNotFound("/tmp/x.shale", "col"), "read")
	if got := ErrorToCode(err); got != CodeColumnNotFound {
		t.Fatalf("got code %d, want %d", got, CodeColumnNotFound)
	}
}

func TestCodeToErrorRoundTrip(t *testing.T) {
	for code := CodeOpenFailed; code <= CodeInvalidArgument; code++ {
		err := CodeToError(code)
		if err == nil {
			t.Fatalf("CodeToError(%d) = nil", code)
		}
		if got := ErrorToCode(err); got != code {
			t.Errorf("code %d round-tripped to %d", code, got)
		}
	}
}

func TestColumnNotFoundMessage(t *testing.T) {
	err := NewColumnNotFound("/data/file.shale", "missing_col")
	msg := err.Error()
	if !strings.Contains(msg, "missing_col") {
		t.Errorf("message %q does not name the column", msg)
	}
	if !strings.Contains(msg, "/data/file.shale") {
		t.Errorf("message %q does not name the file", msg)
	}
	if !Is(err, ErrColumnNotFound) {
		t.Error("error does not match ErrColumnNotFound")
	}
}

func TestConstructorsMatchSentinels(t *testing.T) {
	tests := []struct {
		err      error
		sentinel error
	}{
		{NewOpenFailed("/a", fmt.Errorf("eperm")), ErrOpenFailed},
		{NewCorruptFile("/a", "bad magic"), ErrOpenFailed},
		{NewUnsupportedType("/a", "c", "timestamp"), ErrUnsupportedType},
		{NewIndexOutOfRange(9, 3), ErrIndexOutOfRange},
		{NewWriteFailed("/a", fmt.Errorf("enospc")), ErrWriteFailed},
		{NewInvalidArgument("batch size", "must be positive"), ErrInvalidArgument},
	}
	for _, tt := range tests {
		if !Is(tt.err, tt.sentinel) {
			t.Errorf("%v does not match its sentinel", tt.err)
		}
	}
}

func TestClassifiers(t *testing.T) {
	if !IsNotFound(NewColumnNotFound("/a", "c")) {
		t.Error("IsNotFound(ColumnNotFound) = false")
	}
	if IsNotFound(ErrWriteFailed) {
		t.Error("IsNotFound(WriteFailed) = true")
	}
	if !IsUserFacing(ErrInvalidArgument) {
		t.Error("IsUserFacing(InvalidArgument) = false")
	}
	if !IsInternal(ErrIndexOutOfRange) {
		t.Error("IsInternal(IndexOutOfRange) = false")
	}
}

func TestCodeName(t *testing.T) {
	if got := CodeName(CodeOK); got != "OK" {
		t.Errorf("CodeName(CodeOK) = %q, want OK", got)
	}
	for code := CodeUnknown; code <= CodeInvalidArgument; code++ {
		if name := CodeName(code); name == "" || name == "unknown code" {
			t.Errorf("CodeName(%d) = %q", code, name)
		}
	}
}
