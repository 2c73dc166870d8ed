package shale

import (
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/shaledb/shale/internal/errors"
)

func writeTestFile(t *testing.T, values []int64, rowGroupSize int, typ Type) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.shale")
	if err := WriteColumn(path, "data", values, rowGroupSize, typ); err != nil {
		t.Fatalf("WriteColumn: %v", err)
	}
	return path
}

func TestWriteThenReadBack(t *testing.T) {
	values := []int64{5, -10, 0, 999999999999}
	path := writeTestFile(t, values, 3, Int64)

	rows, err := GetNumRows(path)
	if err != nil {
		t.Fatalf("GetNumRows: %v", err)
	}
	if rows != int64(len(values)) {
		t.Fatalf("GetNumRows: got %d, want %d", rows, len(values))
	}

	typ, err := GetColumnType(path, "data")
	if err != nil {
		t.Fatalf("GetColumnType: %v", err)
	}
	if typ != Int64 {
		t.Fatalf("GetColumnType: got %v, want Int64", typ)
	}

	dst := make([]int64, rows)
	n, err := ReadColumn(path, "data", dst, 0)
	if err != nil {
		t.Fatalf("ReadColumn: %v", err)
	}
	if n != len(values) {
		t.Fatalf("ReadColumn: got %d values, want %d", n, len(values))
	}
	if Code(err) != apperrors.CodeOK {
		t.Fatalf("Code(nil): got %d, want %d", Code(err), apperrors.CodeOK)
	}
	for i, v := range dst {
		if v != values[i] {
			t.Fatalf("value %d: got %d, want %d", i, v, values[i])
		}
	}
}

func TestUint64ColumnReportsUint64(t *testing.T) {
	big := uint64(1<<63 + 17)
	path := writeTestFile(t, []int64{int64(big)}, 1, Uint64)

	typ, err := GetColumnType(path, "data")
	if err != nil {
		t.Fatalf("GetColumnType: %v", err)
	}
	if typ != Uint64 {
		t.Fatalf("got %v, want Uint64", typ)
	}

	dst := make([]int64, 1)
	if _, err := ReadColumn(path, "data", dst, 1); err != nil {
		t.Fatalf("ReadColumn: %v", err)
	}
	if uint64(dst[0]) != big {
		t.Fatalf("got %d, want %d", uint64(dst[0]), big)
	}
}

func TestEmptyColumn(t *testing.T) {
	path := writeTestFile(t, nil, 4, Int64)

	rows, err := GetNumRows(path)
	if err != nil {
		t.Fatalf("GetNumRows: %v", err)
	}
	if rows != 0 {
		t.Fatalf("GetNumRows: got %d, want 0", rows)
	}
	n, err := ReadColumn(path, "data", nil, 0)
	if err != nil || n != 0 {
		t.Fatalf("ReadColumn: n=%d err=%v", n, err)
	}
}

func TestColumnNotFoundNamesPathAndColumn(t *testing.T) {
	path := writeTestFile(t, []int64{1}, 1, Int64)

	_, err := GetColumnType(path, "absent")
	if !apperrors.Is(err, apperrors.ErrColumnNotFound) {
		t.Fatalf("got %v, want ErrColumnNotFound", err)
	}
	if !strings.Contains(err.Error(), "absent") || !strings.Contains(err.Error(), path) {
		t.Fatalf("message %q does not name column and path", err.Error())
	}
	if Code(err) != apperrors.CodeColumnNotFound {
		t.Fatalf("Code: got %d, want %d", Code(err), apperrors.CodeColumnNotFound)
	}
}

func TestMissingFileMapsToOpenFailed(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.shale")

	if _, err := GetNumRows(missing); Code(err) != apperrors.CodeOpenFailed {
		t.Fatalf("GetNumRows: got code %d, want %d", Code(err), apperrors.CodeOpenFailed)
	}
	if _, err := GetColumnType(missing, "c"); Code(err) != apperrors.CodeOpenFailed {
		t.Fatalf("GetColumnType: got code %d, want %d", Code(err), apperrors.CodeOpenFailed)
	}
	if _, err := ReadColumn(missing, "c", make([]int64, 1), 1); Code(err) != apperrors.CodeOpenFailed {
		t.Fatalf("ReadColumn: got code %d, want %d", Code(err), apperrors.CodeOpenFailed)
	}
}

func TestWriteColumnRejectsBadArguments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.shale")

	if err := WriteColumn(path, "data", []int64{1}, 0, Int64); Code(err) != apperrors.CodeInvalidArgument {
		t.Fatalf("zero row group size: got code %d", Code(err))
	}
	if err := WriteColumn(path, "data", []int64{1}, 1, Timestamp); Code(err) != apperrors.CodeInvalidArgument {
		t.Fatalf("timestamp declared type: got code %d", Code(err))
	}
}

func TestBoundaryError(t *testing.T) {
	if AsBoundaryError(nil) != nil {
		t.Fatal("AsBoundaryError(nil) != nil")
	}

	src := apperrors.NewColumnNotFound("/f.shale", "c")
	be := AsBoundaryError(src)
	if be.Code != apperrors.CodeColumnNotFound {
		t.Fatalf("Code: got %d, want %d", be.Code, apperrors.CodeColumnNotFound)
	}
	if be.Kind() != "ColumnNotFound" {
		t.Fatalf("Kind: got %q", be.Kind())
	}
	if be.Error() != src.Error() {
		t.Fatalf("Error: got %q, want %q", be.Error(), src.Error())
	}

	be.Release()
	if be.Message != "" || be.Code != 0 {
		t.Fatalf("Release left %+v", be)
	}
}

func TestVersionNonEmpty(t *testing.T) {
	if Version() == "" {
		t.Fatal("Version returned empty string")
	}
}
