package query

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shaledb/shale/internal/colfmt"
	apperrors "github.com/shaledb/shale/internal/errors"
	"github.com/shaledb/shale/internal/parquet"
)

func TestService_New(t *testing.T) {
	svc, err := New("256MB")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer svc.Close()
}

func TestService_Query(t *testing.T) {
	svc, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer svc.Close()

	cols, rows, err := svc.Query(context.Background(), "SELECT 1 AS value, 2 AS other")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(cols) != 2 || cols[0] != "value" {
		t.Fatalf("columns: %v", cols)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
}

func TestService_RegisterParquet(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.shale")
	pq := filepath.Join(dir, "data.parquet")

	if err := colfmt.WriteColumn(src, "v", []int64{10, 20, 30}, 2, colfmt.TypeInt64); err != nil {
		t.Fatalf("WriteColumn: %v", err)
	}
	if _, err := parquet.ExportColumn(src, pq, "v", parquet.DefaultOptions()); err != nil {
		t.Fatalf("ExportColumn: %v", err)
	}

	svc, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer svc.Close()

	ctx := context.Background()
	if err := svc.RegisterParquet(ctx, "data", pq); err != nil {
		t.Fatalf("RegisterParquet: %v", err)
	}

	_, rows, err := svc.Query(ctx, "SELECT sum(v) FROM data")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
}

func TestService_RegisterRejectsBadName(t *testing.T) {
	svc, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer svc.Close()

	err = svc.RegisterParquet(context.Background(), "bad name; DROP", "/tmp/x.parquet")
	if !apperrors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
}

func TestEscapePath(t *testing.T) {
	if got := escapePath("/a/it's.parquet"); got != "/a/it''s.parquet" {
		t.Fatalf("escapePath: got %q", got)
	}
}
