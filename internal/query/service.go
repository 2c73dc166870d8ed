// Package query provides SQL over exported Parquet files using DuckDB.
//
// The shale format itself has no query surface; analysis runs against
// Parquet exports, which DuckDB reads natively via read_parquet.
package query

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/shaledb/shale/internal/errors"
)

// Service wraps an in-memory DuckDB database configured for querying
// Parquet files.
type Service struct {
	db *sql.DB
}

// New creates a new query service. memoryLimit is passed to DuckDB when
// non-empty, e.g. "512MB".
func New(memoryLimit string) (*Service, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	if memoryLimit != "" {
		if _, err := db.Exec(fmt.Sprintf("SET memory_limit='%s'", memoryLimit)); err != nil {
			db.Close()
			return nil, fmt.Errorf("set memory limit: %w", err)
		}
	}

	return &Service{db: db}, nil
}

// Close closes the query service.
func (s *Service) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// RegisterParquet exposes a Parquet file as a view so queries can refer to
// it by name instead of repeating the path.
func (s *Service) RegisterParquet(ctx context.Context, name, path string) error {
	if !identPattern.MatchString(name) {
		return errors.NewInvalidArgument("view name", "must be a plain identifier")
	}
	stmt := fmt.Sprintf("CREATE OR REPLACE VIEW %s AS SELECT * FROM read_parquet('%s')",
		name, escapePath(path))
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("register %s: %w", path, err)
	}
	return nil
}

// Query runs a SQL statement and returns column names plus all rows.
// Results are fully materialized; this service is a CLI convenience, not a
// streaming API.
func (s *Service) Query(ctx context.Context, q string) ([]string, [][]any, error) {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("columns: %w", err)
	}

	var out [][]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("rows: %w", err)
	}
	return cols, out, nil
}

// escapePath doubles single quotes for use inside a SQL string literal.
func escapePath(path string) string {
	return strings.ReplaceAll(path, "'", "''")
}
