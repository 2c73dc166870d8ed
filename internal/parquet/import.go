package parquet

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/shaledb/shale/internal/colfmt"
	"github.com/shaledb/shale/internal/errors"
	"github.com/shaledb/shale/internal/logging"
)

// ImportStats reports what an import produced.
type ImportStats struct {
	Path      string
	Columns   int
	RowGroups int
	Rows      int64
	// Skipped lists source columns left out because their Parquet type has
	// no shale mapping.
	Skipped []string
}

// ImportFile maps a Parquet file's supported leaf columns into a new shale
// file at shalePath, one shale row group per Parquet row group.
//
// Supported mappings: required INT32 → int32, required INT64 → int64
// (timestamp and unsigned annotations preserved as the timestamp and
// uint64 types), required DOUBLE → float64. Optional, repeated and other
// physical types are skipped with a log line; a file with no mappable
// column fails.
func ImportFile(parquetPath, shalePath string) (*ImportStats, error) {
	log := logging.Component("import")

	f, err := os.Open(parquetPath)
	if err != nil {
		return nil, errors.NewOpenFailed(parquetPath, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, errors.NewOpenFailed(parquetPath, err)
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, errors.NewOpenFailed(parquetPath, err)
	}

	// Map the source schema: keep supported leaves, remember their source
	// column indexes.
	var (
		columns []colfmt.Column
		srcIdx  []int
		skipped []string
	)
	for i, field := range pf.Schema().Fields() {
		typ := importType(field)
		if typ == colfmt.TypeUndefined {
			log.Warn("skipping column with no shale mapping",
				"file", parquetPath, "column", field.Name())
			skipped = append(skipped, field.Name())
			continue
		}
		columns = append(columns, colfmt.Column{Name: field.Name(), Type: typ})
		srcIdx = append(srcIdx, i)
	}
	if len(columns) == 0 {
		return nil, errors.NewInvalidArgument("parquet file", "no columns with a shale mapping")
	}

	schema, err := colfmt.NewSchema(columns)
	if err != nil {
		return nil, err
	}
	w, err := colfmt.Create(shalePath, schema)
	if err != nil {
		return nil, err
	}

	stats := &ImportStats{Path: shalePath, Columns: len(columns), Skipped: skipped}
	for _, rg := range pf.RowGroups() {
		rows := int(rg.NumRows())
		if rows == 0 {
			continue
		}
		g, err := w.AppendRowGroup(rows)
		if err != nil {
			w.Close()
			return nil, err
		}
		chunks := rg.ColumnChunks()
		for j, col := range columns {
			values, err := readChunkValues(chunks[srcIdx[j]], rows)
			if err != nil {
				w.Close()
				return nil, errors.Wrapf(err, "column %q", col.Name)
			}
			cw, err := g.NextColumn()
			if err != nil {
				w.Close()
				return nil, err
			}
			if err := writeChunk(cw, col.Type, values); err != nil {
				w.Close()
				return nil, err
			}
		}
		stats.RowGroups++
		stats.Rows += int64(rows)
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	log.Info("file imported", "from", parquetPath, "to", shalePath,
		"columns", stats.Columns, "rows", stats.Rows)
	return stats, nil
}

// importType maps a Parquet schema field to a shale physical type, or
// TypeUndefined when there is no mapping.
func importType(field parquet.Field) colfmt.PhysicalType {
	if !field.Leaf() || field.Optional() || field.Repeated() {
		return colfmt.TypeUndefined
	}
	t := field.Type()
	switch t.Kind() {
	case parquet.Int32:
		return colfmt.TypeInt32
	case parquet.Int64:
		if lt := t.LogicalType(); lt != nil {
			if lt.Timestamp != nil {
				return colfmt.TypeTimestamp
			}
			if lt.Integer != nil && !lt.Integer.IsSigned {
				return colfmt.TypeUint64
			}
		}
		return colfmt.TypeInt64
	case parquet.Double:
		return colfmt.TypeFloat64
	default:
		return colfmt.TypeUndefined
	}
}

// readChunkValues drains one column chunk into a value slice.
func readChunkValues(chunk parquet.ColumnChunk, rows int) ([]parquet.Value, error) {
	values := make([]parquet.Value, 0, rows)
	buf := make([]parquet.Value, 512)

	pages := chunk.Pages()
	defer pages.Close()
	for {
		page, err := pages.ReadPage()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read page: %w", err)
		}
		vr := page.Values()
		for {
			n, err := vr.ReadValues(buf)
			values = append(values, buf[:n]...)
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("read values: %w", err)
			}
		}
	}
	if len(values) != rows {
		return nil, fmt.Errorf("row group has %d values, expected %d", len(values), rows)
	}
	return values, nil
}

// writeChunk converts Parquet values to the column's shale representation
// and writes one chunk.
func writeChunk(cw *colfmt.ChunkWriter, typ colfmt.PhysicalType, values []parquet.Value) error {
	switch typ {
	case colfmt.TypeInt32:
		out := make([]int32, len(values))
		for i, v := range values {
			out[i] = v.Int32()
		}
		return cw.WriteInt32(out)
	case colfmt.TypeFloat64:
		out := make([]uint64, len(values))
		for i, v := range values {
			out[i] = math.Float64bits(v.Double())
		}
		return cw.WriteFloat64(out)
	default:
		// The three 8-byte integer types, including uint64 as its signed
		// bit pattern.
		out := make([]int64, len(values))
		for i, v := range values {
			out[i] = v.Int64()
		}
		return cw.WriteInt64(out)
	}
}
