package parquet

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/shaledb/shale/internal/colfmt"
	"github.com/shaledb/shale/internal/errors"
)

// ExportColumn writes one readable shale column as a single-column Parquet
// file at parquetPath, preserving the source's row group boundaries. It
// returns the number of rows exported.
//
// Type mapping: int32 exports as INT32, int64 as INT64, uint64 as INT64
// with an unsigned annotation and the bit pattern unchanged, the same
// signed wire representation the shale format stores.
func ExportColumn(shalePath, parquetPath, column string, opts Options) (int64, error) {
	src, err := colfmt.Open(shalePath)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	idx, typ, err := src.ResolveColumn(column)
	if err != nil {
		return 0, err
	}
	if !typ.Readable() {
		return 0, errors.NewUnsupportedType(shalePath, column, typ.String())
	}

	node, err := exportNode(typ)
	if err != nil {
		return 0, err
	}
	schema := parquet.NewSchema("schema", parquet.Group{column: node})

	out, err := os.Create(parquetPath)
	if err != nil {
		return 0, errors.NewWriteFailed(parquetPath, err)
	}

	pw := parquet.NewWriter(out, schema, parquet.Compression(getCompression(opts.Compression)))

	cursor, err := colfmt.NewRowGroupCursor(src, idx)
	if err != nil {
		out.Close()
		return 0, err
	}

	var total int64
	batch := make([]int64, 0)
	for cursor.Next() {
		chunk, err := cursor.Chunk()
		if err != nil {
			out.Close()
			return 0, err
		}

		rows := cursor.Rows()
		if cap(batch) < rows {
			batch = make([]int64, rows)
		}
		batch = batch[:rows]
		n, _, err := chunk.DecodeBatch(batch, rows)
		if err != nil {
			out.Close()
			return 0, err
		}

		pqRows := make([]parquet.Row, n)
		for i := 0; i < n; i++ {
			pqRows[i] = parquet.Row{exportValue(typ, batch[i])}
		}
		if _, err := pw.WriteRows(pqRows); err != nil {
			out.Close()
			return 0, errors.NewWriteFailed(parquetPath, err)
		}
		// One Parquet row group per shale row group.
		if err := pw.Flush(); err != nil {
			out.Close()
			return 0, errors.NewWriteFailed(parquetPath, err)
		}
		total += int64(n)
	}

	if err := pw.Close(); err != nil {
		out.Close()
		return 0, errors.NewWriteFailed(parquetPath, err)
	}
	if err := out.Close(); err != nil {
		return 0, errors.NewWriteFailed(parquetPath, err)
	}
	return total, nil
}

func exportNode(typ colfmt.PhysicalType) (parquet.Node, error) {
	switch typ {
	case colfmt.TypeInt32:
		return parquet.Int(32), nil
	case colfmt.TypeInt64:
		return parquet.Int(64), nil
	case colfmt.TypeUint64:
		return parquet.Uint(64), nil
	default:
		return nil, errors.NewInvalidArgument("column type",
			fmt.Sprintf("%s cannot be exported", typ))
	}
}

// exportValue builds the Parquet value for one widened element. Decoded
// int32 values narrow back to their native width; 64-bit values pass
// through as bit patterns.
func exportValue(typ colfmt.PhysicalType, v int64) parquet.Value {
	if typ == colfmt.TypeInt32 {
		return parquet.Int32Value(int32(v)).Level(0, 0, 0)
	}
	return parquet.Int64Value(v).Level(0, 0, 0)
}
