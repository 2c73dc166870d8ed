package colfmt

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"os"

	"github.com/shaledb/shale/config"
	"github.com/shaledb/shale/internal/errors"
)

// FileWriter writes a shale file: header, then column chunks row group by
// row group, then footer and trailer on Close. Chunks are streamed through
// a buffered writer; only the footer index is held in memory.
//
// A writer is used by one caller, start to finish. The write protocol
// mirrors the read side: append a row group, then write exactly one chunk
// per schema column in order, then the next group. Close fails if a group
// is incomplete.
type FileWriter struct {
	path   string
	f      *os.File
	w      *bufio.Writer
	pos    int64
	schema *Schema
	groups []rowGroupInfo
	open   *RowGroupWriter
	closed bool
}

// Create creates (or truncates) a shale file with the given schema and
// writes its header.
func Create(path string, schema *Schema) (*FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.NewWriteFailed(path, err)
	}

	w := &FileWriter{
		path:   path,
		f:      f,
		w:      bufio.NewWriterSize(f, config.WriteBufferSize),
		schema: schema,
	}
	if _, err := w.w.Write(encodeHeader()); err != nil {
		f.Close()
		return nil, errors.NewWriteFailed(path, err)
	}
	w.pos = headerSize
	return w, nil
}

// Schema returns the writer's schema.
func (w *FileWriter) Schema() *Schema {
	return w.schema
}

// AppendRowGroup starts a new row group of exactly rows rows. The previous
// group must have received a chunk for every column.
func (w *FileWriter) AppendRowGroup(rows int) (*RowGroupWriter, error) {
	if w.closed {
		return nil, errors.NewWriteFailed(w.path, fmt.Errorf("writer is closed"))
	}
	if rows <= 0 {
		return nil, errors.NewInvalidArgument("row group", "row count must be positive")
	}
	if w.open != nil && !w.open.complete() {
		return nil, errors.NewWriteFailed(w.path,
			fmt.Errorf("row group %d is missing column chunks", len(w.groups)))
	}
	g := &RowGroupWriter{
		w:      w,
		rows:   rows,
		chunks: make([]chunkInfo, 0, w.schema.NumColumns()),
	}
	w.open = g
	return g, nil
}

// Close finalizes the file: footer, trailer, flush, close. Both finalize
// steps must succeed; a failure after chunk data has been appended leaves
// the file indeterminate and is reported, not repaired.
func (w *FileWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	firstErr := w.finalize()
	if err := w.f.Close(); err != nil && firstErr == nil {
		firstErr = errors.NewWriteFailed(w.path, err)
	}
	return firstErr
}

func (w *FileWriter) finalize() error {
	if w.open != nil && !w.open.complete() {
		return errors.NewWriteFailed(w.path,
			fmt.Errorf("row group %d is missing column chunks", len(w.groups)))
	}

	footer := encodeFooter(w.schema.columns, w.groups)
	if _, err := w.w.Write(footer); err != nil {
		return errors.NewWriteFailed(w.path, err)
	}
	if _, err := w.w.Write(encodeTrailer(len(footer))); err != nil {
		return errors.NewWriteFailed(w.path, err)
	}
	if err := w.w.Flush(); err != nil {
		return errors.NewWriteFailed(w.path, err)
	}
	return nil
}

// writeChunk appends an encoded chunk payload and records its location.
func (w *FileWriter) writeChunk(payload []byte) (chunkInfo, error) {
	info := chunkInfo{
		offset: w.pos,
		length: uint32(len(payload)),
		crc:    crc32.ChecksumIEEE(payload),
	}
	if _, err := w.w.Write(payload); err != nil {
		return chunkInfo{}, errors.NewWriteFailed(w.path, err)
	}
	w.pos += int64(len(payload))
	return info, nil
}

// RowGroupWriter writes the column chunks of one row group in schema order.
type RowGroupWriter struct {
	w      *FileWriter
	rows   int
	chunks []chunkInfo
}

func (g *RowGroupWriter) complete() bool {
	return len(g.chunks) == g.w.schema.NumColumns()
}

// NextColumn returns the chunk writer for the next column in schema order,
// mirroring the read side's per-column cursor.
func (g *RowGroupWriter) NextColumn() (*ChunkWriter, error) {
	if g.complete() {
		return nil, errors.NewIndexOutOfRange(len(g.chunks), g.w.schema.NumColumns())
	}
	col := g.w.schema.Column(len(g.chunks))
	return &ChunkWriter{group: g, col: col}, nil
}

// ChunkWriter encodes one column chunk. Exactly one Write call is allowed
// and it must supply one value per row of the group.
type ChunkWriter struct {
	group *RowGroupWriter
	col   Column
	done  bool
}

// WriteInt64 encodes a chunk for the 8-byte integer types (int64, uint64,
// timestamp). Unsigned values arrive as their int64 bit pattern and are
// stored unchanged.
func (c *ChunkWriter) WriteInt64(values []int64) error {
	if err := c.check(len(values), TypeInt64, TypeUint64, TypeTimestamp); err != nil {
		return err
	}
	payload := make([]byte, 0, len(values)*8)
	for _, v := range values {
		payload = binary.LittleEndian.AppendUint64(payload, uint64(v))
	}
	return c.commit(payload)
}

// WriteInt32 encodes a chunk for an int32 column at its native 4-byte
// width.
func (c *ChunkWriter) WriteInt32(values []int32) error {
	if err := c.check(len(values), TypeInt32); err != nil {
		return err
	}
	payload := make([]byte, 0, len(values)*4)
	for _, v := range values {
		payload = binary.LittleEndian.AppendUint32(payload, uint32(v))
	}
	return c.commit(payload)
}

// WriteFloat64 encodes a chunk for a float64 column. Such columns are
// storable (the Parquet importer produces them) but not decodable through
// the column read path.
func (c *ChunkWriter) WriteFloat64(bits []uint64) error {
	if err := c.check(len(bits), TypeFloat64); err != nil {
		return err
	}
	payload := make([]byte, 0, len(bits)*8)
	for _, v := range bits {
		payload = binary.LittleEndian.AppendUint64(payload, v)
	}
	return c.commit(payload)
}

func (c *ChunkWriter) check(n int, allowed ...PhysicalType) error {
	if c.done {
		return errors.NewWriteFailed(c.group.w.path, fmt.Errorf("column %q: chunk already written", c.col.Name))
	}
	ok := false
	for _, t := range allowed {
		if c.col.Type == t {
			ok = true
			break
		}
	}
	if !ok {
		return errors.NewInvalidArgument("column values",
			fmt.Sprintf("column %q has type %s", c.col.Name, c.col.Type))
	}
	if n != c.group.rows {
		return errors.NewInvalidArgument("column values",
			fmt.Sprintf("column %q: %d values for a row group of %d rows", c.col.Name, n, c.group.rows))
	}
	return nil
}

func (c *ChunkWriter) commit(payload []byte) error {
	info, err := c.group.w.writeChunk(payload)
	if err != nil {
		return err
	}
	c.group.chunks = append(c.group.chunks, info)
	c.done = true
	if c.group.complete() {
		c.group.w.groups = append(c.group.w.groups, rowGroupInfo{
			rows:   c.group.rows,
			chunks: c.group.chunks,
		})
	}
	return nil
}

// WriteColumn writes values as a new single-column file, slicing the input
// into consecutive row groups of rowGroupSize (the final group may be
// shorter). The declared type must be int64 or uint64; the unsigned case
// shares the signed wire representation, so values pass through as bit
// patterns. Zero values produce a valid empty file.
func WriteColumn(path, column string, values []int64, rowGroupSize int, typ PhysicalType) error {
	if typ != TypeInt64 && typ != TypeUint64 {
		return errors.NewInvalidArgument("declared type",
			fmt.Sprintf("must be int64 or uint64, got %s", typ))
	}
	if rowGroupSize < 1 {
		return errors.NewInvalidArgument("row group size", "must be at least 1")
	}
	if rowGroupSize > config.MaxRowGroupSize {
		return errors.NewInvalidArgument("row group size",
			fmt.Sprintf("must not exceed %d", config.MaxRowGroupSize))
	}

	schema, err := NewSchema([]Column{{Name: column, Type: typ}})
	if err != nil {
		return err
	}
	w, err := Create(path, schema)
	if err != nil {
		return err
	}

	left := len(values)
	i := 0
	for left > 0 {
		n := rowGroupSize
		if left < n {
			n = left
		}
		g, err := w.AppendRowGroup(n)
		if err != nil {
			w.Close()
			return err
		}
		cw, err := g.NextColumn()
		if err != nil {
			w.Close()
			return err
		}
		if err := cw.WriteInt64(values[i : i+n]); err != nil {
			w.Close()
			return err
		}
		i += n
		left -= n
	}

	return w.Close()
}
