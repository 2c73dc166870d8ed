package colfmt

import "github.com/shaledb/shale/internal/errors"

// RowGroupCursor iterates one column's chunks across a file's row groups in
// file order. A cursor is finite and not restartable; construct a fresh one
// to scan again.
type RowGroupCursor struct {
	file *File
	col  int
	pos  int
}

// NewRowGroupCursor creates a cursor over the column at index col. The
// index check is defensive: resolution happens by name before a cursor is
// built, so an out-of-range index here is a bug upstream, reported as
// IndexOutOfRange rather than a user-facing condition.
func NewRowGroupCursor(f *File, col int) (*RowGroupCursor, error) {
	if col < 0 || col >= f.schema.NumColumns() {
		return nil, errors.NewIndexOutOfRange(col, f.schema.NumColumns())
	}
	return &RowGroupCursor{file: f, col: col, pos: -1}, nil
}

// Next advances to the next row group. It returns false when the groups are
// exhausted.
func (c *RowGroupCursor) Next() bool {
	if c.pos+1 >= len(c.file.groups) {
		c.pos = len(c.file.groups)
		return false
	}
	c.pos++
	return true
}

// Rows returns the row count of the current group.
func (c *RowGroupCursor) Rows() int {
	return c.file.groups[c.pos].rows
}

// Chunk reads the current group's chunk for the cursor's column and returns
// a decoder positioned at its first value.
func (c *RowGroupCursor) Chunk() (*ChunkReader, error) {
	group := c.file.groups[c.pos]
	data, err := c.file.readChunk(group.chunks[c.col])
	if err != nil {
		return nil, err
	}
	return newChunkReader(c.file.schema.Column(c.col).Type, data, group.rows, c.file.path)
}
