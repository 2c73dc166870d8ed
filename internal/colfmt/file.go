package colfmt

import (
	"fmt"
	"hash/crc32"
	"os"

	"github.com/shaledb/shale/internal/errors"
)

// File is an open shale file. A File is read-only and holds the parsed
// schema and row group index from the footer; chunk data is read on demand.
//
// A File is used by one logical caller at a time. Multiple independent
// read sessions may open the same path concurrently; no session may overlap
// a writer on the same path.
type File struct {
	path   string
	f      *os.File
	schema *Schema
	groups []rowGroupInfo
	rows   int64
}

// Open opens a shale file and parses its footer. All structural problems
// (bad magic, truncation, unparseable footer) surface as open failures.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewOpenFailed(path, err)
	}

	file, err := openFile(path, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return file, nil
}

func openFile(path string, f *os.File) (*File, error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, errors.NewOpenFailed(path, err)
	}
	size := stat.Size()
	if size < headerSize+trailerSize {
		return nil, errors.NewCorruptFile(path, fmt.Sprintf("file too small: %d bytes", size))
	}

	header := make([]byte, headerSize)
	if _, err := f.ReadAt(header, 0); err != nil {
		return nil, errors.NewOpenFailed(path, err)
	}
	if err := verifyHeader(header); err != nil {
		return nil, errors.NewCorruptFile(path, err.Error())
	}

	trailer := make([]byte, trailerSize)
	if _, err := f.ReadAt(trailer, size-trailerSize); err != nil {
		return nil, errors.NewOpenFailed(path, err)
	}
	footerLen, err := decodeTrailer(trailer)
	if err != nil {
		return nil, errors.NewCorruptFile(path, err.Error())
	}

	footerOff := size - trailerSize - int64(footerLen)
	if footerOff < headerSize {
		return nil, errors.NewCorruptFile(path, "footer overlaps header")
	}
	footer := make([]byte, footerLen)
	if _, err := f.ReadAt(footer, footerOff); err != nil {
		return nil, errors.NewOpenFailed(path, err)
	}

	columns, groups, err := decodeFooter(footer)
	if err != nil {
		return nil, errors.NewCorruptFile(path, err.Error())
	}
	schema, err := NewSchema(columns)
	if err != nil {
		return nil, errors.NewCorruptFile(path, err.Error())
	}

	var rows int64
	for _, g := range groups {
		rows += int64(g.rows)
	}

	return &File{
		path:   path,
		f:      f,
		schema: schema,
		groups: groups,
		rows:   rows,
	}, nil
}

// Close closes the underlying file handle.
func (f *File) Close() error {
	return f.f.Close()
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// Schema returns the file's schema.
func (f *File) Schema() *Schema {
	return f.schema
}

// NumRows returns the total row count across all row groups, taken from the
// footer metadata alone.
func (f *File) NumRows() int64 {
	return f.rows
}

// NumRowGroups returns the number of row groups in the file.
func (f *File) NumRowGroups() int {
	return len(f.groups)
}

// ResolveColumn looks up a column by name and returns its index and
// physical type. An absent name is the expected ColumnNotFound outcome,
// distinct from any structural error.
func (f *File) ResolveColumn(name string) (int, PhysicalType, error) {
	idx, typ, ok := f.schema.Resolve(name)
	if !ok {
		return 0, TypeUndefined, errors.NewColumnNotFound(f.path, name)
	}
	return idx, typ, nil
}

// readChunk reads one chunk's payload and verifies its CRC. Chunk
// corruption reports through the open-failed kind like any other
// structural damage.
func (f *File) readChunk(info chunkInfo) ([]byte, error) {
	data := make([]byte, info.length)
	if _, err := f.f.ReadAt(data, info.offset); err != nil {
		return nil, errors.NewOpenFailed(f.path, err)
	}
	if crc := crc32.ChecksumIEEE(data); crc != info.crc {
		return nil, errors.NewCorruptFile(f.path,
			fmt.Sprintf("chunk at offset %d: CRC mismatch: expected %x, got %x", info.offset, info.crc, crc))
	}
	return data, nil
}
