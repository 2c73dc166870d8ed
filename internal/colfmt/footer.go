package colfmt

import (
	"encoding/binary"
	"fmt"
)

// File layout (binary, little-endian):
//   - Header: 8 bytes magic + 4 bytes version
//   - Column chunks, back to back, in (row group, column) order
//   - Footer (see below)
//   - Trailer: 4 bytes footer length + 8 bytes magic
//
// Footer format:
//   - Column count (2 bytes); per column: name length (2 bytes) + name,
//     type code (1 byte)
//   - Row group count (4 bytes); per group: row count (4 bytes), then per
//     column: chunk offset (8 bytes), chunk length (4 bytes), crc32 (4 bytes)
//
// The footer is the only place chunk locations live; chunks themselves are
// raw value runs with no framing, so a file is only readable through its
// footer. The trailer lets a reader find the footer from the end of the
// file without scanning.

const (
	fileMagic     = 0x4c4f43454c414853 // "SHALECOL", little-endian
	formatVersion = 1

	headerSize  = 12 // 8 bytes magic + 4 bytes version
	trailerSize = 12 // 4 bytes footer length + 8 bytes magic

	// maxFooterSize bounds the footer allocation when opening a file whose
	// trailer may be corrupt.
	maxFooterSize = 64 * 1024 * 1024
)

// chunkInfo locates one column chunk in the file body.
type chunkInfo struct {
	offset int64
	length uint32
	crc    uint32
}

// rowGroupInfo describes one row group: its row count and one chunk per
// schema column.
type rowGroupInfo struct {
	rows   int
	chunks []chunkInfo
}

// encodeHeader returns the fixed file header.
func encodeHeader() []byte {
	var header [headerSize]byte
	binary.LittleEndian.PutUint64(header[0:8], fileMagic)
	binary.LittleEndian.PutUint32(header[8:12], formatVersion)
	return header[:]
}

// verifyHeader checks magic and version of a file header.
func verifyHeader(header []byte) error {
	if len(header) < headerSize {
		return fmt.Errorf("short header: %d bytes", len(header))
	}
	magic := binary.LittleEndian.Uint64(header[0:8])
	if magic != fileMagic {
		return fmt.Errorf("invalid magic: expected %x, got %x", uint64(fileMagic), magic)
	}
	version := binary.LittleEndian.Uint32(header[8:12])
	if version != formatVersion {
		return fmt.Errorf("unsupported version: %d", version)
	}
	return nil
}

// encodeFooter serializes the schema and row group index.
func encodeFooter(columns []Column, groups []rowGroupInfo) []byte {
	// Estimate: names dominate; 16 bytes per chunk entry.
	buf := make([]byte, 0, 64+len(columns)*24+len(groups)*(8+len(columns)*16))

	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(columns)))
	for _, col := range columns {
		buf = appendString(buf, col.Name)
		buf = append(buf, uint8(col.Type))
	}

	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(groups)))
	for _, g := range groups {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(g.rows))
		for _, c := range g.chunks {
			buf = binary.LittleEndian.AppendUint64(buf, uint64(c.offset))
			buf = binary.LittleEndian.AppendUint32(buf, c.length)
			buf = binary.LittleEndian.AppendUint32(buf, c.crc)
		}
	}
	return buf
}

// decodeFooter parses a footer back into schema columns and the row group
// index. It validates structure only; chunk CRCs are checked when chunks
// are read.
func decodeFooter(data []byte) ([]Column, []rowGroupInfo, error) {
	if len(data) < 2 {
		return nil, nil, fmt.Errorf("footer too short for column count")
	}
	numCols := int(binary.LittleEndian.Uint16(data[0:2]))
	if numCols == 0 {
		return nil, nil, fmt.Errorf("footer declares zero columns")
	}
	offset := 2

	columns := make([]Column, numCols)
	for i := 0; i < numCols; i++ {
		name, next, err := readString(data, offset)
		if err != nil {
			return nil, nil, fmt.Errorf("column %d name: %w", i, err)
		}
		offset = next
		if offset+1 > len(data) {
			return nil, nil, fmt.Errorf("column %d: footer too short for type code", i)
		}
		columns[i] = Column{Name: name, Type: typeFromCode(data[offset])}
		offset++
	}

	if offset+4 > len(data) {
		return nil, nil, fmt.Errorf("footer too short for row group count")
	}
	numGroups := int(binary.LittleEndian.Uint32(data[offset:]))
	offset += 4

	groupBytes := numGroups * (4 + numCols*16)
	if offset+groupBytes > len(data) {
		return nil, nil, fmt.Errorf("footer too short for %d row groups", numGroups)
	}

	groups := make([]rowGroupInfo, numGroups)
	for g := 0; g < numGroups; g++ {
		rows := int(binary.LittleEndian.Uint32(data[offset:]))
		offset += 4
		chunks := make([]chunkInfo, numCols)
		for c := 0; c < numCols; c++ {
			chunks[c] = chunkInfo{
				offset: int64(binary.LittleEndian.Uint64(data[offset:])),
				length: binary.LittleEndian.Uint32(data[offset+8:]),
				crc:    binary.LittleEndian.Uint32(data[offset+12:]),
			}
			offset += 16
		}
		groups[g] = rowGroupInfo{rows: rows, chunks: chunks}
	}

	if offset != len(data) {
		return nil, nil, fmt.Errorf("footer has %d trailing bytes", len(data)-offset)
	}
	return columns, groups, nil
}

// encodeTrailer returns the fixed-size trailer locating a footer of the
// given length.
func encodeTrailer(footerLen int) []byte {
	var trailer [trailerSize]byte
	binary.LittleEndian.PutUint32(trailer[0:4], uint32(footerLen))
	binary.LittleEndian.PutUint64(trailer[4:12], fileMagic)
	return trailer[:]
}

// decodeTrailer validates the trailer and returns the footer length.
func decodeTrailer(trailer []byte) (int, error) {
	if len(trailer) < trailerSize {
		return 0, fmt.Errorf("short trailer: %d bytes", len(trailer))
	}
	magic := binary.LittleEndian.Uint64(trailer[4:12])
	if magic != fileMagic {
		return 0, fmt.Errorf("invalid trailer magic: expected %x, got %x", uint64(fileMagic), magic)
	}
	length := int(binary.LittleEndian.Uint32(trailer[0:4]))
	if length <= 0 || length > maxFooterSize {
		return 0, fmt.Errorf("implausible footer length: %d", length)
	}
	return length, nil
}

// appendString appends a length-prefixed string to the buffer.
func appendString(buf []byte, s string) []byte {
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(s)))
	return append(buf, s...)
}

// readString reads a length-prefixed string from the buffer.
func readString(data []byte, offset int) (string, int, error) {
	if offset+2 > len(data) {
		return "", offset, fmt.Errorf("data too short for string length")
	}

	length := int(binary.LittleEndian.Uint16(data[offset:]))
	offset += 2

	if offset+length > len(data) {
		return "", offset, fmt.Errorf("data too short for string content")
	}

	s := string(data[offset : offset+length])
	return s, offset + length, nil
}
