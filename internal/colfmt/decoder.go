package colfmt

import (
	"encoding/binary"
	"fmt"

	"github.com/shaledb/shale/internal/errors"
)

// decodeFunc decodes count values from src into dst. dst always uses the
// wide 8-byte representation; src is the column's native encoding.
type decodeFunc func(dst []int64, src []byte, count int)

// decoders is the closed dispatch table for the readable physical types.
// Uint64 shares the int64 decoder on purpose: storage and output use the
// signed 64-bit wire representation with no value transformation, and the
// receiver reinterprets the bit pattern. This is a format compatibility
// convention and must not be "fixed".
var decoders = map[PhysicalType]decodeFunc{
	TypeInt64:  decodeWide,
	TypeUint64: decodeWide,
	TypeInt32:  decodeInt32Widen,
}

// decodeWide copies 8-byte little-endian values straight into the output
// buffer.
func decodeWide(dst []int64, src []byte, count int) {
	for i := 0; i < count; i++ {
		dst[i] = int64(binary.LittleEndian.Uint64(src[i*8:]))
	}
}

// decodeInt32Widen decodes 4-byte values into a scratch buffer of the
// chunk's native width, then widens element by element with sign
// extension. The two steps exist because the output buffer has a single
// fixed element width and narrower on-disk values must be upcast without
// precision loss. The scratch buffer is owned by this call alone.
func decodeInt32Widen(dst []int64, src []byte, count int) {
	scratch := make([]int32, count)
	for i := 0; i < count; i++ {
		scratch[i] = int32(binary.LittleEndian.Uint32(src[i*4:]))
	}
	for i, v := range scratch {
		dst[i] = int64(v)
	}
}

// ChunkReader decodes one column chunk in fixed-size batches. It keeps a
// read cursor between batches and nothing else.
type ChunkReader struct {
	typ       PhysicalType
	decode    decodeFunc
	data      []byte
	pos       int // elements consumed
	remaining int
}

func newChunkReader(typ PhysicalType, data []byte, rows int, path string) (*ChunkReader, error) {
	decode, ok := decoders[typ]
	if !ok {
		// ColumnReader rejects unreadable types before a chunk is opened;
		// reaching here means the footer and the read path disagree.
		return nil, errors.NewCorruptFile(path, fmt.Sprintf("chunk of undecodable type %s", typ))
	}
	if want := rows * typ.Width(); want != len(data) {
		return nil, errors.NewCorruptFile(path,
			fmt.Sprintf("chunk size %d does not match %d rows of %s", len(data), rows, typ))
	}
	return &ChunkReader{
		typ:       typ,
		decode:    decode,
		data:      data,
		remaining: rows,
	}, nil
}

// Remaining returns the number of values not yet decoded.
func (r *ChunkReader) Remaining() int {
	return r.remaining
}

// DecodeBatch decodes up to max values into dst and advances the cursor.
// It returns the number of values written and whether the chunk is
// exhausted. A batch larger than the chunk's remainder returns exactly the
// remainder with done set. The caller loops until done.
func (r *ChunkReader) DecodeBatch(dst []int64, max int) (int, bool, error) {
	if max <= 0 {
		return 0, r.remaining == 0, errors.NewInvalidArgument("batch size", "must be positive")
	}
	if r.remaining == 0 {
		return 0, true, nil
	}

	n := max
	if n > r.remaining {
		n = r.remaining
	}
	if n > len(dst) {
		n = len(dst)
	}
	if n == 0 {
		return 0, false, nil
	}

	r.decode(dst[:n], r.data[r.pos*r.typ.Width():], n)
	r.pos += n
	r.remaining -= n
	return n, r.remaining == 0, nil
}
