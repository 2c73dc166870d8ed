package colfmt

import "github.com/shaledb/shale/internal/errors"

// ReadColumn decodes the named column into dst, batchSize values at a time,
// concatenating across row groups in file order. It returns the number of
// values written, which equals the file's row count when dst is sized to
// it.
//
// Sizing dst is the caller's responsibility: an undersized buffer truncates
// the read at len(dst) rather than failing, matching the minimal-surface
// contract of the boundary. A failed read returns the error alone; there is
// no partial-result contract.
func ReadColumn(f *File, name string, dst []int64, batchSize int) (int, error) {
	idx, typ, err := f.ResolveColumn(name)
	if err != nil {
		return 0, err
	}
	if !typ.Readable() {
		return 0, errors.NewUnsupportedType(f.path, name, typ.String())
	}
	if batchSize < 1 {
		return 0, errors.NewInvalidArgument("batch size", "must be at least 1")
	}

	cursor, err := NewRowGroupCursor(f, idx)
	if err != nil {
		return 0, err
	}

	total := 0
	for cursor.Next() {
		chunk, err := cursor.Chunk()
		if err != nil {
			return 0, err
		}
		for {
			if total == len(dst) {
				return total, nil
			}
			n, done, err := chunk.DecodeBatch(dst[total:], batchSize)
			if err != nil {
				return 0, err
			}
			total += n
			if done {
				break
			}
		}
	}
	return total, nil
}
