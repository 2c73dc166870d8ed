package colfmt

import (
	"fmt"

	"github.com/shaledb/shale/internal/errors"
)

// PhysicalType identifies the declared on-disk type of a column.
//
// The set is closed: decode and encode dispatch over it with a function
// table rather than an open type hierarchy. TypeUndefined is a value the
// catalog returns for anything it does not model; it is never an error by
// itself.
type PhysicalType uint8

const (
	TypeUndefined PhysicalType = iota
	TypeInt32
	TypeInt64
	TypeUint64
	TypeTimestamp
	TypeFloat64
)

func (t PhysicalType) String() string {
	switch t {
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeUint64:
		return "uint64"
	case TypeTimestamp:
		return "timestamp"
	case TypeFloat64:
		return "float64"
	default:
		return "undefined"
	}
}

// Width returns the encoded size of one element in bytes, or 0 for
// TypeUndefined.
func (t PhysicalType) Width() int {
	switch t {
	case TypeInt32:
		return 4
	case TypeInt64, TypeUint64, TypeTimestamp, TypeFloat64:
		return 8
	default:
		return 0
	}
}

// Readable reports whether the batch decoder handles this type. Timestamp
// and float64 columns are discoverable through the catalog but not decodable
// through the column read path.
func (t PhysicalType) Readable() bool {
	switch t {
	case TypeInt32, TypeInt64, TypeUint64:
		return true
	default:
		return false
	}
}

// typeFromCode maps an on-disk type code to a PhysicalType. Unknown codes
// come back as TypeUndefined so newer files stay openable; the affected
// columns just read as unsupported.
func typeFromCode(code uint8) PhysicalType {
	t := PhysicalType(code)
	switch t {
	case TypeInt32, TypeInt64, TypeUint64, TypeTimestamp, TypeFloat64:
		return t
	default:
		return TypeUndefined
	}
}

// Column is one named, typed column of a schema.
type Column struct {
	Name string
	Type PhysicalType
}

// Schema is an ordered mapping from unique column names to physical types.
// It is created when a file is opened or a writer is constructed and is
// immutable afterwards.
type Schema struct {
	columns []Column
	byName  map[string]int
}

// NewSchema builds a schema from an ordered column list. Names must be
// non-empty and unique.
func NewSchema(columns []Column) (*Schema, error) {
	if len(columns) == 0 {
		return nil, errors.NewInvalidArgument("schema", "must have at least one column")
	}
	byName := make(map[string]int, len(columns))
	for i, col := range columns {
		if col.Name == "" {
			return nil, errors.NewInvalidArgument("schema", fmt.Sprintf("column %d has an empty name", i))
		}
		if _, dup := byName[col.Name]; dup {
			return nil, errors.NewInvalidArgument("schema", fmt.Sprintf("duplicate column name %q", col.Name))
		}
		byName[col.Name] = i
	}
	return &Schema{
		columns: append([]Column(nil), columns...),
		byName:  byName,
	}, nil
}

// NumColumns returns the schema width.
func (s *Schema) NumColumns() int {
	return len(s.columns)
}

// Column returns the column at index i in schema order.
func (s *Schema) Column(i int) Column {
	return s.columns[i]
}

// Columns returns the columns in schema order.
func (s *Schema) Columns() []Column {
	return append([]Column(nil), s.columns...)
}

// Resolve looks a column up by exact name. The second result is false when
// the name is absent; an absent column is an expected outcome, so the
// caller with the file path attaches the error.
func (s *Schema) Resolve(name string) (int, PhysicalType, bool) {
	i, ok := s.byName[name]
	if !ok {
		return 0, TypeUndefined, false
	}
	return i, s.columns[i].Type, true
}
