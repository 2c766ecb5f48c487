package bcsv

import "github.com/AwesomeTMC/gapac/gapaerr"

// FieldType identifies the wire representation of a BCSV column.
type FieldType uint8

const (
	TypeLong         FieldType = 0
	TypeFloat        FieldType = 2
	TypeLong2        FieldType = 3
	TypeShort        FieldType = 4
	TypeChar         FieldType = 5
	TypeStringOffset FieldType = 6
)

// fieldWidth is the on-disk byte width of a raw machine word for a field
// type. FLOAT and the two LONG variants share width 4 with STRING_OFFSET,
// since a string cell is really a u32 pool offset.
var fieldWidth = map[FieldType]int{
	TypeLong:         4,
	TypeFloat:        4,
	TypeLong2:        4,
	TypeShort:        2,
	TypeChar:         1,
	TypeStringOffset: 4,
}

// defaultMask is the natural full-word mask for a field type, used when a
// caller doesn't need a narrower bitfield.
var defaultMask = map[FieldType]uint32{
	TypeLong:         0xFFFFFFFF,
	TypeFloat:        0xFFFFFFFF,
	TypeLong2:        0xFFFFFFFF,
	TypeShort:        0x0000FFFF,
	TypeChar:         0x000000FF,
	TypeStringOffset: 0xFFFFFFFF,
}

func validFieldType(t FieldType) error {
	if _, ok := fieldWidth[t]; !ok {
		return gapaerr.New(gapaerr.UnknownTag, "unknown BCSV field type").WithOffset(int64(t))
	}
	return nil
}

// Column describes one BCSV column: its identity (name/hash), its
// bit-packing within a row (mask/offset/shift), and its wire type.
// Multiple columns may share a row Offset when their Masks are disjoint.
type Column struct {
	Name   string
	Hash   uint32
	Mask   uint32
	Offset uint16 // row-relative byte offset of the containing machine word
	Shift  uint8
	Type   FieldType
}

// NewColumn builds a Column for Name, computing its hash and defaulting to
// a full-word mask and shift 0. Use the struct literal directly to pack
// several columns into one machine word with narrower masks.
func NewColumn(name string, t FieldType) (Column, error) {
	if err := validFieldType(t); err != nil {
		return Column{}, err
	}
	return Column{
		Name: name,
		Hash: Hash(name),
		Mask: defaultMask[t],
		Type: t,
	}, nil
}

// SequentialLayout assigns each column a non-overlapping row Offset in the
// given order, each column starting where the previous one's field width
// ends (no alignment padding is inserted), leaving Mask/Shift untouched. It is a
// convenience for callers that don't need bit-packed columns sharing a
// word; spec.md's write contract still treats Offset as caller-supplied,
// this just computes a reasonable default.
func SequentialLayout(cols []Column) []Column {
	out := make([]Column, len(cols))
	var off int
	for i, c := range cols {
		c.Offset = uint16(off)
		out[i] = c
		off += fieldWidth[c.Type]
	}
	return out
}

// RowStride returns the minimum 4-byte-aligned row size that fits every
// column's offset + width.
func RowStride(cols []Column) int {
	max := 0
	for _, c := range cols {
		end := int(c.Offset) + fieldWidth[c.Type]
		if end > max {
			max = end
		}
	}
	return (max + 3) &^ 3
}
