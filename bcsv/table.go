// Package bcsv implements the row-oriented binary table format used for
// ParticleNames and AutoEffectList: a header, hashed+bit-packed column
// descriptors, a row blob, and a trailing string pool.
package bcsv

import (
	"math"

	"github.com/AwesomeTMC/gapac/bytestream"
	"github.com/AwesomeTMC/gapac/gapaerr"
	"github.com/AwesomeTMC/gapac/strpool"
)

const headerSize = 32
const columnDescSize = 12

// Row is one decoded record, keyed by column name (resolved through the
// known-column dictionary; unknown columns key by their hex hash form).
type Row map[string]Value

// Table is a fully decoded BCSV file: its column schema and every row.
type Table struct {
	Columns []Column
	Rows    []Row
}

// Read decodes a BCSV table from buf.
func Read(buf []byte) (*Table, error) {
	r := bytestream.NewReader(buf)

	rowCount, err := r.U32()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BCSV header: row count")
	}
	colCount, err := r.U32()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BCSV header: column count")
	}
	rowDataOff, err := r.U32()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BCSV header: row data offset")
	}
	rowStride, err := r.U32()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BCSV header: row stride")
	}
	strPoolOff, err := r.U32()
	if err != nil {
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BCSV header: string pool offset")
	}
	if _, err := r.Bytes(12); err != nil { // reserved
		return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BCSV header: reserved")
	}

	cols := make([]Column, colCount)
	for i := uint32(0); i < colCount; i++ {
		r.SeekTo(headerSize + int(i)*columnDescSize)

		hash, err := r.U32()
		if err != nil {
			return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BCSV column descriptor: hash")
		}
		mask, err := r.U32()
		if err != nil {
			return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BCSV column descriptor: mask")
		}
		off, err := r.U16()
		if err != nil {
			return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BCSV column descriptor: offset")
		}
		shift, err := r.U8()
		if err != nil {
			return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BCSV column descriptor: shift")
		}
		typ, err := r.U8()
		if err != nil {
			return nil, gapaerr.Wrap(gapaerr.Truncated, err, "BCSV column descriptor: type")
		}
		if err := validFieldType(FieldType(typ)); err != nil {
			return nil, err.(*gapaerr.Error).WithOffset(int64(headerSize + int(i)*columnDescSize))
		}
		cols[i] = Column{
			Name:   LookupName(hash),
			Hash:   hash,
			Mask:   mask,
			Offset: off,
			Shift:  shift,
			Type:   FieldType(typ),
		}
	}

	poolReader := strpool.NewReader(buf[minInt(int(strPoolOff), len(buf)):])

	rows := make([]Row, rowCount)
	for i := uint32(0); i < rowCount; i++ {
		rowBase := int(rowDataOff) + int(i)*int(rowStride)
		row := make(Row, len(cols))
		for _, c := range cols {
			val, err := readCell(r, rowBase+int(c.Offset), c, poolReader)
			if err != nil {
				return nil, err.(*gapaerr.Error).WithTag(c.Name)
			}
			row[c.Name] = val
		}
		rows[i] = row
	}

	return &Table{Columns: cols, Rows: rows}, nil
}

func readCell(r *bytestream.Reader, offset int, c Column, pool *strpool.Reader) (Value, error) {
	r.SeekTo(offset)
	switch c.Type {
	case TypeLong, TypeLong2:
		raw, err := r.U32()
		if err != nil {
			return Value{}, gapaerr.Wrap(gapaerr.Truncated, err, "BCSV cell")
		}
		v := int32((raw & c.Mask) >> c.Shift)
		v = signExtend32(v, maskBitWidth(c.Mask>>c.Shift))
		return Int(v), nil
	case TypeFloat:
		f, err := r.F32()
		if err != nil {
			return Value{}, gapaerr.Wrap(gapaerr.Truncated, err, "BCSV cell")
		}
		return Float(f), nil
	case TypeShort:
		raw, err := r.U16()
		if err != nil {
			return Value{}, gapaerr.Wrap(gapaerr.Truncated, err, "BCSV cell")
		}
		masked := (uint32(raw) & c.Mask) >> c.Shift
		v := int32(int16(masked))
		v = signExtend32(v, maskBitWidth((c.Mask&0xFFFF)>>c.Shift))
		return Int(v), nil
	case TypeChar:
		raw, err := r.U8()
		if err != nil {
			return Value{}, gapaerr.Wrap(gapaerr.Truncated, err, "BCSV cell")
		}
		masked := (uint32(raw) & c.Mask) >> c.Shift
		return Int(int32(masked)), nil
	case TypeStringOffset:
		raw, err := r.I32()
		if err != nil {
			return Value{}, gapaerr.Wrap(gapaerr.Truncated, err, "BCSV cell")
		}
		s, err := pool.StringAt(int(raw))
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	default:
		return Value{}, gapaerr.New(gapaerr.UnknownTag, "unknown BCSV field type").WithOffset(int64(offset))
	}
}

// maskBitWidth returns the position of the highest set bit in mask, 1-based
// (e.g. 0xFFFF -> 16). Called on a column's mask shifted down by its Shift,
// it gives the field's own bit width, used to sign-extend and range-check a
// masked field rather than using its raw machine-word width.
func maskBitWidth(mask uint32) int {
	w := 0
	for mask != 0 {
		w++
		mask >>= 1
	}
	return w
}

func signExtend32(v int32, bits int) int32 {
	if bits <= 0 || bits >= 32 {
		return v
	}
	signBit := int32(1) << (bits - 1)
	if v&signBit != 0 {
		return v | ^((signBit << 1) - 1)
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Write encodes cols and rows into a BCSV buffer, computing row stride
// from the columns' own offsets and widths and appending a freshly built
// string pool, padded to 32 bytes.
func Write(cols []Column, rows []Row) ([]byte, error) {
	rowStride := RowStride(cols)

	w := bytestream.NewWriter()

	rowDataOff := headerSize + len(cols)*columnDescSize

	w.PutU32(uint32(len(rows)))
	w.PutU32(uint32(len(cols)))
	w.PutU32(uint32(rowDataOff))
	w.PutU32(uint32(rowStride))
	stringPoolOffPatchAt := w.Len()
	w.PutU32(0) // string pool offset, backpatched below
	w.PutBytes(make([]byte, 12))

	for _, c := range cols {
		w.PutU32(c.Hash)
		w.PutU32(c.Mask)
		w.PutU16(c.Offset)
		w.PutU8(c.Shift)
		w.PutU8(uint8(c.Type))
	}

	pool := strpool.NewPool()
	for _, row := range rows {
		rowStart := w.Len()
		w.PutBytes(make([]byte, rowStride))
		for _, c := range cols {
			val, ok := row[c.Name]
			if !ok {
				return nil, gapaerr.New(gapaerr.UnknownTag, "row missing value for column").WithTag(c.Name)
			}
			if err := writeCell(w, rowStart+int(c.Offset), c, val, pool); err != nil {
				return nil, err.(*gapaerr.Error).WithTag(c.Name)
			}
		}
	}

	if err := w.PatchU32At(stringPoolOffPatchAt, uint32(w.Len())); err != nil {
		return nil, err.(*gapaerr.Error)
	}

	poolBytes, perr := pool.Bytes(32)
	if perr != nil {
		return nil, perr.(*gapaerr.Error)
	}
	w.PutBytes(poolBytes)

	if err := w.AlignTo(32); err != nil {
		return nil, err.(*gapaerr.Error)
	}

	return w.Bytes(), nil
}

func writeCell(w *bytestream.Writer, offset int, c Column, val Value, pool *strpool.Pool) error {
	switch c.Type {
	case TypeLong, TypeLong2:
		if err := checkFits(val.I32, c.Mask>>c.Shift); err != nil {
			return err
		}
		raw := (uint32(val.I32) << c.Shift) & c.Mask
		return orU32(w, offset, raw)
	case TypeFloat:
		return patchU32(w, offset, math.Float32bits(val.F32))
	case TypeShort:
		if err := checkFits(val.I32, (c.Mask&0xFFFF)>>c.Shift); err != nil {
			return err
		}
		raw := uint16((uint32(val.I32) << c.Shift) & c.Mask)
		return orU16(w, offset, raw)
	case TypeChar:
		if err := checkFits(val.I32, (c.Mask&0xFF)>>c.Shift); err != nil {
			return err
		}
		raw := uint8((uint32(val.I32) << c.Shift) & c.Mask)
		return orU8(w, offset, raw)
	case TypeStringOffset:
		off := pool.Intern(val.Str)
		return patchU32(w, offset, uint32(off))
	default:
		return gapaerr.New(gapaerr.UnknownTag, "unknown BCSV field type").WithOffset(int64(offset))
	}
}

// orU32/orU16/orU8 OR new bits into an already-written row word rather than
// overwriting it, so that columns sharing a row offset with disjoint masks
// compose correctly.
func orU32(w *bytestream.Writer, offset int, v uint32) error {
	b := w.Bytes()
	if offset < 0 || offset+4 > len(b) {
		return gapaerr.New(gapaerr.Truncated, "patch offset out of range").WithOffset(int64(offset))
	}
	cur := uint32(b[offset])<<24 | uint32(b[offset+1])<<16 | uint32(b[offset+2])<<8 | uint32(b[offset+3])
	return patchU32(w, offset, cur|v)
}

func orU16(w *bytestream.Writer, offset int, v uint16) error {
	b := w.Bytes()
	if offset < 0 || offset+2 > len(b) {
		return gapaerr.New(gapaerr.Truncated, "patch offset out of range").WithOffset(int64(offset))
	}
	cur := uint16(b[offset])<<8 | uint16(b[offset+1])
	return patchU16(w, offset, cur|v)
}

func orU8(w *bytestream.Writer, offset int, v uint8) error {
	b := w.Bytes()
	if offset < 0 || offset+1 > len(b) {
		return gapaerr.New(gapaerr.Truncated, "patch offset out of range").WithOffset(int64(offset))
	}
	return patchU8(w, offset, b[offset]|v)
}

func checkFits(v int32, mask uint32) error {
	bits := maskBitWidth(mask)
	if bits == 0 || bits >= 32 {
		return nil
	}
	lo := -(int32(1) << (bits - 1))
	hi := (int32(1) << (bits - 1)) - 1
	if v < lo || v > hi {
		return gapaerr.New(gapaerr.ValueOutOfRange, "value does not fit in column mask's bit width")
	}
	return nil
}

func patchU32(w *bytestream.Writer, offset int, v uint32) error {
	err := w.PatchU32At(offset, v)
	if err != nil {
		return err.(*gapaerr.Error)
	}
	return nil
}

func patchU16(w *bytestream.Writer, offset int, v uint16) error {
	b := w.Bytes()
	if offset < 0 || offset+2 > len(b) {
		return gapaerr.New(gapaerr.Truncated, "patch offset out of range").WithOffset(int64(offset))
	}
	b[offset] = byte(v >> 8)
	b[offset+1] = byte(v)
	return nil
}

func patchU8(w *bytestream.Writer, offset int, v uint8) error {
	b := w.Bytes()
	if offset < 0 || offset+1 > len(b) {
		return gapaerr.New(gapaerr.Truncated, "patch offset out of range").WithOffset(int64(offset))
	}
	b[offset] = v
	return nil
}
