package bytestream

import (
	"math"

	"github.com/AwesomeTMC/gapac/gapaerr"
)

// Writer is a growable, big-endian byte buffer builder. Callers append
// fields in wire order; Bytes() returns the finished buffer.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Bytes returns the underlying buffer. The slice is owned by the Writer;
// callers that need to keep it past further writes should copy it.
func (w *Writer) Bytes() []byte { return w.buf }

// PutBytes appends raw bytes verbatim.
func (w *Writer) PutBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// PutU8 appends an unsigned 8-bit integer.
func (w *Writer) PutU8(v uint8) {
	w.buf = append(w.buf, v)
}

// PutI8 appends a signed 8-bit integer.
func (w *Writer) PutI8(v int8) { w.PutU8(uint8(v)) }

// PutU16 appends a big-endian unsigned 16-bit integer.
func (w *Writer) PutU16(v uint16) {
	w.buf = append(w.buf, byte(v>>8), byte(v))
}

// PutI16 appends a big-endian signed 16-bit integer.
func (w *Writer) PutI16(v int16) { w.PutU16(uint16(v)) }

// PutU32 appends a big-endian unsigned 32-bit integer.
func (w *Writer) PutU32(v uint32) {
	w.buf = append(w.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// PutI32 appends a big-endian signed 32-bit integer.
func (w *Writer) PutI32(v int32) { w.PutU32(uint32(v)) }

// PutF32 appends a big-endian IEEE-754 32-bit float.
func (w *Writer) PutF32(v float32) { w.PutU32(math.Float32bits(v)) }

// WriteFixedASCII appends s, NUL-padded to exactly n bytes. It fails with
// ValueOutOfRange, writing nothing, if s is longer than n.
func (w *Writer) WriteFixedASCII(s string, n int) error {
	if len(s) > n {
		return gapaerr.New(gapaerr.ValueOutOfRange, "string longer than fixed field width").
			WithTag(s).WithOffset(int64(len(w.buf)))
	}
	b := make([]byte, n)
	copy(b, s)
	w.buf = append(w.buf, b...)
	return nil
}

// AlignTo pads the buffer with NUL bytes until its length is a multiple of
// n. It fails with ValueOutOfRange if n is not a positive power of two.
func (w *Writer) AlignTo(n int) error {
	if n <= 0 || n&(n-1) != 0 {
		return gapaerr.New(gapaerr.ValueOutOfRange, "alignment must be a positive power of two")
	}
	rem := len(w.buf) % n
	if rem == 0 {
		return nil
	}
	pad := n - rem
	w.buf = append(w.buf, make([]byte, pad)...)
	return nil
}

// PatchU32At overwrites a previously-written uint32 field at byte offset
// off, used for length/offset backpatching once a block's final size is
// known.
func (w *Writer) PatchU32At(off int, v uint32) error {
	if off < 0 || off+4 > len(w.buf) {
		return gapaerr.New(gapaerr.Truncated, "patch offset out of range").WithOffset(int64(off))
	}
	w.buf[off] = byte(v >> 24)
	w.buf[off+1] = byte(v >> 16)
	w.buf[off+2] = byte(v >> 8)
	w.buf[off+3] = byte(v)
	return nil
}
