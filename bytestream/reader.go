// Package bytestream provides a seekable, big-endian cursor over an
// in-memory byte buffer, the common substrate every binary codec in this
// repository (bcsv, bti, jpa) reads from and writes to.
package bytestream

import (
	"math"

	"github.com/AwesomeTMC/gapac/gapaerr"
)

// Reader is a seekable, big-endian cursor over a byte buffer. All formats
// handled by this module are big-endian, fixed-point integers and
// IEEE-754 floats.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for reading. The returned Reader does not copy buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the current cursor position.
func (r *Reader) Pos() int { return r.pos }

// Len returns the total buffer length.
func (r *Reader) Len() int { return len(r.buf) }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// SeekTo moves the cursor to an absolute offset. It does not validate the
// offset against the buffer length; an out-of-range seek surfaces as a
// Truncated error on the next read.
func (r *Reader) SeekTo(pos int) { r.pos = pos }

func (r *Reader) need(n int) error {
	if r.pos < 0 || n < 0 || r.pos+n > len(r.buf) {
		return gapaerr.New(gapaerr.Truncated, "read past end of buffer").WithOffset(int64(r.pos))
	}
	return nil
}

// Bytes reads and returns the next n raw bytes, advancing the cursor.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// PeekBytes returns the next n raw bytes without advancing the cursor.
func (r *Reader) PeekBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	return r.buf[r.pos : r.pos+n], nil
}

// U8 reads an unsigned 8-bit integer.
func (r *Reader) U8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

// I8 reads a signed 8-bit integer.
func (r *Reader) I8() (int8, error) {
	v, err := r.U8()
	return int8(v), err
}

// U16 reads a big-endian unsigned 16-bit integer.
func (r *Reader) U16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := uint16(r.buf[r.pos])<<8 | uint16(r.buf[r.pos+1])
	r.pos += 2
	return v, nil
}

// I16 reads a big-endian signed 16-bit integer.
func (r *Reader) I16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

// U32 reads a big-endian unsigned 32-bit integer.
func (r *Reader) U32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := uint32(r.buf[r.pos])<<24 | uint32(r.buf[r.pos+1])<<16 | uint32(r.buf[r.pos+2])<<8 | uint32(r.buf[r.pos+3])
	r.pos += 4
	return v, nil
}

// I32 reads a big-endian signed 32-bit integer.
func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

// F32 reads a big-endian IEEE-754 32-bit float.
func (r *Reader) F32() (float32, error) {
	v, err := r.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFixedASCII reads an n-byte fixed field and returns it as a string
// with trailing NUL padding stripped.
func (r *Reader) ReadFixedASCII(n int) (string, error) {
	b, err := r.Bytes(n)
	if err != nil {
		return "", err
	}
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end]), nil
}

// ReadCStringAt follows a pointer into the buffer (typically into a string
// pool) and reads a NUL-terminated string, without disturbing the current
// cursor position.
func (r *Reader) ReadCStringAt(offset int) (string, error) {
	if offset < 0 || offset > len(r.buf) {
		return "", gapaerr.New(gapaerr.Truncated, "cstring offset out of range").WithOffset(int64(offset))
	}
	end := offset
	for end < len(r.buf) && r.buf[end] != 0 {
		end++
	}
	if end >= len(r.buf) {
		return "", gapaerr.New(gapaerr.Truncated, "unterminated cstring").WithOffset(int64(offset))
	}
	return string(r.buf[offset:end]), nil
}

// AlignTo advances the cursor past zero-padding until it sits on a multiple
// of n. It does not validate that the skipped bytes are actually zero — the
// encoder is responsible for writing well-formed padding.
func (r *Reader) AlignTo(n int) error {
	rem := r.pos % n
	if rem == 0 {
		return nil
	}
	pad := n - rem
	if err := r.need(pad); err != nil {
		return err
	}
	r.pos += pad
	return nil
}
