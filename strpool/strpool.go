// Package strpool implements the shared, content-addressed string pool
// used by the BCSV codec: a flat run of NUL-terminated strings
// that later fields reference by byte offset rather than embedding the
// text inline.
package strpool

import "github.com/AwesomeTMC/gapac/gapaerr"

// Pool accumulates strings for later serialization, assigning each a byte
// offset the first time it is seen. Repeated Interns of the same string
// return the same offset; no suffix sharing is performed — a string that
// happens to be a suffix of an already-interned string still gets its own
// entry, matching the reference packer's own streaming-append behavior.
type Pool struct {
	buf     []byte
	offsets map[string]int
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{offsets: make(map[string]int)}
}

// Intern returns the byte offset of s within the pool, appending it if this
// is the first time s has been seen.
func (p *Pool) Intern(s string) int {
	if off, ok := p.offsets[s]; ok {
		return off
	}
	off := len(p.buf)
	p.offsets[s] = off
	p.buf = append(p.buf, s...)
	p.buf = append(p.buf, 0)
	return off
}

// Len returns the current unpadded length of the pool's backing buffer.
func (p *Pool) Len() int { return len(p.buf) }

// Bytes returns the pool's backing buffer, padded with NUL bytes so its
// length is a multiple of align. align must be a positive power of two.
func (p *Pool) Bytes(align int) ([]byte, error) {
	if align <= 0 || align&(align-1) != 0 {
		return nil, gapaerr.New(gapaerr.ValueOutOfRange, "pool alignment must be a positive power of two")
	}
	out := make([]byte, len(p.buf))
	copy(out, p.buf)
	if rem := len(out) % align; rem != 0 {
		out = append(out, make([]byte, align-rem)...)
	}
	return out, nil
}

// Reader reads NUL-terminated strings out of an already-decoded string
// pool buffer by offset, the read-side counterpart to Pool.
type Reader struct {
	buf []byte
}

// NewReader wraps an already-extracted string pool buffer for lookups.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// StringAt reads the NUL-terminated string starting at offset off.
func (r *Reader) StringAt(off int) (string, error) {
	if off < 0 || off > len(r.buf) {
		return "", gapaerr.New(gapaerr.Truncated, "string pool offset out of range").WithOffset(int64(off))
	}
	end := off
	for end < len(r.buf) && r.buf[end] != 0 {
		end++
	}
	if end >= len(r.buf) {
		return "", gapaerr.New(gapaerr.Truncated, "unterminated string in pool").WithOffset(int64(off))
	}
	return string(r.buf[off:end]), nil
}
