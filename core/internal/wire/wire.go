// Package wire implements the fixed-width big-endian integer encoding used
// by the archive container, plus a bounds-checked read cursor for parsing
// untrusted input.
package wire

import "errors"

// ErrShortBuffer is returned when a read would pass the end of the input.
var ErrShortBuffer = errors.New("wire: read past end of buffer")

// AppendUint16 appends v to b in big-endian byte order.
func AppendUint16(b []byte, v uint16) []byte {
	return append(b, byte(v>>8), byte(v))
}

// AppendUint32 appends v to b in big-endian byte order.
func AppendUint32(b []byte, v uint32) []byte {
	return append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// Reader is a cursor over an untrusted byte slice. Every read validates the
// remaining length before consuming bytes, so a truncated or hostile buffer
// can never cause an out-of-range access.
type Reader struct {
	data []byte
	off  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.data) - r.off
}

// Byte consumes a single byte.
func (r *Reader) Byte() (byte, error) {
	if r.Len() < 1 {
		return 0, ErrShortBuffer
	}
	b := r.data[r.off]
	r.off++
	return b, nil
}

// Uint16 consumes a big-endian 16-bit unsigned integer.
func (r *Reader) Uint16() (uint16, error) {
	if r.Len() < 2 {
		return 0, ErrShortBuffer
	}
	v := uint16(r.data[r.off])<<8 | uint16(r.data[r.off+1])
	r.off += 2
	return v, nil
}

// Uint32 consumes a big-endian 32-bit unsigned integer.
func (r *Reader) Uint32() (uint32, error) {
	if r.Len() < 4 {
		return 0, ErrShortBuffer
	}
	v := uint32(r.data[r.off])<<24 |
		uint32(r.data[r.off+1])<<16 |
		uint32(r.data[r.off+2])<<8 |
		uint32(r.data[r.off+3])
	r.off += 4
	return v, nil
}

// Bytes consumes the next n bytes without copying. The returned slice
// aliases the underlying buffer and must be treated as read-only.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, ErrShortBuffer
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}
