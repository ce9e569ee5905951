package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendRoundTrip(t *testing.T) {
	b := AppendUint16(nil, 0xBEEF)
	b = AppendUint32(b, 0xDEADBEEF)
	require.Equal(t, []byte{0xBE, 0xEF, 0xDE, 0xAD, 0xBE, 0xEF}, b)

	r := NewReader(b)
	u16, err := r.Uint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), u16)

	u32, err := r.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u32)
	assert.Equal(t, 0, r.Len())
}

func TestReaderBounds(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(r *Reader) error
	}{
		{"byte from empty", nil, func(r *Reader) error { _, err := r.Byte(); return err }},
		{"uint16 short", []byte{0x01}, func(r *Reader) error { _, err := r.Uint16(); return err }},
		{"uint32 short", []byte{0x01, 0x02, 0x03}, func(r *Reader) error { _, err := r.Uint32(); return err }},
		{"bytes short", []byte{0x01, 0x02}, func(r *Reader) error { _, err := r.Bytes(3); return err }},
		{"bytes negative", []byte{0x01}, func(r *Reader) error { _, err := r.Bytes(-1); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.data)
			assert.ErrorIs(t, tt.read(r), ErrShortBuffer)
		})
	}
}

func TestReaderDoesNotAdvanceOnFailure(t *testing.T) {
	r := NewReader([]byte{0xAB})
	_, err := r.Uint32()
	require.ErrorIs(t, err, ErrShortBuffer)

	b, err := r.Byte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), b)
}

func TestBytesAliasing(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	r := NewReader(data)
	b, err := r.Bytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)

	rest, err := r.Bytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 4}, rest)

	// Zero-length reads at the end of the buffer are valid.
	empty, err := r.Bytes(0)
	require.NoError(t, err)
	assert.Len(t, empty, 0)
}
