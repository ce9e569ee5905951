package header

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendParseRoundTrip(t *testing.T) {
	payload := []byte("compressed bytes")

	t.Run("with digest", func(t *testing.T) {
		h, err := New(3, FlagPathCompressed|FlagChecksummed, 1000, len(payload), Sum(payload))
		require.NoError(t, err)

		data := h.Append(nil)
		data = append(data, payload...)
		assert.Equal(t, h.Len()+len(payload), len(data))

		got, gotPayload, err := Parse(data)
		require.NoError(t, err)
		assert.Equal(t, h, got)
		assert.Equal(t, payload, gotPayload)
		assert.True(t, got.Checksummed())
	})

	t.Run("without digest", func(t *testing.T) {
		h, err := New(3, FlagPathCompressed, 1000, len(payload), nil)
		require.NoError(t, err)

		data := append(h.Append(nil), payload...)
		got, gotPayload, err := Parse(data)
		require.NoError(t, err)
		assert.False(t, got.Checksummed())
		assert.Nil(t, got.Digest)
		assert.Equal(t, payload, gotPayload)
	})
}

func TestParseRejects(t *testing.T) {
	h, err := New(3, FlagChecksummed, 10, 4, Sum([]byte("abcd")))
	require.NoError(t, err)
	valid := append(h.Append(nil), "abcd"...)

	t.Run("bad magic", func(t *testing.T) {
		data := append([]byte{}, valid...)
		data[0] = 'X'
		_, _, err := Parse(data)
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("unknown version", func(t *testing.T) {
		data := append([]byte{}, valid...)
		data[8] = 99
		_, _, err := Parse(data)
		assert.ErrorIs(t, err, ErrVersion)
	})

	t.Run("truncated at every offset", func(t *testing.T) {
		for i := 0; i < len(valid); i++ {
			_, _, err := Parse(valid[:i])
			require.Error(t, err, "offset %d", i)
		}
	})

	t.Run("payload shorter than claimed", func(t *testing.T) {
		_, _, err := Parse(valid[:len(valid)-1])
		assert.ErrorIs(t, err, ErrTruncated)
	})
}

func TestNewOverflow(t *testing.T) {
	_, err := New(3, 0, 1<<33, 10, nil)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = New(3, 0, 10, 1<<33, nil)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestSumMatchesSHA256(t *testing.T) {
	payload := []byte("payload under test")
	want := sha256.Sum256(payload)
	assert.Equal(t, want[:], Sum(payload))
	assert.Len(t, Sum(nil), DigestLen)
}

func TestVerify(t *testing.T) {
	payload := []byte("payload under test")
	dig := Sum(payload)

	require.NoError(t, Verify(payload, dig))

	// Any flipped payload bit must be caught.
	mutated := append([]byte{}, payload...)
	mutated[3] ^= 0x10
	assert.ErrorIs(t, Verify(mutated, dig), ErrIntegrity)

	assert.ErrorIs(t, Verify(payload, make([]byte, DigestLen)), ErrIntegrity)
}
