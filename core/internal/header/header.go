// Package header defines the fixed preamble of an archive file and the
// optional integrity digest computed over the compressed payload.
package header

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/kunda/core/internal/container"
	"github.com/meigma/kunda/core/internal/wire"
)

// Magic identifies an archive file. The trailing NUL bytes pad the
// signature to eight bytes.
const Magic = "KUNDA\x00\x00\x00"

// Version is the current archive format version.
const Version = 2

// Flag bits carried in the header.
const (
	// FlagEncrypted is reserved by the format and never set.
	FlagEncrypted = 0x01

	// FlagChecksummed marks that a digest of the compressed payload
	// follows the size fields.
	FlagChecksummed = 0x02

	// FlagPathCompressed marks that the container carries a prefix
	// table. The writer sets it unconditionally.
	FlagPathCompressed = 0x04
)

// DigestLen is the size of the stored payload digest.
const DigestLen = 32

// baseLen is the header length without the optional digest.
const baseLen = len(Magic) + 1 + 1 + 1 + 4 + 4

// Sentinel errors for header parsing and verification.
var (
	ErrBadMagic  = errors.New("kunda: not a kunda archive")
	ErrVersion   = errors.New("kunda: unsupported archive version")
	ErrTruncated = errors.New("kunda: truncated archive")
	ErrIntegrity = errors.New("kunda: archive checksum mismatch")
)

// ErrOverflow is shared with the container codec: both fail the same way
// when a length cannot be represented in its field.
var ErrOverflow = container.ErrOverflow

// truncated wraps a short-read error from the wire reader in ErrTruncated.
func truncated(err error) error {
	return fmt.Errorf("%w: %v", ErrTruncated, err)
}

// Header is the fixed-size preamble that ties size, flag and digest
// metadata to the compressed payload following it.
type Header struct {
	Method         byte
	Flags          byte
	OriginalSize   uint32
	CompressedSize uint32

	// Digest holds the 32-byte payload digest when FlagChecksummed is
	// set, nil otherwise.
	Digest []byte
}

// Checksummed reports whether the header carries a payload digest.
func (h *Header) Checksummed() bool {
	return h.Flags&FlagChecksummed != 0
}

// Len returns the serialized header length.
func (h *Header) Len() int {
	if h.Checksummed() {
		return baseLen + DigestLen
	}
	return baseLen
}

// Append serializes the header onto b.
func (h *Header) Append(b []byte) []byte {
	b = append(b, Magic...)
	b = append(b, Version, h.Method, h.Flags)
	b = wire.AppendUint32(b, h.OriginalSize)
	b = wire.AppendUint32(b, h.CompressedSize)
	if h.Checksummed() {
		b = append(b, h.Digest...)
	}
	return b
}

// Parse reads the header from the start of an archive file and returns it
// together with the compressed payload that follows. The payload slice
// aliases data.
func Parse(data []byte) (Header, []byte, error) {
	r := wire.NewReader(data)

	magic, err := r.Bytes(len(Magic))
	if err != nil {
		return Header{}, nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrTruncated, len(data))
	}
	if !bytes.Equal(magic, []byte(Magic)) {
		return Header{}, nil, ErrBadMagic
	}

	version, err := r.Byte()
	if err != nil {
		return Header{}, nil, truncated(err)
	}
	if version != Version {
		return Header{}, nil, fmt.Errorf("%w: %d", ErrVersion, version)
	}

	var h Header
	if h.Method, err = r.Byte(); err != nil {
		return Header{}, nil, truncated(err)
	}
	if h.Flags, err = r.Byte(); err != nil {
		return Header{}, nil, truncated(err)
	}
	if h.OriginalSize, err = r.Uint32(); err != nil {
		return Header{}, nil, truncated(err)
	}
	if h.CompressedSize, err = r.Uint32(); err != nil {
		return Header{}, nil, truncated(err)
	}
	if h.Checksummed() {
		if h.Digest, err = r.Bytes(DigestLen); err != nil {
			return Header{}, nil, truncated(err)
		}
	}

	payload, err := r.Bytes(int(h.CompressedSize))
	if err != nil {
		return Header{}, nil, fmt.Errorf("%w: payload shorter than the %d bytes the header claims", ErrTruncated, h.CompressedSize)
	}
	return h, payload, nil
}

// New builds a header for a compressed payload, failing when either size
// does not fit the 32-bit fields.
func New(method, flags byte, originalSize, compressedSize int, dig []byte) (Header, error) {
	if originalSize < 0 || uint64(originalSize) > math.MaxUint32 {
		return Header{}, fmt.Errorf("%w: container is %d bytes", ErrOverflow, originalSize)
	}
	if compressedSize < 0 || uint64(compressedSize) > math.MaxUint32 {
		return Header{}, fmt.Errorf("%w: compressed payload is %d bytes", ErrOverflow, compressedSize)
	}
	return Header{
		Method:         method,
		Flags:          flags,
		OriginalSize:   uint32(originalSize),
		CompressedSize: uint32(compressedSize),
		Digest:         dig,
	}, nil
}

// Sum computes the integrity digest over the compressed payload bytes.
func Sum(payload []byte) []byte {
	d := digest.SHA256.FromBytes(payload)
	raw, err := hex.DecodeString(d.Encoded())
	if err != nil {
		// digest.Encoded always returns valid hex for SHA256.
		panic(err)
	}
	return raw
}

// Verify recomputes the payload digest and compares it to the stored
// value.
func Verify(payload, want []byte) error {
	got := Sum(payload)
	if !bytes.Equal(got, want) {
		return fmt.Errorf("%w: computed %x, header stores %x", ErrIntegrity, got, want)
	}
	return nil
}
