package kunda

import kundacore "github.com/meigma/kunda/core"

// Errors re-exported from core.
var (
	// ErrCorrupt is returned when decode encounters a structurally
	// invalid field, an out-of-range prefix reference, or a length
	// pointing past the end of the input.
	ErrCorrupt = kundacore.ErrCorrupt

	// ErrOverflow is returned when a length cannot be represented in
	// its size field; the archive is not written.
	ErrOverflow = kundacore.ErrOverflow

	// ErrCompress is returned when the codec fails while compressing.
	ErrCompress = kundacore.ErrCompress

	// ErrDecompress is returned when the compressed stream ends early
	// or is internally inconsistent.
	ErrDecompress = kundacore.ErrDecompress

	// ErrBadMagic is returned when the input is not a kunda archive.
	ErrBadMagic = kundacore.ErrBadMagic

	// ErrVersion is returned for an unsupported format version.
	ErrVersion = kundacore.ErrVersion

	// ErrTruncated is returned when an archive file is shorter than
	// its header claims.
	ErrTruncated = kundacore.ErrTruncated

	// ErrIntegrity is returned when the stored digest does not match
	// the compressed payload.
	ErrIntegrity = kundacore.ErrIntegrity

	// ErrTooManyFiles is returned when the file count exceeds the
	// configured limit.
	ErrTooManyFiles = kundacore.ErrTooManyFiles

	// ErrPathTooLong is returned when a relative path exceeds the
	// supported length.
	ErrPathTooLong = kundacore.ErrPathTooLong
)
