package kunda

import (
	"github.com/meigma/kunda/core/internal/container"
	"github.com/meigma/kunda/core/internal/header"
	"github.com/meigma/kunda/core/internal/pathpack"
	"github.com/meigma/kunda/core/internal/press"
)

// Re-export the data model from the internal packages for callers and for
// the public facade.
type (
	// Record represents one file stored in an archive.
	Record = container.Record

	// Prefix is a shared directory prefix discovered during path
	// analysis.
	Prefix = pathpack.Prefix
)

// Named ceilings of this implementation. They bound what the tool
// produces and accepts; the wire layout itself carries no such limits.
const (
	// MaxPathLen is the longest path stored in an archive.
	MaxPathLen = container.MaxPathLen

	// DefaultMaxFiles is the creation limit used when no MaxFiles
	// option is set, and the hard ceiling applied during decode.
	DefaultMaxFiles = container.MaxFiles
)

// DefaultPreset is the compression preset used when none is given.
const DefaultPreset = "ultra"

// Archive flag bits, as stored in the file header.
const (
	FlagEncrypted      = header.FlagEncrypted
	FlagChecksummed    = header.FlagChecksummed
	FlagPathCompressed = header.FlagPathCompressed
)

// Sentinel errors re-exported from the internal packages.
var (
	// ErrCorrupt is returned when decode encounters a structurally
	// invalid field, an out-of-range prefix reference, or a length
	// pointing past the end of the input.
	ErrCorrupt = container.ErrCorrupt

	// ErrOverflow is returned when a length cannot be represented in
	// its size field; the archive is not written.
	ErrOverflow = container.ErrOverflow

	// ErrCompress is returned when the codec fails while compressing.
	ErrCompress = press.ErrCompress

	// ErrDecompress is returned when the compressed stream ends early
	// or is internally inconsistent.
	ErrDecompress = press.ErrDecompress

	// ErrBadMagic is returned when the input is not a kunda archive.
	ErrBadMagic = header.ErrBadMagic

	// ErrVersion is returned for an unsupported format version.
	ErrVersion = header.ErrVersion

	// ErrTruncated is returned when an archive file is shorter than its
	// header claims.
	ErrTruncated = header.ErrTruncated

	// ErrIntegrity is returned when the stored digest does not match
	// the compressed payload.
	ErrIntegrity = header.ErrIntegrity
)
