package kunda

import (
	"context"

	kundacore "github.com/meigma/kunda/core"
)

// Create packs the file or directory at input into a single archive file
// at output.
//
// The operation runs as a strictly ordered sequence of blocking phases:
// scan, path analysis, container encoding, compression, checksumming,
// write. A failed creation may leave a partial output file behind; the
// destination is a single new file, so a caller can simply re-run.
func Create(ctx context.Context, input, output string, opts ...CreateOption) (*CreateStats, error) {
	return kundacore.Create(ctx, input, output, opts...)
}
