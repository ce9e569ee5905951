package kunda

import (
	"context"

	kundacore "github.com/meigma/kunda/core"
)

// Extract unpacks the archive at archivePath into outputDir, recreating
// the stored relative directory structure.
//
// When the archive carries a digest, it is verified before the payload
// is decompressed unless verification is disabled through an option.
func Extract(ctx context.Context, archivePath, outputDir string, opts ...ExtractOption) (*ExtractStats, error) {
	return kundacore.Extract(ctx, archivePath, outputDir, opts...)
}
