// Package kunda packs a file or directory tree into a single archive
// tuned for maximum compression ratio, and extracts such archives.
//
// An archive is one flat container (a prefix table plus the full file
// list) compressed as a whole with a tuned LZMA2 configuration and
// wrapped in a small header carrying sizes, flags and an optional
// integrity digest. There is no random access: extraction decompresses
// the whole container before the first file is written.
//
// The package is a thin facade over [github.com/meigma/kunda/core],
// which holds the pipeline; the kunda command under cmd/kunda is the
// canonical caller.
package kunda
