// Package kunda implements the archive pipeline behind the kunda tool:
// filesystem scanning, shared-prefix path analysis, container encoding,
// tuned LZMA2 compression and integrity checking on the way in, and the
// mirror image of those phases on the way out.
//
// Creation and extraction are strictly ordered sequences of blocking
// phases. Buffers are handed off from one phase to the next rather than
// shared, and the first error aborts the whole operation; nothing is
// retried.
package kunda
