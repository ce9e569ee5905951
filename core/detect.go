package kunda

import (
	"bytes"

	"github.com/klauspost/compress"
)

// FileType classifies a file's content for the creation report. The
// classification never influences how content is stored.
type FileType uint8

const (
	TypeEmpty FileType = iota
	TypeText
	TypeBinary
	TypeCompressed
)

// String returns the report label for the type.
func (t FileType) String() string {
	switch t {
	case TypeEmpty:
		return "empty"
	case TypeText:
		return "text"
	case TypeCompressed:
		return "compressed"
	default:
		return "binary"
	}
}

// Signatures of formats that will not compress further.
var compressedMagics = [][]byte{
	{0x1f, 0x8b},                             // gzip
	[]byte("PK\x03\x04"),                     // zip
	[]byte("BZh"),                            // bzip2
	{0xfd, '7', 'z', 'X', 'Z', 0x00},         // xz
	{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, // png
}

const (
	detectSampleSize = 4096
	textThreshold    = 0.85
)

// DetectType guesses what kind of content a file holds, checking known
// compressed-format signatures first, then the ratio of printable bytes
// in a bounded sample. Unclassified data whose sample looks close to
// incompressible is reported as pre-compressed too.
func DetectType(data []byte) FileType {
	if len(data) == 0 {
		return TypeEmpty
	}
	for _, magic := range compressedMagics {
		if bytes.HasPrefix(data, magic) {
			return TypeCompressed
		}
	}
	if len(data) >= 2 && data[0] == 0xff && (data[1] == 0xd8 || data[1] == 0xd9) {
		return TypeCompressed // jpeg
	}

	sample := data
	if len(sample) > detectSampleSize {
		sample = sample[:detectSampleSize]
	}
	printable := 0
	for _, c := range sample {
		if (c >= 32 && c <= 126) || c == '\t' || c == '\n' || c == '\r' {
			printable++
		}
	}
	if float64(printable)/float64(len(sample)) > textThreshold {
		return TypeText
	}
	if len(sample) >= 128 && compress.Estimate(sample) < 0.1 {
		return TypeCompressed
	}
	return TypeBinary
}
