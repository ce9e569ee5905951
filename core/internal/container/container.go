// Package container serializes the archive's decompressed payload: a table
// of shared path prefixes followed by the full file list. The layout is a
// flat sequence of big-endian length-prefixed fields with no internal
// framing, so a container is always decoded as a whole.
package container

import (
	"errors"
	"fmt"
	"math"

	"github.com/meigma/kunda/core/internal/pathpack"
	"github.com/meigma/kunda/core/internal/wire"
)

// Implementation ceilings. These bound what this tool will produce or
// accept; they are not part of the wire layout itself.
const (
	// MaxPathLen is the longest stored path accepted on either side.
	MaxPathLen = 4096

	// MaxFiles bounds the file count accepted during decode and is the
	// default creation limit.
	MaxFiles = 100000
)

// DupMarker is the reserved content-length value indicating that a record
// stores a reference to an earlier record's content instead of bytes.
const DupMarker = 0xFFFFFFFF

// Sentinel errors for the two ways serialization can fail.
var (
	// ErrOverflow is returned by Encode when a length does not fit its
	// declared field width. Truncating a size field would corrupt every
	// record after it, so this is always a hard failure.
	ErrOverflow = errors.New("kunda: size field overflow")

	// ErrCorrupt is returned by Decode for any structurally invalid
	// input: a length pointing past the end of the buffer, an
	// out-of-range prefix reference, or an unresolvable duplicate.
	ErrCorrupt = errors.New("kunda: corrupt archive")
)

// Record is one logical member of the archive.
//
// When IsDuplicate is set, DuplicateOf names an earlier record whose
// content this one shares; Content is filled in during decode. Records
// returned by Decode alias the input buffer and must be treated as
// read-only.
type Record struct {
	Path        string
	Content     []byte
	IsDuplicate bool
	DuplicateOf string
}

// Encode serializes the prefix table and file list into a single buffer.
//
// Encode is a pure function of its inputs: it performs no compression and
// no I/O, and identical inputs always produce identical bytes. Any length
// that does not fit its field width fails with ErrOverflow, including a
// real content length colliding with DupMarker.
func Encode(prefixes []pathpack.Prefix, files []Record) ([]byte, error) {
	if len(prefixes) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d prefixes", ErrOverflow, len(prefixes))
	}
	if uint64(len(files)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d files", ErrOverflow, len(files))
	}

	buf := make([]byte, 0, encodedSize(prefixes, files))
	buf = wire.AppendUint16(buf, uint16(len(prefixes)))
	for _, p := range prefixes {
		if len(p.Prefix) > MaxPathLen {
			return nil, fmt.Errorf("%w: prefix %q is %d bytes", ErrOverflow, p.Prefix[:32], len(p.Prefix))
		}
		buf = wire.AppendUint16(buf, uint16(len(p.Prefix)))
		buf = append(buf, p.Prefix...)
	}

	buf = wire.AppendUint32(buf, uint32(len(files)))
	for _, f := range files {
		if len(f.Path) > MaxPathLen {
			return nil, fmt.Errorf("%w: path is %d bytes", ErrOverflow, len(f.Path))
		}
		buf = wire.AppendUint16(buf, uint16(len(f.Path)))
		buf = append(buf, f.Path...)

		if f.IsDuplicate {
			if len(f.DuplicateOf) > MaxPathLen {
				return nil, fmt.Errorf("%w: duplicate reference is %d bytes", ErrOverflow, len(f.DuplicateOf))
			}
			buf = wire.AppendUint32(buf, DupMarker)
			buf = wire.AppendUint16(buf, uint16(len(f.DuplicateOf)))
			buf = append(buf, f.DuplicateOf...)
			continue
		}

		if uint64(len(f.Content)) >= DupMarker {
			return nil, fmt.Errorf("%w: content of %q is %d bytes", ErrOverflow, f.Path, len(f.Content))
		}
		buf = wire.AppendUint32(buf, uint32(len(f.Content)))
		buf = append(buf, f.Content...)
	}
	return buf, nil
}

// encodedSize computes the exact serialized length so Encode allocates
// once.
func encodedSize(prefixes []pathpack.Prefix, files []Record) int {
	n := 2 + 4
	for _, p := range prefixes {
		n += 2 + len(p.Prefix)
	}
	for _, f := range files {
		n += 2 + len(f.Path) + 4
		if f.IsDuplicate {
			n += 2 + len(f.DuplicateOf)
		} else {
			n += len(f.Content)
		}
	}
	return n
}

// Decode parses a container produced by Encode (or any compatible writer)
// back into its prefix table and file records.
//
// The input comes from a decompressed, otherwise-unverified byte stream,
// so every length field is validated against the remaining buffer before
// it is used; Decode never reads past the end of data. Stored paths in
// the $<index>$<suffix> reference form are expanded against the prefix
// table. Duplicate records receive a copy of the referenced record's
// content, deferring resolution when the referent has not been
// materialized yet. Returned records alias data.
func Decode(data []byte) ([]string, []Record, error) {
	r := wire.NewReader(data)

	prefixCount, err := r.Uint16()
	if err != nil {
		return nil, nil, corrupt("prefix count", err)
	}
	prefixes := make([]string, 0, prefixCount)
	for i := 0; i < int(prefixCount); i++ {
		n, err := r.Uint16()
		if err != nil {
			return nil, nil, corrupt("prefix length", err)
		}
		if int(n) > MaxPathLen {
			return nil, nil, fmt.Errorf("%w: prefix length %d exceeds limit %d", ErrCorrupt, n, MaxPathLen)
		}
		b, err := r.Bytes(int(n))
		if err != nil {
			return nil, nil, corrupt("prefix bytes", err)
		}
		prefixes = append(prefixes, string(b))
	}

	fileCount, err := r.Uint32()
	if err != nil {
		return nil, nil, corrupt("file count", err)
	}
	if fileCount > MaxFiles {
		return nil, nil, fmt.Errorf("%w: file count %d exceeds limit %d", ErrCorrupt, fileCount, MaxFiles)
	}
	// Every record occupies at least six bytes, so an honest count can
	// never exceed the remaining input. Checking up front keeps a forged
	// count from driving a huge allocation.
	if int(fileCount) > r.Len()/6+1 {
		return nil, nil, fmt.Errorf("%w: file count %d exceeds remaining input", ErrCorrupt, fileCount)
	}

	records := make([]Record, 0, fileCount)
	byPath := make(map[string]int, fileCount)
	var pending []int

	for i := 0; i < int(fileCount); i++ {
		pathLen, err := r.Uint16()
		if err != nil {
			return nil, nil, corrupt("path length", err)
		}
		if int(pathLen) > MaxPathLen {
			return nil, nil, fmt.Errorf("%w: path length %d exceeds limit %d", ErrCorrupt, pathLen, MaxPathLen)
		}
		stored, err := r.Bytes(int(pathLen))
		if err != nil {
			return nil, nil, corrupt("path bytes", err)
		}
		path, err := pathpack.Expand(string(stored), prefixes)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}

		size, err := r.Uint32()
		if err != nil {
			return nil, nil, corrupt("content length", err)
		}

		rec := Record{Path: path}
		if size == DupMarker {
			dupLen, err := r.Uint16()
			if err != nil {
				return nil, nil, corrupt("duplicate reference length", err)
			}
			if int(dupLen) > MaxPathLen {
				return nil, nil, fmt.Errorf("%w: duplicate reference length %d exceeds limit %d", ErrCorrupt, dupLen, MaxPathLen)
			}
			dupStored, err := r.Bytes(int(dupLen))
			if err != nil {
				return nil, nil, corrupt("duplicate reference bytes", err)
			}
			dupPath, err := pathpack.Expand(string(dupStored), prefixes)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
			}
			rec.IsDuplicate = true
			rec.DuplicateOf = dupPath
			pending = append(pending, i)
		} else {
			content, err := r.Bytes(int(size))
			if err != nil {
				return nil, nil, corrupt("content bytes", err)
			}
			rec.Content = content
		}

		if _, seen := byPath[path]; !seen {
			byPath[path] = i
		}
		records = append(records, rec)
	}

	if err := resolveDuplicates(records, byPath, pending); err != nil {
		return nil, nil, err
	}
	return prefixes, records, nil
}

// resolveDuplicates fills in content for duplicate records, iterating so a
// duplicate may reference another duplicate as long as some chain ends at
// a materialized record.
func resolveDuplicates(records []Record, byPath map[string]int, pending []int) error {
	for len(pending) > 0 {
		var unresolved []int
		for _, i := range pending {
			j, ok := byPath[records[i].DuplicateOf]
			if !ok {
				return fmt.Errorf("%w: duplicate of unknown path %q", ErrCorrupt, records[i].DuplicateOf)
			}
			if records[j].IsDuplicate && records[j].Content == nil {
				unresolved = append(unresolved, i)
				continue
			}
			records[i].Content = records[j].Content
		}
		if len(unresolved) == len(pending) {
			return fmt.Errorf("%w: unresolvable duplicate reference chain", ErrCorrupt)
		}
		pending = unresolved
	}
	return nil
}

func corrupt(field string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrCorrupt, field, err)
}
