// Package pathpack discovers directory prefixes shared by enough archive
// paths to be worth recording in the container's prefix table, and expands
// the $<index>$<suffix> reference tokens that shorten stored paths.
package pathpack

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// MaxPrefixes caps the number of distinct prefixes tracked during
	// analysis. Once the table is full, prefixes not yet seen are dropped
	// without error while already-tracked prefixes keep accumulating
	// counts. This is intentional degradation on pathological trees, not
	// a failure.
	MaxPrefixes = 1000

	// MinCount is the number of paths that must share a prefix for it to
	// survive filtering.
	MinCount = 3
)

// Prefix is a shared directory prefix. The string always ends in "/".
type Prefix struct {
	Prefix string
	Count  int
}

// Analyze counts every proper directory prefix of every path and returns
// the prefixes shared by at least MinCount paths, longest first. The
// relative order of equal-length prefixes is unspecified.
func Analyze(paths []string) []Prefix {
	counts := make(map[string]int)
	for _, p := range paths {
		for i := 0; i < len(p); i++ {
			if p[i] != '/' {
				continue
			}
			prefix := p[:i+1]
			if _, seen := counts[prefix]; !seen && len(counts) >= MaxPrefixes {
				continue
			}
			counts[prefix]++
		}
	}

	kept := make([]Prefix, 0, len(counts))
	for s, n := range counts {
		if n >= MinCount {
			kept = append(kept, Prefix{Prefix: s, Count: n})
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		return len(kept[i].Prefix) > len(kept[j].Prefix)
	})
	return kept
}

// Expand rewrites a stored path that references the prefix table. A stored
// path of the form $<index>$<suffix> concatenates the table entry at
// <index> with the suffix; anything else is returned verbatim. A path that
// begins with '$' but has no closing '$' is treated as a literal, matching
// the archive writer of record.
func Expand(stored string, prefixes []string) (string, error) {
	if !strings.HasPrefix(stored, "$") {
		return stored, nil
	}
	end := strings.IndexByte(stored[1:], '$')
	if end < 0 {
		return stored, nil
	}
	end++ // index of the closing '$' within stored

	idx, err := strconv.Atoi(stored[1:end])
	if err != nil {
		return "", fmt.Errorf("malformed prefix reference %q", stored)
	}
	if idx < 0 || idx >= len(prefixes) {
		return "", fmt.Errorf("prefix index %d out of range (table has %d entries)", idx, len(prefixes))
	}
	return prefixes[idx] + stored[end+1:], nil
}
