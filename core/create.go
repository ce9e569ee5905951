package kunda

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/meigma/kunda/core/internal/container"
	"github.com/meigma/kunda/core/internal/header"
	"github.com/meigma/kunda/core/internal/pathpack"
	"github.com/meigma/kunda/core/internal/press"
)

// CreateStats summarizes a finished create operation.
type CreateStats struct {
	Files           int
	TextFiles       int
	BinaryFiles     int
	CompressedFiles int
	EmptyFiles      int
	Prefixes        int

	// TotalBytes is the raw input size, ContainerBytes the serialized
	// container, CompressedBytes the payload after compression and
	// ArchiveBytes the final file including the header.
	TotalBytes      uint64
	ContainerBytes  uint64
	CompressedBytes uint64
	ArchiveBytes    uint64

	Elapsed time.Duration
}

// Ratio returns the archive size as a fraction of the container size, or
// zero for an empty container.
func (s *CreateStats) Ratio() float64 {
	if s.ContainerBytes == 0 {
		return 0
	}
	return float64(s.ArchiveBytes) / float64(s.ContainerBytes)
}

// creator holds state for one create operation.
type creator struct {
	cfg   createConfig
	stats CreateStats
}

// log returns the logger, falling back to a discard logger if nil.
func (c *creator) log() *slog.Logger {
	if c.cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.cfg.logger
}

// reportFile sends a per-file progress event and folds the file into the
// running statistics.
func (c *creator) reportFile(stage ProgressStage, rec Record, files int) {
	t := DetectType(rec.Content)
	switch t {
	case TypeEmpty:
		c.stats.EmptyFiles++
	case TypeText:
		c.stats.TextFiles++
	case TypeCompressed:
		c.stats.CompressedFiles++
	default:
		c.stats.BinaryFiles++
	}
	c.stats.TotalBytes += uint64(len(rec.Content))

	if c.cfg.progress == nil {
		return
	}
	c.cfg.progress(ProgressEvent{
		Stage: stage,
		Path:  rec.Path,
		Type:  t,
		Size:  uint64(len(rec.Content)),
		Files: files,
		Bytes: c.stats.TotalBytes,
	})
}

// reportStage signals the start of a pipeline phase.
func (c *creator) reportStage(stage ProgressStage) {
	if c.cfg.progress == nil {
		return
	}
	c.cfg.progress(ProgressEvent{Stage: stage, Files: c.stats.Files, Bytes: c.stats.TotalBytes})
}

// Create packs the file or directory at input into a single archive file
// at output.
//
// The pipeline runs as ordered blocking phases: scan, path analysis,
// container encoding, compression, checksumming, write. The entire
// container and its compressed form are resident in memory at once; a
// failed creation may leave a partial output file behind.
func Create(ctx context.Context, input, output string, opts ...CreateOption) (*CreateStats, error) {
	cfg := createConfig{preset: DefaultPreset, checksum: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxFiles == 0 {
		cfg.maxFiles = DefaultMaxFiles
	} else if cfg.maxFiles < 0 {
		cfg.maxFiles = math.MaxInt
	}

	c := &creator{cfg: cfg}
	start := time.Now()

	c.reportStage(StageScanning)
	records, err := c.scan(ctx, input)
	if err != nil {
		return nil, err
	}
	c.stats.Files = len(records)
	c.log().Info("scan complete",
		"files", len(records),
		"bytes", c.stats.TotalBytes,
		"text", c.stats.TextFiles,
		"binary", c.stats.BinaryFiles,
		"compressed", c.stats.CompressedFiles)

	c.reportStage(StageAnalyzing)
	paths := make([]string, len(records))
	for i, rec := range records {
		paths[i] = rec.Path
	}
	prefixes := pathpack.Analyze(paths)
	c.stats.Prefixes = len(prefixes)
	c.log().Debug("path analysis complete", "prefixes", len(prefixes))

	c.reportStage(StageEncoding)
	payload, err := container.Encode(prefixes, records)
	if err != nil {
		return nil, err
	}
	c.stats.ContainerBytes = uint64(len(payload))

	c.reportStage(StageCompressing)
	compressed, method, err := press.Compress(payload, cfg.preset)
	if err != nil {
		return nil, err
	}
	c.stats.CompressedBytes = uint64(len(compressed))
	c.log().Info("compression complete",
		"preset", cfg.preset,
		"container_bytes", len(payload),
		"compressed_bytes", len(compressed))

	// The prefix table travels in every archive, so the flag is set even
	// when no stored path was rewritten.
	flags := byte(header.FlagPathCompressed)
	var dig []byte
	if cfg.checksum {
		c.reportStage(StageChecksumming)
		flags |= header.FlagChecksummed
		dig = header.Sum(compressed)
	}

	hdr, err := header.New(method, flags, len(payload), len(compressed), dig)
	if err != nil {
		return nil, err
	}

	c.reportStage(StageWriting)
	out := hdr.Append(make([]byte, 0, hdr.Len()+len(compressed)))
	out = append(out, compressed...)
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return nil, fmt.Errorf("write archive %s: %w", output, err)
	}

	c.stats.ArchiveBytes = uint64(len(out))
	c.stats.Elapsed = time.Since(start)
	c.log().Info("archive written",
		"output", output,
		"archive_bytes", len(out),
		"elapsed", c.stats.Elapsed)
	return &c.stats, nil
}
