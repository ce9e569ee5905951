package kunda

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/meigma/kunda/core/internal/container"
	"github.com/meigma/kunda/core/internal/header"
	"github.com/meigma/kunda/core/internal/press"
)

// ExtractStats summarizes a finished extract operation.
type ExtractStats struct {
	Files   int
	Bytes   uint64
	Elapsed time.Duration
}

// extractor holds state for one extract operation.
type extractor struct {
	cfg extractConfig
}

func (e *extractor) log() *slog.Logger {
	if e.cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.cfg.logger
}

func (e *extractor) report(stage ProgressStage, p string, files int, bytes uint64) {
	if e.cfg.progress == nil {
		return
	}
	e.cfg.progress(ProgressEvent{Stage: stage, Path: p, Files: files, Bytes: bytes})
}

// Extract unpacks the archive at archivePath into outputDir, recreating
// the stored relative directory structure.
//
// When the archive carries a digest and verification is enabled, the
// digest is checked before the payload is decompressed, so no file is
// written from a payload that fails verification. Files already written
// before a later failure are not rolled back.
func Extract(ctx context.Context, archivePath, outputDir string, opts ...ExtractOption) (*ExtractStats, error) {
	cfg := extractConfig{verify: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	e := &extractor{cfg: cfg}
	start := time.Now()

	data, err := os.ReadFile(archivePath)
	if err != nil {
		return nil, fmt.Errorf("read archive %s: %w", archivePath, err)
	}

	hdr, payload, err := header.Parse(data)
	if err != nil {
		return nil, err
	}
	e.log().Debug("header parsed",
		"method", hdr.Method,
		"flags", hdr.Flags,
		"original_bytes", hdr.OriginalSize,
		"compressed_bytes", hdr.CompressedSize)

	if hdr.Checksummed() && cfg.verify {
		e.report(StageVerifying, "", 0, 0)
		if err := header.Verify(payload, hdr.Digest); err != nil {
			return nil, err
		}
	}

	e.report(StageDecompressing, "", 0, 0)
	plain, err := press.Decompress(payload, int(hdr.OriginalSize))
	if err != nil {
		return nil, err
	}

	prefixes, records, err := container.Decode(plain)
	if err != nil {
		return nil, err
	}
	e.log().Debug("container decoded", "files", len(records), "prefixes", len(prefixes))

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", outputDir, err)
	}
	root, err := os.OpenRoot(outputDir)
	if err != nil {
		return nil, fmt.Errorf("open output directory %s: %w", outputDir, err)
	}
	defer root.Close()

	stats := ExtractStats{}
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := e.writeFile(root, rec); err != nil {
			return nil, err
		}
		stats.Files++
		stats.Bytes += uint64(len(rec.Content))
		e.report(StageExtracting, rec.Path, stats.Files, stats.Bytes)
	}

	stats.Elapsed = time.Since(start)
	e.log().Info("archive extracted",
		"output", outputDir,
		"files", stats.Files,
		"bytes", stats.Bytes,
		"elapsed", stats.Elapsed)
	return &stats, nil
}

// writeFile materializes one record inside the output root. Decoded paths
// are untrusted, so all writes go through os.Root, which refuses paths
// that escape the output directory.
func (e *extractor) writeFile(root *os.Root, rec Record) error {
	if dir := path.Dir(rec.Path); dir != "." {
		if err := root.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	f, err := root.Create(rec.Path)
	if err != nil {
		return fmt.Errorf("create %s: %w", rec.Path, err)
	}
	if _, err := f.Write(rec.Content); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", rec.Path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", rec.Path, err)
	}
	return nil
}
