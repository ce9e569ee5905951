package kunda

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/meigma/kunda/core/internal/container"
)

// Sentinel errors raised while scanning the input tree.
var (
	// ErrTooManyFiles is returned when the file count exceeds the
	// configured limit.
	ErrTooManyFiles = errors.New("kunda: too many files")

	// ErrPathTooLong is returned when a relative path exceeds
	// MaxPathLen bytes.
	ErrPathTooLong = errors.New("kunda: path too long")
)

// scan turns the input path into the ordered record list. A regular file
// becomes a single record holding just its base name; a directory is
// walked recursively in lexical order. Symlinks and other irregular
// entries are skipped.
func (c *creator) scan(ctx context.Context, input string) ([]Record, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	if info.Mode().IsRegular() {
		content, err := os.ReadFile(input)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", input, err)
		}
		rec := Record{Path: filepath.Base(input), Content: content}
		c.reportFile(StageScanning, rec, 1)
		return []Record{rec}, nil
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("kunda: input %s is not a regular file or directory", input)
	}

	root, err := os.OpenRoot(input)
	if err != nil {
		return nil, fmt.Errorf("open input directory: %w", err)
	}
	defer root.Close()

	var records []Record
	err = fs.WalkDir(root.FS(), ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			c.log().Debug("skipped irregular entry", "path", path)
			return nil
		}
		if len(records) >= c.cfg.maxFiles {
			return fmt.Errorf("%w: limit is %d", ErrTooManyFiles, c.cfg.maxFiles)
		}
		if len(path) > container.MaxPathLen {
			return fmt.Errorf("%w: %d bytes", ErrPathTooLong, len(path))
		}

		content, err := fs.ReadFile(root.FS(), path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		rec := Record{Path: path, Content: content}
		records = append(records, rec)
		c.reportFile(StageScanning, rec, len(records))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
