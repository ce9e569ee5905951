package kunda_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/kunda"
)

func TestFacadeRoundTrip(t *testing.T) {
	input := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(input, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(input, "docs", "a.txt"), []byte("alpha"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(input, "docs", "b.txt"), []byte("beta"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(input, "empty"), nil, 0o644))

	archive := filepath.Join(t.TempDir(), "out.kun")
	outDir := filepath.Join(t.TempDir(), "extracted")

	stats, err := kunda.Create(context.Background(), input, archive,
		kunda.CreateWithPreset("fast"))
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Files)
	assert.Equal(t, 1, stats.EmptyFiles)

	xstats, err := kunda.Extract(context.Background(), archive, outDir)
	require.NoError(t, err)
	assert.Equal(t, 3, xstats.Files)

	for name, want := range map[string]string{
		"docs/a.txt": "alpha",
		"docs/b.txt": "beta",
		"empty":      "",
	} {
		got, err := os.ReadFile(filepath.Join(outDir, filepath.FromSlash(name)))
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	}
}

func TestFacadeErrorsAreComparable(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "bogus.kun")
	require.NoError(t, os.WriteFile(archive, []byte("not an archive, not even close"), 0o644))

	_, err := kunda.Extract(context.Background(), archive, t.TempDir())
	assert.ErrorIs(t, err, kunda.ErrBadMagic)
}
