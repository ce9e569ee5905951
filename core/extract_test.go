package kunda

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createSample builds an archive from sampleTree and returns its path.
func createSample(t *testing.T, opts ...CreateOption) string {
	t.Helper()
	input := writeTree(t, sampleTree())
	archive := filepath.Join(t.TempDir(), "out.kun")
	opts = append([]CreateOption{CreateWithPreset("fast")}, opts...)
	_, err := Create(context.Background(), input, archive, opts...)
	require.NoError(t, err)
	return archive
}

func TestExtractRejectsTamperedPayload(t *testing.T) {
	archive := createSample(t)
	data, err := os.ReadFile(archive)
	require.NoError(t, err)

	// Flip one bit of the compressed payload; the stored digest must
	// catch it before anything is written.
	data[len(data)-1] ^= 0x01
	require.NoError(t, os.WriteFile(archive, data, 0o644))

	outDir := filepath.Join(t.TempDir(), "x")
	_, err = Extract(context.Background(), archive, outDir)
	assert.ErrorIs(t, err, ErrIntegrity)

	entries, err := os.ReadDir(outDir)
	if err == nil {
		assert.Empty(t, entries, "no files may be materialized after a digest mismatch")
	}
}

func TestExtractRejectsBadMagic(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "bogus.kun")
	require.NoError(t, os.WriteFile(archive, []byte("definitely not an archive"), 0o644))

	_, err := Extract(context.Background(), archive, t.TempDir())
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestExtractRejectsTruncatedArchive(t *testing.T) {
	archive := createSample(t)
	data, err := os.ReadFile(archive)
	require.NoError(t, err)

	for _, cut := range []int{4, 12, 40, len(data) - 1} {
		require.NoError(t, os.WriteFile(archive, data[:cut], 0o644))
		_, err := Extract(context.Background(), archive, t.TempDir())
		assert.ErrorIs(t, err, ErrTruncated, "cut at %d", cut)
	}
}

func TestExtractMissingArchive(t *testing.T) {
	_, err := Extract(context.Background(), filepath.Join(t.TempDir(), "nope.kun"), t.TempDir())
	assert.Error(t, err)
}

func TestExtractCanceledContext(t *testing.T) {
	archive := createSample(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Extract(ctx, archive, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractSkipsVerificationWhenDisabled(t *testing.T) {
	archive := createSample(t)
	outDir := filepath.Join(t.TempDir(), "x")

	_, err := Extract(context.Background(), archive, outDir,
		ExtractWithVerification(false))
	require.NoError(t, err)
	assert.Equal(t, sampleTree(), readTree(t, outDir))
}

func TestExtractProgressStages(t *testing.T) {
	archive := createSample(t)

	var stages []ProgressStage
	_, err := Extract(context.Background(), archive, t.TempDir(),
		ExtractWithProgress(func(ev ProgressEvent) {
			if len(stages) == 0 || stages[len(stages)-1] != ev.Stage {
				stages = append(stages, ev.Stage)
			}
		}))
	require.NoError(t, err)
	assert.Equal(t, []ProgressStage{
		StageVerifying,
		StageDecompressing,
		StageExtracting,
	}, stages)
}
