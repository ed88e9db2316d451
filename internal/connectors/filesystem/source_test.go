package filesystem

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shastra-labs/shastra-cli/internal/core/domain"
	"github.com/shastra-labs/shastra-cli/internal/logger"
)

func TestFetch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Gita.json"), []byte(`[{"english":"a"}]`), 0600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vedas"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vedas", "Rigveda.json"), []byte(`[]`), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore"), 0600))

	files, err := NewSource(dir).Fetch(context.Background())
	require.NoError(t, err)

	assert.Len(t, files, 2)
	assert.Contains(t, files, "Gita.json")
	assert.Contains(t, files, "vedas/Rigveda.json")
	assert.NotContains(t, files, "notes.txt")
}

func TestFetchMissingRoot(t *testing.T) {
	_, err := NewSource("/nonexistent/corpus").Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrCorpusLoad)
}

func TestFetchEmptyDir(t *testing.T) {
	files, err := NewSource(t.TempDir()).Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFetchCancelledContext(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Gita.json"), []byte(`[]`), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewSource(dir).Fetch(ctx)
	assert.Error(t, err)
}

func TestFetchWarnsAndSkipsUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Gita.json"), []byte(`[]`), 0600))
	// A dangling symlink walks as a regular file but cannot be read.
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "Broken.json")))

	var logs bytes.Buffer
	logger.SetVerbose(true)
	logger.SetOutput(&logs)
	t.Cleanup(func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})

	files, err := NewSource(dir).Fetch(context.Background())
	require.NoError(t, err)

	assert.Len(t, files, 1)
	assert.Contains(t, files, "Gita.json")
	assert.Contains(t, logs.String(), "Broken.json")
}
