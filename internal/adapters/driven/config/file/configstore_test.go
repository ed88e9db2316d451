package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreDefaults(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	cfg := s.Config()
	assert.Equal(t, "filesystem", cfg.Corpus.Source)
	assert.Equal(t, 512, cfg.Retrieval.ChunkSize)
	assert.Equal(t, 50, cfg.Retrieval.ChunkOverlap)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.InDelta(t, 0.3, cfg.Retrieval.Threshold, 1e-9)
}

func TestUpdateAndReload(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)

	cfg := s.Config()
	cfg.Embedding.Provider = "ollama"
	cfg.Embedding.Model = "nomic-embed-text"
	cfg.Corpus.Path = "/srv/scriptures"
	require.NoError(t, s.Update(cfg))

	// A fresh store sees the persisted values.
	s2, err := NewStore(dir)
	require.NoError(t, err)
	got := s2.Config()
	assert.Equal(t, "ollama", got.Embedding.Provider)
	assert.Equal(t, "/srv/scriptures", got.Corpus.Path)
	// Untouched fields keep defaults.
	assert.Equal(t, 5, got.Retrieval.TopK)
}

func TestLoadPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[retrieval]\ntop_k = 10\n"), 0600))

	s, err := NewStore(dir)
	require.NoError(t, err)

	cfg := s.Config()
	assert.Equal(t, 10, cfg.Retrieval.TopK)
	assert.Equal(t, 512, cfg.Retrieval.ChunkSize)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0600))

	_, err := NewStore(dir)
	assert.Error(t, err)
}

func TestSavePermissions(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save())

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
