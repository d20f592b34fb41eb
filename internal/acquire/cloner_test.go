package acquire

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloner_EmptyURL(t *testing.T) {
	c := NewCloner(t.TempDir(), 0)

	_, err := c.Clone(context.Background(), "   ")

	assert.True(t, errors.Is(err, ErrEmptyURL), "got %v", err)
}

func TestCloner_FailureRemovesDirectory(t *testing.T) {
	base := filepath.Join(t.TempDir(), "clones")
	c := NewCloner(base, 1)

	missing := filepath.Join(t.TempDir(), "does-not-exist")
	_, err := c.Clone(context.Background(), missing)
	require.Error(t, err)

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed clone should leave no directory behind")
}

func TestCloner_CancelledContext(t *testing.T) {
	base := t.TempDir()
	c := NewCloner(base, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Clone(ctx, "https://example.invalid/repo.git")
	require.Error(t, err)

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCloner_Remove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "clone")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "f.txt"), []byte("x"), 0o644))

	require.NoError(t, NewCloner("", 0).Remove(dir))

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}
