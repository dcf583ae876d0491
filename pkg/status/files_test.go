package status

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskFileManager_WriteFileAtomic(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	m := NewFileManager()
	require.NoError(t, m.WriteFileAtomic(ctx, path, []byte("new content")))

	got, err := m.ReadFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "new content", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "mode should be preserved")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files should remain")
}

func TestDiskFileManager_WriteFileAtomic_MissingFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	err := NewFileManager().WriteFileAtomic(ctx, filepath.Join(dir, "gone.html"), []byte("x"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDiskFileManager_ReadFile_Missing(t *testing.T) {
	_, err := NewFileManager().ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiskFileManager_WriteFileAtomic_ReadOnlyFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can write read-only files")
	}

	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "locked.html")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o444))

	err := NewFileManager().WriteFileAtomic(ctx, path, []byte("new"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrPermission)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files should remain")
}
