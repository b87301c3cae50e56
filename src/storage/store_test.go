package storage_test

import (
	"testing"

	"keep-notes/src/storage"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SetAndGet(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := storage.NewFileStore(fs, "data")
	require.NoError(t, err)

	require.NoError(t, store.Set("notes", `[{"id":"1"}]`))

	got, err := store.Get("notes")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, got)
}

func TestFileStore_GetMissingKey(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := storage.NewFileStore(fs, "data")
	require.NoError(t, err)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestFileStore_SetOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := storage.NewFileStore(fs, "data")
	require.NoError(t, err)

	require.NoError(t, store.Set("notes", "first"))
	require.NoError(t, store.Set("notes", "second"))

	got, err := store.Get("notes")
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	// 一時ファイルが残らないこと
	exists, err := afero.Exists(fs, "data/notes.json.tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}
