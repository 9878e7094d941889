package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotStoreSaveAndLoad(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save("week12", []byte(`{"version":1}`))
	require.NoError(t, err)
	assert.Equal(t, "week12.json", name)

	data, err := store.Load("week12")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1}`, string(data))

	// the extension form resolves to the same file
	data, err = store.Load("week12.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1}`, string(data))
}

func TestSnapshotStoreList(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSnapshotStore(dir)
	require.NoError(t, err)

	_, err = store.Save("b", []byte(`{}`))
	require.NoError(t, err)
	_, err = store.Save("a", []byte(`{}`))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.json"}, names)
}

func TestSnapshotStoreSanitisesNames(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSnapshotStore(dir)
	require.NoError(t, err)

	name, err := store.Save("../../etc/passwd", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "passwd.json", name)
	assert.FileExists(t, filepath.Join(dir, "passwd.json"))

	_, err = store.Save("  ", nil)
	assert.Error(t, err)
}

func TestSnapshotStoreLoadMissingFile(t *testing.T) {
	store, err := NewSnapshotStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("nope")
	assert.Error(t, err)
}
