package local

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elaa0505/AzuraCast/internal/domain"
)

func seed(t *testing.T, store *Store, files map[string]string) {
	t.Helper()
	for p, content := range files {
		require.NoError(t, store.Fs().MkdirAll(filepath.Dir(native(p)), 0o755))
		require.NoError(t, afero.WriteFile(store.Fs(), native(p), []byte(content), 0o644))
	}
}

func TestStore_Metadata(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seed(t, store, map[string]string{"media/songs/a.mp3": "12345"})

	t.Run("file", func(t *testing.T) {
		e, err := store.Metadata(ctx, "media/songs/a.mp3")
		require.NoError(t, err)
		assert.Equal(t, domain.FileEntry{Kind: domain.FileKindFile, Path: "media/songs/a.mp3", Basename: "a.mp3", Size: 5}, e)
	})

	t.Run("directory", func(t *testing.T) {
		e, err := store.Metadata(ctx, "media/songs")
		require.NoError(t, err)
		assert.True(t, e.IsDir())
		assert.Equal(t, "songs", e.Basename)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := store.Metadata(ctx, "media/nope.mp3")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		exists, err := store.Exists(ctx, "media/nope.mp3")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestStore_List(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seed(t, store, map[string]string{
		"media/songs/a.mp3":        "a",
		"media/songs/sub/b.mp3":    "bb",
		"media/songs/sub/deep/c.m": "ccc",
	})

	shallow, err := store.List(ctx, "media/songs", false)
	require.NoError(t, err)
	require.Len(t, shallow, 2)
	assert.Equal(t, "media/songs/a.mp3", shallow[0].Path)
	assert.True(t, shallow[1].IsDir())

	deep, err := store.List(ctx, "media/songs", true)
	require.NoError(t, err)
	var paths []string
	for _, e := range deep {
		paths = append(paths, e.Path)
	}
	assert.Equal(t, []string{
		"media/songs/a.mp3",
		"media/songs/sub",
		"media/songs/sub/b.mp3",
		"media/songs/sub/deep",
		"media/songs/sub/deep/c.m",
	}, paths)

	_, err = store.List(ctx, "media/missing", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Mutations(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	seed(t, store, map[string]string{
		"media/a.mp3":       "a",
		"media/dir/b.mp3":   "b",
		"media/archive/.gk": "",
	})

	require.NoError(t, store.Rename(ctx, "media/a.mp3", "media/archive/a.mp3"))
	exists, err := store.Exists(ctx, "media/archive/a.mp3")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.ErrorIs(t, store.Rename(ctx, "media/a.mp3", "media/x.mp3"), domain.ErrNotFound)

	require.NoError(t, store.Delete(ctx, "media/archive/a.mp3"))
	assert.ErrorIs(t, store.Delete(ctx, "media/archive/a.mp3"), domain.ErrNotFound)

	require.NoError(t, store.DeleteRecursive(ctx, "media/dir"))
	exists, err = store.Exists(ctx, "media/dir/b.mp3")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.MkdirAll(ctx, "station_x/media/new"))
	meta, err := store.Metadata(ctx, "station_x/media/new")
	require.NoError(t, err)
	assert.True(t, meta.IsDir())
}

func TestNewStore_OnDisk(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := NewStore(filepath.Join(root, "stations"))
	require.NoError(t, err)

	seed(t, store, map[string]string{"station_a/media/song.mp3": "data"})

	e, err := store.Metadata(ctx, "station_a/media/song.mp3")
	require.NoError(t, err)
	assert.Equal(t, int64(4), e.Size)
	assert.FileExists(t, filepath.Join(root, "stations", "station_a", "media", "song.mp3"))
}
