package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elaa0505/AzuraCast/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), WithCacheEntries(100))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func createTenant(t *testing.T, store *Store, shortName string) *domain.Tenant {
	t.Helper()
	tenant := domain.NewTenant("Station "+shortName, shortName)
	require.NoError(t, store.CreateTenant(context.Background(), tenant))
	return tenant
}

func TestNewStore(t *testing.T) {
	store := newTestStore(t)

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestTenants(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	t.Run("create and fetch", func(t *testing.T) {
		tenant := createTenant(t, store, "radio")
		assert.NotZero(t, tenant.ID)
		assert.Equal(t, "station_radio/media", tenant.MediaRoot)
		assert.False(t, tenant.CreatedAt.IsZero())

		byID, err := store.GetTenant(ctx, tenant.ID)
		require.NoError(t, err)
		assert.Equal(t, "radio", byID.ShortName)

		byName, err := store.GetTenantByShortName(ctx, "radio")
		require.NoError(t, err)
		assert.Equal(t, tenant.ID, byName.ID)
	})

	t.Run("duplicate short name", func(t *testing.T) {
		err := store.CreateTenant(ctx, domain.NewTenant("Other", "radio"))
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("missing tenant", func(t *testing.T) {
		_, err := store.GetTenant(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("storage usage", func(t *testing.T) {
		tenant, err := store.GetTenantByShortName(ctx, "radio")
		require.NoError(t, err)

		require.NoError(t, store.SetStorageUsed(ctx, tenant.ID, 4096))
		reloaded, err := store.GetTenant(ctx, tenant.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(4096), reloaded.StorageUsed)

		assert.Error(t, store.SetStorageUsed(ctx, tenant.ID, -1))
	})

	t.Run("release storage is relative", func(t *testing.T) {
		tenant, err := store.GetTenantByShortName(ctx, "radio")
		require.NoError(t, err)
		require.NoError(t, store.SetStorageUsed(ctx, tenant.ID, 100))

		used, err := store.ReleaseStorage(ctx, tenant.ID, 30)
		require.NoError(t, err)
		assert.Equal(t, int64(70), used)

		used, err = store.ReleaseStorage(ctx, tenant.ID, 500)
		require.NoError(t, err)
		assert.Equal(t, int64(0), used)

		_, err = store.ReleaseStorage(ctx, 999, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		createTenant(t, store, "jazz")
		tenants, err := store.ListTenants(ctx)
		require.NoError(t, err)
		require.Len(t, tenants, 2)
		assert.Equal(t, "radio", tenants[0].ShortName)
		assert.Equal(t, "jazz", tenants[1].ShortName)
	})
}

func TestTx_Media(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	tenant := createTenant(t, store, "radio")

	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	_, err = tx.FindMedia(ctx, tenant.ID, "songs/a.mp3")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	first, err := tx.GetOrCreateMedia(ctx, tenant.ID, "songs/a.mp3", 100)
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.NotEmpty(t, first.UniqueID)
	assert.Equal(t, int64(100), first.Size)

	again, err := tx.GetOrCreateMedia(ctx, tenant.ID, "songs/a.mp3", 999)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, int64(100), again.Size)

	first.Path = "archive/a.mp3"
	require.NoError(t, tx.UpdateMedia(ctx, first))

	_, err = tx.FindMedia(ctx, tenant.ID, "songs/a.mp3")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	moved, err := tx.FindMedia(ctx, tenant.ID, "archive/a.mp3")
	require.NoError(t, err)
	assert.Equal(t, first.ID, moved.ID)

	require.NoError(t, tx.Commit())
	require.NoError(t, tx.Rollback())

	records, err := store.ListMedia(ctx, tenant.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "archive/a.mp3", records[0].Path)

	tx, err = store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.DeleteMedia(ctx, moved))
	_, err = tx.FindMedia(ctx, tenant.ID, "archive/a.mp3")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, tx.Commit())
}

func TestTx_MediaIsScopedPerTenant(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	radio := createTenant(t, store, "radio")
	jazz := createTenant(t, store, "jazz")

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	a, err := tx.GetOrCreateMedia(ctx, radio.ID, "a.mp3", 1)
	require.NoError(t, err)
	b, err := tx.GetOrCreateMedia(ctx, jazz.ID, "a.mp3", 1)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTx_Isolate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	tenant := createTenant(t, store, "radio")

	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	err = tx.Isolate(ctx, func() error {
		_, err := tx.GetOrCreateMedia(ctx, tenant.ID, "kept.mp3", 1)
		return err
	})
	require.NoError(t, err)

	err = tx.Isolate(ctx, func() error {
		if _, err := tx.GetOrCreateMedia(ctx, tenant.ID, "discarded.mp3", 1); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	require.NoError(t, tx.Commit())

	records, err := store.ListMedia(ctx, tenant.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "kept.mp3", records[0].Path)
}

func TestTx_Rollback(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	tenant := createTenant(t, store, "radio")

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.GetOrCreateMedia(ctx, tenant.ID, "a.mp3", 1)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	tx, err = store.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()
	_, err = tx.FindMedia(ctx, tenant.ID, "a.mp3")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTx_Playlists(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	tenant := createTenant(t, store, "radio")
	other := createTenant(t, store, "jazz")

	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	playlist, err := tx.CreatePlaylist(ctx, tenant.ID, "Morning")
	require.NoError(t, err)
	assert.Equal(t, "Morning", playlist.Name)

	_, err = tx.FindPlaylist(ctx, other.ID, playlist.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	highest, err := tx.HighestWeight(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, highest)

	a, err := tx.GetOrCreateMedia(ctx, tenant.ID, "a.mp3", 1)
	require.NoError(t, err)
	b, err := tx.GetOrCreateMedia(ctx, tenant.ID, "b.mp3", 1)
	require.NoError(t, err)

	require.NoError(t, tx.AddMembership(ctx, b.ID, playlist.ID, 1))
	require.NoError(t, tx.AddMembership(ctx, a.ID, playlist.ID, 2))

	t.Run("weights are unique per playlist", func(t *testing.T) {
		err := tx.Isolate(ctx, func() error {
			c, err := tx.GetOrCreateMedia(ctx, tenant.ID, "c.mp3", 1)
			if err != nil {
				return err
			}
			return tx.AddMembership(ctx, c.ID, playlist.ID, 2)
		})
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("a file is in a playlist once", func(t *testing.T) {
		err := tx.Isolate(ctx, func() error {
			return tx.AddMembership(ctx, a.ID, playlist.ID, 3)
		})
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	highest, err = tx.HighestWeight(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, highest)
	require.NoError(t, tx.Commit())

	entries, err := store.ListPlaylistEntries(ctx, playlist.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b.mp3", entries[0].Path)
	assert.Equal(t, "a.mp3", entries[1].Path)

	tx, err = store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.ClearMemberships(ctx, b.ID))
	require.NoError(t, tx.DeleteMedia(ctx, a))
	require.NoError(t, tx.Commit())

	entries, err = store.ListPlaylistEntries(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	playlists, err := store.ListPlaylists(ctx, tenant.ID)
	require.NoError(t, err)
	require.Len(t, playlists, 1)
	assert.Equal(t, playlist.ID, playlists[0].ID)
}

func TestStore_ClearIdentities(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	tenant := createTenant(t, store, "radio")

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.GetOrCreateMedia(ctx, tenant.ID, "a.mp3", 1)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	_, cached := store.cache.media.Get(mediaKey(tenant.ID, "a.mp3"))
	assert.True(t, cached)

	store.ClearIdentities(domain.EntityMedia, domain.EntityPlaylist, domain.EntityPlaylistMembership)

	_, cached = store.cache.media.Get(mediaKey(tenant.ID, "a.mp3"))
	assert.False(t, cached)
}
