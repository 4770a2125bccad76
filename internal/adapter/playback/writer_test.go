package playback

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elaa0505/AzuraCast/internal/adapter/storage/sqlite"
	"github.com/elaa0505/AzuraCast/internal/domain"
	"github.com/elaa0505/AzuraCast/internal/infrastructure/logger"
)

func TestPlaylistFile(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Morning Show", "playlist_3_morning_show.m3u"},
		{"  Rock & Roll!! ", "playlist_3_rock_roll.m3u"},
		{"???", "playlist_3.m3u"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlaylistFile(&domain.Playlist{ID: 3, Name: tt.name}))
		})
	}
}

func TestWriter_Regenerate(t *testing.T) {
	ctx := context.Background()
	catalog, err := sqlite.NewStore(t.TempDir(), sqlite.WithCacheEntries(100))
	require.NoError(t, err)
	t.Cleanup(func() { _ = catalog.Close() })

	tenant := domain.NewTenant("Night Owl", "owl")
	tenant.StorageUsed = 2048
	require.NoError(t, catalog.CreateTenant(ctx, tenant))

	tx, err := catalog.Begin(ctx)
	require.NoError(t, err)
	rock, err := tx.CreatePlaylist(ctx, tenant.ID, "Rock")
	require.NoError(t, err)
	empty, err := tx.CreatePlaylist(ctx, tenant.ID, "Empty")
	require.NoError(t, err)
	a, err := tx.GetOrCreateMedia(ctx, tenant.ID, "a.mp3", 1)
	require.NoError(t, err)
	b, err := tx.GetOrCreateMedia(ctx, tenant.ID, "dir/b.mp3", 1)
	require.NoError(t, err)
	require.NoError(t, tx.AddMembership(ctx, b.ID, rock.ID, 1))
	require.NoError(t, tx.AddMembership(ctx, a.ID, rock.ID, 2))
	require.NoError(t, tx.Commit())

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/out/station_owl", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/out/station_owl/playlist_99_old.m3u", []byte("#EXTM3U\n"), 0o644))

	w := NewWriter(fs, catalog, "/out", logger.Discard())
	w.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	require.NoError(t, w.Regenerate(ctx, tenant))

	data, err := afero.ReadFile(fs, "/out/station_owl/"+PlaylistFile(rock))
	require.NoError(t, err)
	assert.Equal(t, "#EXTM3U\nstation_owl/media/dir/b.mp3\nstation_owl/media/a.mp3\n", string(data))

	data, err = afero.ReadFile(fs, "/out/station_owl/"+PlaylistFile(empty))
	require.NoError(t, err)
	assert.Equal(t, "#EXTM3U\n", string(data))

	stale, err := afero.Exists(fs, "/out/station_owl/playlist_99_old.m3u")
	require.NoError(t, err)
	assert.False(t, stale)

	manifest, err := w.ReadManifest(tenant)
	require.NoError(t, err)
	assert.True(t, manifest.GeneratedAt.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))
	assert.Equal(t, "owl", manifest.Station.ShortName)
	assert.Equal(t, int64(2048), manifest.Station.StorageUsed)
	assert.Equal(t, "2.0 KiB", manifest.Station.Storage)

	// playlists are listed by name
	require.Len(t, manifest.Playlists, 2)
	assert.Equal(t, PlaylistEntry{ID: empty.ID, Name: "Empty", File: PlaylistFile(empty), Tracks: 0}, manifest.Playlists[0])
	assert.Equal(t, PlaylistEntry{ID: rock.ID, Name: "Rock", File: PlaylistFile(rock), Tracks: 2}, manifest.Playlists[1])
}

func TestWriter_RegenerateWithoutPlaylists(t *testing.T) {
	ctx := context.Background()
	catalog, err := sqlite.NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = catalog.Close() })

	tenant := domain.NewTenant("Quiet", "quiet")
	require.NoError(t, catalog.CreateTenant(ctx, tenant))

	fs := afero.NewMemMapFs()
	w := NewWriter(fs, catalog, "/out", logger.Discard())
	require.NoError(t, w.Regenerate(ctx, tenant))

	manifest, err := w.ReadManifest(tenant)
	require.NoError(t, err)
	assert.Empty(t, manifest.Playlists)
	assert.Equal(t, "/out/station_quiet", w.Dir(tenant))
}
