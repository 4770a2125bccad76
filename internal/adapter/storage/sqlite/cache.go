package sqlite

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/elaa0505/AzuraCast/internal/domain"
)

// identityCache holds catalog rows loaded by the current unit of work so
// repeated lookups within a batch skip the database.
type identityCache struct {
	media       *ristretto.Cache[string, domain.MediaRecord]
	playlists   *ristretto.Cache[string, domain.Playlist]
	memberships *ristretto.Cache[int64, []domain.PlaylistEntry]
}

func newIdentityCache(maxEntries int64) (*identityCache, error) {
	media, err := ristretto.NewCache(cacheConfig[string, domain.MediaRecord](maxEntries))
	if err != nil {
		return nil, err
	}
	playlists, err := ristretto.NewCache(cacheConfig[string, domain.Playlist](maxEntries))
	if err != nil {
		media.Close()
		return nil, err
	}
	memberships, err := ristretto.NewCache(cacheConfig[int64, []domain.PlaylistEntry](maxEntries))
	if err != nil {
		media.Close()
		playlists.Close()
		return nil, err
	}
	return &identityCache{
		media:       media,
		playlists:   playlists,
		memberships: memberships,
	}, nil
}

func cacheConfig[K string | int64, V any](maxEntries int64) *ristretto.Config[K, V] {
	return &ristretto.Config[K, V]{
		NumCounters:        maxEntries * 10,
		MaxCost:            maxEntries,
		BufferItems:        64,
		IgnoreInternalCost: true,
	}
}

func mediaKey(tenantID int64, path string) string {
	return fmt.Sprintf("%d:%s", tenantID, path)
}

func playlistKey(tenantID, playlistID int64) string {
	return fmt.Sprintf("%d:%d", tenantID, playlistID)
}

func (c *identityCache) putMedia(m *domain.MediaRecord) {
	c.media.Set(mediaKey(m.TenantID, m.Path), *m, 1)
	c.media.Wait()
}

func (c *identityCache) putPlaylist(p *domain.Playlist) {
	c.playlists.Set(playlistKey(p.TenantID, p.ID), *p, 1)
	c.playlists.Wait()
}

// clear empties the caches for the given kinds, or all of them.
func (c *identityCache) clear(kinds ...domain.EntityKind) {
	if len(kinds) == 0 {
		kinds = []domain.EntityKind{domain.EntityMedia, domain.EntityPlaylist, domain.EntityPlaylistMembership}
	}
	for _, kind := range kinds {
		switch kind {
		case domain.EntityMedia:
			c.media.Clear()
		case domain.EntityPlaylist:
			c.playlists.Clear()
		case domain.EntityPlaylistMembership:
			c.memberships.Clear()
		}
	}
}

func (c *identityCache) close() {
	c.media.Close()
	c.playlists.Close()
	c.memberships.Close()
}
