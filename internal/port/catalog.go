package port

import (
	"context"

	"github.com/elaa0505/AzuraCast/internal/domain"
)

type MediaCatalog interface {
	FindMedia(ctx context.Context, tenantID int64, path string) (*domain.MediaRecord, error)
	GetOrCreateMedia(ctx context.Context, tenantID int64, path string, size int64) (*domain.MediaRecord, error)
	UpdateMedia(ctx context.Context, m *domain.MediaRecord) error
	DeleteMedia(ctx context.Context, m *domain.MediaRecord) error
}

type PlaylistCatalog interface {
	CreatePlaylist(ctx context.Context, tenantID int64, name string) (*domain.Playlist, error)
	FindPlaylist(ctx context.Context, tenantID, playlistID int64) (*domain.Playlist, error)
	HighestWeight(ctx context.Context, playlistID int64) (int, error)
	ClearMemberships(ctx context.Context, mediaID int64) error
	AddMembership(ctx context.Context, mediaID, playlistID int64, weight int) error
}

type TenantStore interface {
	GetTenant(ctx context.Context, id int64) (*domain.Tenant, error)
	SetStorageUsed(ctx context.Context, tenantID int64, used int64) error
	// ReleaseStorage subtracts freed bytes from the stored usage, clamping
	// at zero, and returns the new value.
	ReleaseStorage(ctx context.Context, tenantID int64, freed int64) (int64, error)
}

// CatalogTx is a unit of work. Isolate runs fn so that its writes are
// discarded on error without aborting the surrounding transaction.
type CatalogTx interface {
	MediaCatalog
	PlaylistCatalog
	TenantStore

	Isolate(ctx context.Context, fn func() error) error
	Commit() error
	Rollback() error
}

type Catalog interface {
	TenantStore

	Begin(ctx context.Context) (CatalogTx, error)

	GetTenantByShortName(ctx context.Context, shortName string) (*domain.Tenant, error)
	CreateTenant(ctx context.Context, t *domain.Tenant) error
	ListTenants(ctx context.Context) ([]*domain.Tenant, error)

	ListMedia(ctx context.Context, tenantID int64) ([]*domain.MediaRecord, error)
	ListPlaylists(ctx context.Context, tenantID int64) ([]*domain.Playlist, error)
	ListPlaylistEntries(ctx context.Context, playlistID int64) ([]domain.PlaylistEntry, error)

	ClearIdentities(kinds ...domain.EntityKind)
}
