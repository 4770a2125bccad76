package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/elaa0505/AzuraCast/internal/adapter/storage/sqlite/sqlitedb"
	"github.com/elaa0505/AzuraCast/internal/domain"
	"github.com/elaa0505/AzuraCast/internal/port"
)

const savepoint = "batch_item"

type Tx struct {
	tx      *sql.Tx
	queries *sqlitedb.Queries
	cache   *identityCache

	// path each loaded media record had when read, keyed by id
	loaded map[int64]string
	done   bool
}

func (t *Tx) FindMedia(ctx context.Context, tenantID int64, path string) (*domain.MediaRecord, error) {
	if m, ok := t.cache.media.Get(mediaKey(tenantID, path)); ok {
		t.loaded[m.ID] = m.Path
		return &m, nil
	}

	row, err := t.queries.GetMediaByPath(ctx, sqlitedb.GetMediaByPathParams{
		TenantID: tenantID,
		Path:     path,
	})
	if err != nil {
		return nil, translate(err)
	}
	m := mediumToRecord(row)
	t.loaded[m.ID] = m.Path
	t.cache.putMedia(m)
	return m, nil
}

func (t *Tx) GetOrCreateMedia(ctx context.Context, tenantID int64, path string, size int64) (*domain.MediaRecord, error) {
	m, err := t.FindMedia(ctx, tenantID, path)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	record := domain.NewMediaRecord(tenantID, path, size)
	if err := t.queries.InsertMediaIfAbsent(ctx, sqlitedb.InsertMediaIfAbsentParams{
		UniqueID: record.UniqueID,
		TenantID: tenantID,
		Path:     path,
		Size:     size,
	}); err != nil {
		return nil, fmt.Errorf("insert media: %w", translate(err))
	}
	return t.FindMedia(ctx, tenantID, path)
}

func (t *Tx) UpdateMedia(ctx context.Context, m *domain.MediaRecord) error {
	if err := t.queries.UpdateMedia(ctx, sqlitedb.UpdateMediaParams{
		Path: m.Path,
		Size: m.Size,
		ID:   m.ID,
	}); err != nil {
		return translate(err)
	}

	if old, ok := t.loaded[m.ID]; ok && old != m.Path {
		t.cache.media.Del(mediaKey(m.TenantID, old))
	}
	t.loaded[m.ID] = m.Path
	t.cache.putMedia(m)
	return nil
}

func (t *Tx) DeleteMedia(ctx context.Context, m *domain.MediaRecord) error {
	if err := t.queries.DeleteMedia(ctx, m.ID); err != nil {
		return translate(err)
	}
	t.cache.media.Del(mediaKey(m.TenantID, m.Path))
	t.cache.media.Wait()
	t.cache.memberships.Clear()
	delete(t.loaded, m.ID)
	return nil
}

func (t *Tx) CreatePlaylist(ctx context.Context, tenantID int64, name string) (*domain.Playlist, error) {
	id, err := t.queries.InsertPlaylist(ctx, sqlitedb.InsertPlaylistParams{
		TenantID: tenantID,
		Name:     name,
	})
	if err != nil {
		return nil, fmt.Errorf("insert playlist: %w", translate(err))
	}
	return t.FindPlaylist(ctx, tenantID, id)
}

func (t *Tx) FindPlaylist(ctx context.Context, tenantID, playlistID int64) (*domain.Playlist, error) {
	if p, ok := t.cache.playlists.Get(playlistKey(tenantID, playlistID)); ok {
		return &p, nil
	}

	row, err := t.queries.GetPlaylist(ctx, sqlitedb.GetPlaylistParams{
		TenantID: tenantID,
		ID:       playlistID,
	})
	if err != nil {
		return nil, translate(err)
	}
	p := playlistFromRow(row)
	t.cache.putPlaylist(p)
	return p, nil
}

func (t *Tx) HighestWeight(ctx context.Context, playlistID int64) (int, error) {
	highest, err := t.queries.GetHighestPlaylistWeight(ctx, playlistID)
	if err != nil {
		return 0, translate(err)
	}
	return int(highest), nil
}

func (t *Tx) ClearMemberships(ctx context.Context, mediaID int64) error {
	if err := t.queries.DeletePlaylistMediaByMedia(ctx, mediaID); err != nil {
		return translate(err)
	}
	t.cache.memberships.Clear()
	return nil
}

func (t *Tx) AddMembership(ctx context.Context, mediaID, playlistID int64, weight int) error {
	if err := t.queries.InsertPlaylistMedia(ctx, sqlitedb.InsertPlaylistMediaParams{
		PlaylistID: playlistID,
		MediaID:    mediaID,
		Weight:     int64(weight),
	}); err != nil {
		return translate(err)
	}
	t.cache.memberships.Del(playlistID)
	t.cache.memberships.Wait()
	return nil
}

func (t *Tx) GetTenant(ctx context.Context, id int64) (*domain.Tenant, error) {
	return getTenant(ctx, t.queries, id)
}

func (t *Tx) SetStorageUsed(ctx context.Context, tenantID int64, used int64) error {
	return setStorageUsed(ctx, t.queries, tenantID, used)
}

func (t *Tx) ReleaseStorage(ctx context.Context, tenantID int64, freed int64) (int64, error) {
	return releaseStorage(ctx, t.queries, tenantID, freed)
}

// Isolate runs fn inside a savepoint. When fn fails, its writes are rolled
// back and the identity caches are dropped since they may hold rows that no
// longer exist.
func (t *Tx) Isolate(ctx context.Context, fn func() error) error {
	if _, err := t.tx.ExecContext(ctx, "SAVEPOINT "+savepoint); err != nil {
		return fmt.Errorf("create savepoint: %w", err)
	}

	if err := fn(); err != nil {
		_, rbErr := t.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepoint)
		_, relErr := t.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+savepoint)
		t.cache.clear()
		clear(t.loaded)
		return multierr.Combine(err, rbErr, relErr)
	}

	if _, err := t.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}

func (t *Tx) Commit() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	if err := t.tx.Commit(); err != nil {
		t.cache.clear()
		return err
	}
	return nil
}

// Rollback is a no-op after Commit so callers can defer it.
func (t *Tx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.cache.clear()
	return t.tx.Rollback()
}

var _ port.CatalogTx = (*Tx)(nil)
