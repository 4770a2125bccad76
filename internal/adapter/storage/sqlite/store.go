package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/elaa0505/AzuraCast/internal/adapter/storage/sqlite/sqlitedb"
	"github.com/elaa0505/AzuraCast/internal/domain"
	"github.com/elaa0505/AzuraCast/internal/port"
)

//go:embed migrations/*.sql
var migrations embed.FS

const DefaultCacheEntries = 10_000

type Store struct {
	db      *sql.DB
	queries *sqlitedb.Queries
	cache   *identityCache
}

type Option func(*storeOptions)

type storeOptions struct {
	cacheEntries int64
}

// WithCacheEntries bounds each identity cache.
func WithCacheEntries(n int64) Option {
	return func(o *storeOptions) {
		if n > 0 {
			o.cacheEntries = n
		}
	}
}

var hookOnce sync.Once

func registerHook() {
	hookOnce.Do(func() {
		sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, dsn string) error {
			pragmas := []string{
				"PRAGMA journal_mode = WAL",
				"PRAGMA busy_timeout = 5000",
				"PRAGMA synchronous = NORMAL",
				"PRAGMA foreign_keys = ON",
				"PRAGMA cache_size = -8000",
			}
			for _, p := range pragmas {
				if _, err := conn.ExecContext(context.Background(), p, nil); err != nil {
					return fmt.Errorf("execute %s: %w", p, err)
				}
			}
			return nil
		})
	})
}

func NewStore(dataDir string, opts ...Option) (*Store, error) {
	registerHook()

	o := storeOptions{cacheEntries: DefaultCacheEntries}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, "catalog.db"))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One writer at a time; a transaction holds the only connection.
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	cache, err := newIdentityCache(o.cacheEntries)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create identity cache: %w", err)
	}

	return &Store{
		db:      db,
		queries: sqlitedb.New(db),
		cache:   cache,
	}, nil
}

func (s *Store) Close() error {
	s.cache.close()
	return s.db.Close()
}

// SchemaVersion reports the applied migration version.
func (s *Store) SchemaVersion() (int64, error) {
	return goose.GetDBVersion(s.db)
}

func (s *Store) Begin(ctx context.Context) (port.CatalogTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{
		tx:      tx,
		queries: s.queries.WithTx(tx),
		cache:   s.cache,
		loaded:  make(map[int64]string),
	}, nil
}

func (s *Store) ClearIdentities(kinds ...domain.EntityKind) {
	s.cache.clear(kinds...)
}

func (s *Store) GetTenant(ctx context.Context, id int64) (*domain.Tenant, error) {
	return getTenant(ctx, s.queries, id)
}

func (s *Store) GetTenantByShortName(ctx context.Context, shortName string) (*domain.Tenant, error) {
	row, err := s.queries.GetTenantByShortName(ctx, shortName)
	if err != nil {
		return nil, translate(err)
	}
	return tenantFromRow(row), nil
}

func (s *Store) CreateTenant(ctx context.Context, t *domain.Tenant) error {
	id, err := s.queries.CreateTenant(ctx, sqlitedb.CreateTenantParams{
		ShortName:   t.ShortName,
		Name:        t.Name,
		MediaRoot:   t.MediaRoot,
		StorageUsed: t.StorageUsed,
	})
	if err != nil {
		return translate(err)
	}
	created, err := getTenant(ctx, s.queries, id)
	if err != nil {
		return err
	}
	*t = *created
	return nil
}

func (s *Store) ListTenants(ctx context.Context) ([]*domain.Tenant, error) {
	rows, err := s.queries.ListTenants(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Tenant, len(rows))
	for i, row := range rows {
		result[i] = tenantFromRow(row)
	}
	return result, nil
}

func (s *Store) SetStorageUsed(ctx context.Context, tenantID int64, used int64) error {
	return setStorageUsed(ctx, s.queries, tenantID, used)
}

func (s *Store) ReleaseStorage(ctx context.Context, tenantID int64, freed int64) (int64, error) {
	return releaseStorage(ctx, s.queries, tenantID, freed)
}

func (s *Store) ListMedia(ctx context.Context, tenantID int64) ([]*domain.MediaRecord, error) {
	rows, err := s.queries.ListMediaByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.MediaRecord, len(rows))
	for i, row := range rows {
		result[i] = mediumToRecord(row)
	}
	return result, nil
}

func (s *Store) ListPlaylists(ctx context.Context, tenantID int64) ([]*domain.Playlist, error) {
	rows, err := s.queries.ListPlaylistsByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Playlist, len(rows))
	for i, row := range rows {
		result[i] = playlistFromRow(row)
	}
	return result, nil
}

func (s *Store) ListPlaylistEntries(ctx context.Context, playlistID int64) ([]domain.PlaylistEntry, error) {
	if entries, ok := s.cache.memberships.Get(playlistID); ok {
		return entries, nil
	}

	rows, err := s.queries.ListPlaylistEntries(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.PlaylistEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.PlaylistEntry{
			MediaID: row.MediaID,
			Path:    row.Path,
			Weight:  int(row.Weight),
		}
	}
	s.cache.memberships.Set(playlistID, entries, 1)
	return entries, nil
}

func getTenant(ctx context.Context, q *sqlitedb.Queries, id int64) (*domain.Tenant, error) {
	row, err := q.GetTenant(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return tenantFromRow(row), nil
}

func releaseStorage(ctx context.Context, q *sqlitedb.Queries, tenantID int64, freed int64) (int64, error) {
	used, err := q.ReleaseTenantStorage(ctx, sqlitedb.ReleaseTenantStorageParams{
		Freed: freed,
		ID:    tenantID,
	})
	if err != nil {
		return 0, translate(err)
	}
	return used, nil
}

func setStorageUsed(ctx context.Context, q *sqlitedb.Queries, tenantID int64, used int64) error {
	return translate(q.UpdateTenantStorageUsed(ctx, sqlitedb.UpdateTenantStorageUsedParams{
		StorageUsed: used,
		ID:          tenantID,
	}))
}

// translate maps driver errors onto domain sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", domain.ErrAlreadyExists, err)
		}
	}
	return err
}

func tenantFromRow(row sqlitedb.Tenant) *domain.Tenant {
	return &domain.Tenant{
		ID:          row.ID,
		ShortName:   row.ShortName,
		Name:        row.Name,
		MediaRoot:   row.MediaRoot,
		StorageUsed: row.StorageUsed,
		CreatedAt:   row.CreatedAt,
	}
}

func mediumToRecord(row sqlitedb.Medium) *domain.MediaRecord {
	return &domain.MediaRecord{
		ID:        row.ID,
		UniqueID:  row.UniqueID,
		TenantID:  row.TenantID,
		Path:      row.Path,
		Size:      row.Size,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func playlistFromRow(row sqlitedb.Playlist) *domain.Playlist {
	return &domain.Playlist{
		ID:        row.ID,
		TenantID:  row.TenantID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
}

var _ port.Catalog = (*Store)(nil)
