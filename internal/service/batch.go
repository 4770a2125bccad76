package service

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/charmbracelet/log"
	"go.uber.org/multierr"

	"github.com/elaa0505/AzuraCast/internal/domain"
	"github.com/elaa0505/AzuraCast/internal/infrastructure/logger"
	"github.com/elaa0505/AzuraCast/internal/port"
)

// BatchService applies one operation to a selection of files of a tenant.
//
// Catalog changes are committed before the file store is touched. The two
// stores are not updated atomically; Reconciler finds what drifted.
type BatchService struct {
	catalog     port.Catalog
	files       port.FileStore
	expander    *PathExpander
	regenerator port.ConfigRegenerator
	events      EventPublisher
	logger      *log.Logger
}

func NewBatchService(
	catalog port.Catalog,
	files port.FileStore,
	regenerator port.ConfigRegenerator,
	events EventPublisher,
	l *log.Logger,
) *BatchService {
	if l == nil {
		l = logger.Default()
	}
	return &BatchService{
		catalog:     catalog,
		files:       files,
		expander:    NewPathExpander(files),
		regenerator: regenerator,
		events:      events,
		logger:      l.With("component", "batch"),
	}
}

// Execute runs op over selection, a list of paths relative to the tenant
// media root. Per-file failures are reported in the result; the returned
// error is only set when the batch as a whole failed.
func (s *BatchService) Execute(ctx context.Context, tenant *domain.Tenant, selection []string, op domain.Operation) (*domain.BatchResult, error) {
	defer s.catalog.ClearIdentities(domain.EntityMedia, domain.EntityPlaylist, domain.EntityPlaylistMembership)

	if op == nil {
		return nil, fmt.Errorf("%w: no operation", domain.ErrInvalidOperation)
	}

	paths, err := s.resolveSelection(ctx, tenant, selection)
	if err != nil {
		return nil, err
	}

	var result *domain.BatchResult
	switch o := op.(type) {
	case domain.DeleteOperation:
		result, err = s.delete(ctx, tenant, paths)
	case domain.PlaylistOperation:
		result, err = s.assignPlaylists(ctx, tenant, paths, o)
	case domain.MoveOperation:
		result, err = s.move(ctx, tenant, paths, o)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidOperation, op.Kind())
	}
	if err != nil {
		s.logger.Error("batch failed", "station", tenant.ShortName, "op", op.Kind(), "error", err)
		return nil, err
	}

	if err := s.regenerator.Regenerate(ctx, tenant); err != nil {
		s.logger.Warn("playback config regeneration failed", "station", tenant.ShortName, "error", err)
	}

	s.logger.Info("batch finished",
		"station", tenant.ShortName,
		"op", op.Kind(),
		"found", result.FilesFound,
		"affected", result.FilesAffected,
		"errors", len(result.Errors))
	if s.events != nil {
		s.events.Publish(tenant.ID, Event{
			Type:    "batch",
			Status:  string(op.Kind()),
			Message: fmt.Sprintf("%d of %d files affected, %d errors", result.FilesAffected, result.FilesFound, len(result.Errors)),
		})
	}

	return result, nil
}

// resolveSelection maps the selection onto store paths, keeping those that
// exist. Invalid paths and the media root itself are ignored.
func (s *BatchService) resolveSelection(ctx context.Context, tenant *domain.Tenant, selection []string) ([]string, error) {
	seen := make(map[string]struct{}, len(selection))
	var paths []string

	for _, raw := range selection {
		p, err := tenant.StorePath(raw)
		if err != nil {
			s.logger.Warn("ignoring invalid path", "station", tenant.ShortName, "path", logger.SanitizeForLog(raw))
			continue
		}
		if p == tenant.MediaRoot {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}

		exists, err := s.files.Exists(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", raw, err)
		}
		if exists {
			paths = append(paths, p)
		}
	}

	s.logger.Debug("selection resolved",
		"station", tenant.ShortName,
		"requested", logger.SanitizePaths(selection, 10),
		"existing", len(paths))
	return paths, nil
}

func (s *BatchService) delete(ctx context.Context, tenant *domain.Tenant, paths []string) (*domain.BatchResult, error) {
	files, err := s.expander.Expand(ctx, paths, true)
	if err != nil {
		return nil, err
	}
	result := domain.NewBatchResult(len(files))

	tx, err := s.catalog.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rel := tenant.RelativePath(f.Path)
		err := tx.Isolate(ctx, func() error {
			record, err := tx.FindMedia(ctx, tenant.ID, rel)
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			return tx.DeleteMedia(ctx, record)
		})
		result.Track(rel, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit catalog deletions: %w", err)
	}

	accountant := NewStorageAccountant(s.catalog, tenant, s.logger)
	if err := s.deleteFromStore(ctx, tenant, paths, accountant); err != nil {
		return nil, multierr.Append(err, accountant.Persist(ctx))
	}
	if err := accountant.Persist(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// deleteFromStore removes the originally selected paths. Files below a
// selected directory are accounted before the directory goes away.
func (s *BatchService) deleteFromStore(ctx context.Context, tenant *domain.Tenant, paths []string, accountant *StorageAccountant) error {
	for _, p := range paths {
		rel := tenant.RelativePath(p)

		entry, err := s.files.Metadata(ctx, p)
		if errors.Is(err, domain.ErrNotFound) {
			// removed together with a selected parent
			continue
		}
		if err != nil {
			return fmt.Errorf("read metadata for %s: %w", rel, err)
		}

		if entry.IsDir() {
			children, err := s.files.List(ctx, p, true)
			if err != nil {
				return fmt.Errorf("list %s: %w", rel, err)
			}
			for _, child := range children {
				if child.IsFile() {
					accountant.Decrement(child.Path, child.Size)
				}
			}
			if err := s.files.DeleteRecursive(ctx, p); err != nil {
				return fmt.Errorf("delete directory %s: %w", rel, err)
			}
			continue
		}

		accountant.Decrement(entry.Path, entry.Size)
		if err := s.files.Delete(ctx, p); err != nil {
			return fmt.Errorf("delete %s: %w", rel, err)
		}
	}
	return nil
}

type weightCounter struct {
	playlist *domain.Playlist
	weight   int
}

func (s *BatchService) assignPlaylists(ctx context.Context, tenant *domain.Tenant, paths []string, op domain.PlaylistOperation) (*domain.BatchResult, error) {
	files, err := s.expander.Expand(ctx, paths, true)
	if err != nil {
		return nil, err
	}
	result := domain.NewBatchResult(len(files))

	tx, err := s.catalog.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	targets, created, err := s.resolvePlaylists(ctx, tx, tenant, op)
	if err != nil {
		return nil, err
	}
	if created != nil {
		result.Record = &domain.PlaylistRecord{ID: created.ID, Name: created.Name}
	}

	next := make([]int, len(targets))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rel := tenant.RelativePath(f.Path)
		err := tx.Isolate(ctx, func() error {
			record, err := tx.GetOrCreateMedia(ctx, tenant.ID, rel, f.Size)
			if err != nil {
				return err
			}
			if err := tx.ClearMemberships(ctx, record.ID); err != nil {
				return err
			}
			for i, t := range targets {
				next[i] = t.weight + 1
				if err := tx.AddMembership(ctx, record.ID, t.playlist.ID, next[i]); err != nil {
					return fmt.Errorf("add to playlist %q: %w", t.playlist.Name, err)
				}
			}
			return nil
		})
		if err == nil {
			for i := range targets {
				targets[i].weight = next[i]
			}
		}
		result.Track(rel, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit playlist changes: %w", err)
	}
	return result, nil
}

// resolvePlaylists loads the referenced playlists, creating the new one if
// asked. Unknown ids are skipped. Each counter starts at the playlist's
// highest weight.
func (s *BatchService) resolvePlaylists(ctx context.Context, tx port.CatalogTx, tenant *domain.Tenant, op domain.PlaylistOperation) ([]*weightCounter, *domain.Playlist, error) {
	var (
		targets []*weightCounter
		created *domain.Playlist
		seen    = make(map[int64]struct{})
	)

	for _, ref := range op.Playlists {
		if ref.New {
			if created != nil {
				continue
			}
			playlist, err := tx.CreatePlaylist(ctx, tenant.ID, op.NewPlaylistName)
			if err != nil {
				return nil, nil, fmt.Errorf("create playlist: %w", err)
			}
			created = playlist
			seen[playlist.ID] = struct{}{}
			targets = append(targets, &weightCounter{playlist: playlist})
			s.logger.Info("playlist created", "station", tenant.ShortName, "id", playlist.ID, "name", playlist.Name)
			continue
		}

		if _, dup := seen[ref.ID]; dup {
			continue
		}
		playlist, err := tx.FindPlaylist(ctx, tenant.ID, ref.ID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("load playlist %d: %w", ref.ID, err)
		}
		highest, err := tx.HighestWeight(ctx, playlist.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("read weights of playlist %d: %w", ref.ID, err)
		}
		seen[playlist.ID] = struct{}{}
		targets = append(targets, &weightCounter{playlist: playlist, weight: highest})
	}

	return targets, created, nil
}

func (s *BatchService) move(ctx context.Context, tenant *domain.Tenant, paths []string, op domain.MoveOperation) (*domain.BatchResult, error) {
	files, err := s.expander.Expand(ctx, paths, true)
	if err != nil {
		return nil, err
	}
	result := domain.NewBatchResult(len(files))

	isFolder, err := s.isFolder(ctx, tenant, op.Directory)
	if err != nil {
		return nil, err
	}
	var destErr error
	if !isFolder {
		destErr = fmt.Errorf("path %q %w", op.Directory, domain.ErrNotAFolder)
	}

	tx, err := s.catalog.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rel := tenant.RelativePath(f.Path)
		err := tx.Isolate(ctx, func() error {
			if destErr != nil {
				return destErr
			}
			return s.moveFile(ctx, tx, tenant, f, rel, op.Directory)
		})
		result.Track(rel, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit moves: %w", err)
	}
	return result, nil
}

// isFolder reports whether dir names an existing directory below the media
// root. Errors are store failures.
func (s *BatchService) isFolder(ctx context.Context, tenant *domain.Tenant, dir string) (bool, error) {
	destPath, err := tenant.StorePath(dir)
	if err != nil {
		return false, nil
	}
	entry, err := s.files.Metadata(ctx, destPath)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read destination %s: %w", dir, err)
	}
	return entry.IsDir(), nil
}

func (s *BatchService) moveFile(ctx context.Context, tx port.CatalogTx, tenant *domain.Tenant, f domain.FileEntry, rel, dir string) error {
	record, err := tx.GetOrCreateMedia(ctx, tenant.ID, rel, f.Size)
	if err != nil {
		return err
	}

	target := path.Join(dir, f.Basename)
	if target == record.Path {
		return nil
	}
	targetPath, err := tenant.StorePath(target)
	if err != nil {
		return err
	}

	exists, err := s.files.Exists(ctx, targetPath)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, target)
	}

	if err := s.files.Rename(ctx, f.Path, targetPath); err != nil {
		s.logger.Warn("rename failed", "station", tenant.ShortName, "from", rel, "to", target, "error", err)
		return fmt.Errorf("could not move %q to %q", record.Path, target)
	}

	record.Path = target
	if err := tx.UpdateMedia(ctx, record); err != nil {
		s.logger.Error("file moved but catalog not updated",
			"station", tenant.ShortName, "from", rel, "to", target, "error", err)
		return err
	}
	return nil
}
