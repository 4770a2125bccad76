package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/elaa0505/AzuraCast/internal/domain"
	"github.com/elaa0505/AzuraCast/internal/port"
)

// Store is a file store over an afero filesystem. Paths are slash separated
// and relative to the filesystem root.
type Store struct {
	fs afero.Fs
}

// NewStore serves files below root on the local disk.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create store root: %w", err)
	}
	return NewStoreFromFs(afero.NewBasePathFs(afero.NewOsFs(), root)), nil
}

// NewMemoryStore keeps everything in memory.
func NewMemoryStore() *Store {
	return NewStoreFromFs(afero.NewMemMapFs())
}

func NewStoreFromFs(fsys afero.Fs) *Store {
	return &Store{fs: fsys}
}

func (s *Store) Fs() afero.Fs {
	return s.fs
}

func (s *Store) Exists(_ context.Context, p string) (bool, error) {
	return afero.Exists(s.fs, native(p))
}

func (s *Store) Metadata(_ context.Context, p string) (domain.FileEntry, error) {
	info, err := s.fs.Stat(native(p))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.FileEntry{}, fmt.Errorf("%w: %s", domain.ErrNotFound, p)
		}
		return domain.FileEntry{}, err
	}
	return entry(logical(native(p)), info), nil
}

func (s *Store) List(ctx context.Context, p string, recursive bool) ([]domain.FileEntry, error) {
	root := native(p)

	if !recursive {
		infos, err := afero.ReadDir(s.fs, root)
		if err != nil {
			return nil, translate(err, p)
		}
		entries := make([]domain.FileEntry, 0, len(infos))
		for _, info := range infos {
			entries = append(entries, entry(logical(filepath.Join(root, info.Name())), info))
		}
		return entries, nil
	}

	var entries []domain.FileEntry
	err := afero.Walk(s.fs, root, func(walked string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if walked == root {
			return nil
		}
		entries = append(entries, entry(logical(walked), info))
		return nil
	})
	if err != nil {
		return nil, translate(err, p)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func (s *Store) Rename(_ context.Context, oldPath, newPath string) error {
	if err := s.fs.Rename(native(oldPath), native(newPath)); err != nil {
		return translate(err, oldPath)
	}
	return nil
}

func (s *Store) Delete(_ context.Context, p string) error {
	return translate(s.fs.Remove(native(p)), p)
}

func (s *Store) DeleteRecursive(_ context.Context, p string) error {
	return s.fs.RemoveAll(native(p))
}

// MkdirAll creates a directory and its parents.
func (s *Store) MkdirAll(_ context.Context, p string) error {
	return s.fs.MkdirAll(native(p), 0o755)
}

func native(p string) string {
	return filepath.FromSlash("/" + strings.TrimPrefix(p, "/"))
}

func logical(p string) string {
	return strings.TrimPrefix(filepath.ToSlash(p), "/")
}

func entry(p string, info fs.FileInfo) domain.FileEntry {
	e := domain.FileEntry{
		Kind:     domain.FileKindFile,
		Path:     p,
		Basename: path.Base(p),
		Size:     info.Size(),
	}
	if info.IsDir() {
		e.Kind = domain.FileKindDir
		e.Size = 0
	}
	return e
}

func translate(err error, p string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, p)
	}
	return err
}

var _ port.FileStore = (*Store)(nil)
