package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/elaa0505/AzuraCast/internal/domain"
	"github.com/elaa0505/AzuraCast/internal/port"
)

// PathExpander turns a selection of store paths into the files it covers.
type PathExpander struct {
	files port.FileStore
}

func NewPathExpander(files port.FileStore) *PathExpander {
	return &PathExpander{files: files}
}

// Expand returns the files named by paths, listing directories (recursively
// when asked). Missing paths are skipped. Each file appears once, in the
// order it was first reached.
func (e *PathExpander) Expand(ctx context.Context, paths []string, recursive bool) ([]domain.FileEntry, error) {
	seen := make(map[string]struct{})
	var files []domain.FileEntry

	add := func(entry domain.FileEntry) {
		if !entry.IsFile() {
			return
		}
		if _, dup := seen[entry.Path]; dup {
			return
		}
		seen[entry.Path] = struct{}{}
		files = append(files, entry)
	}

	for _, p := range paths {
		entry, err := e.files.Metadata(ctx, p)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read metadata for %s: %w", p, err)
		}

		if !entry.IsDir() {
			add(entry)
			continue
		}

		children, err := e.files.List(ctx, p, recursive)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", p, err)
		}
		for _, child := range children {
			add(child)
		}
	}

	return files, nil
}
