package port

import (
	"context"

	"github.com/elaa0505/AzuraCast/internal/domain"
)

type FileStore interface {
	Exists(ctx context.Context, path string) (bool, error)
	Metadata(ctx context.Context, path string) (domain.FileEntry, error)
	List(ctx context.Context, path string, recursive bool) ([]domain.FileEntry, error)
	Rename(ctx context.Context, oldPath, newPath string) error
	Delete(ctx context.Context, path string) error
	DeleteRecursive(ctx context.Context, path string) error
}
