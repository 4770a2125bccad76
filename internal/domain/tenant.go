package domain

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// Tenant is a station: the isolation boundary owning a media tree,
// catalog records and playlists.
type Tenant struct {
	ID          int64     `json:"id"`
	ShortName   string    `json:"short_name"`
	Name        string    `json:"name"`
	MediaRoot   string    `json:"media_root"`
	StorageUsed int64     `json:"storage_used"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewTenant(name, shortName string) *Tenant {
	return &Tenant{
		ShortName: shortName,
		Name:      name,
		MediaRoot: fmt.Sprintf("station_%s/media", shortName),
		CreatedAt: time.Now(),
	}
}

// StorePath maps a path relative to the media root onto the file store.
func (t *Tenant) StorePath(rel string) (string, error) {
	clean, err := NormalizePath(rel)
	if err != nil {
		return "", err
	}
	if clean == "" {
		return t.MediaRoot, nil
	}
	return path.Join(t.MediaRoot, clean), nil
}

// RelativePath is the inverse of StorePath. Paths outside the media root are
// returned unchanged.
func (t *Tenant) RelativePath(storePath string) string {
	root := strings.TrimSuffix(t.MediaRoot, "/")
	if storePath == root {
		return ""
	}
	if rel, ok := strings.CutPrefix(storePath, root+"/"); ok {
		return rel
	}
	return storePath
}
