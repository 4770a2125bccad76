package domain

import (
	"path"
	"time"

	"github.com/google/uuid"
)

type EntityKind string

const (
	EntityMedia              EntityKind = "media"
	EntityPlaylist           EntityKind = "playlist"
	EntityPlaylistMembership EntityKind = "playlist_membership"
)

// MediaRecord is the catalog row for one file of a tenant. Path is relative
// to the tenant media root and unique per tenant.
type MediaRecord struct {
	ID        int64     `json:"id"`
	UniqueID  string    `json:"unique_id"`
	TenantID  int64     `json:"tenant_id"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewMediaRecord(tenantID int64, relPath string, size int64) *MediaRecord {
	now := time.Now()
	return &MediaRecord{
		UniqueID:  uuid.NewString(),
		TenantID:  tenantID,
		Path:      relPath,
		Size:      size,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (m *MediaRecord) Basename() string {
	return path.Base(m.Path)
}

type Playlist struct {
	ID        int64     `json:"id"`
	TenantID  int64     `json:"tenant_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PlaylistMembership places a media record in a playlist. Weights order the
// playlist and are unique within it.
type PlaylistMembership struct {
	ID         int64 `json:"id"`
	PlaylistID int64 `json:"playlist_id"`
	MediaID    int64 `json:"media_id"`
	Weight     int   `json:"weight"`
}

// PlaylistEntry is a membership joined with its media path, as needed to
// render a playlist.
type PlaylistEntry struct {
	MediaID int64
	Path    string
	Weight  int
}
