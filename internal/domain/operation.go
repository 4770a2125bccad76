package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type OperationKind string

const (
	OperationDelete   OperationKind = "delete"
	OperationPlaylist OperationKind = "playlist"
	OperationMove     OperationKind = "move"
)

// Operation is one of DeleteOperation, PlaylistOperation or MoveOperation.
type Operation interface {
	Kind() OperationKind
}

type DeleteOperation struct{}

func (DeleteOperation) Kind() OperationKind { return OperationDelete }

// PlaylistRef points at an existing playlist, or asks for a new one.
type PlaylistRef struct {
	ID  int64
	New bool
}

type PlaylistOperation struct {
	Playlists       []PlaylistRef
	NewPlaylistName string
}

func (PlaylistOperation) Kind() OperationKind { return OperationPlaylist }

type MoveOperation struct {
	Directory string
}

func (MoveOperation) Kind() OperationKind { return OperationMove }

// OperationParams carries the request fields an operation may need.
type OperationParams struct {
	Playlists       []string
	NewPlaylistName string
	Directory       string
}

// ParseOperation decodes a "<kind>[_<id>]" tag. The id suffix is accepted
// and ignored.
func ParseOperation(tag string, params OperationParams) (Operation, error) {
	kind, _, _ := strings.Cut(strings.TrimSpace(tag), "_")

	switch OperationKind(kind) {
	case OperationDelete:
		return DeleteOperation{}, nil

	case OperationPlaylist:
		op := PlaylistOperation{NewPlaylistName: strings.TrimSpace(params.NewPlaylistName)}
		for _, raw := range params.Playlists {
			raw = strings.TrimSpace(raw)
			if raw == "new" {
				op.Playlists = append(op.Playlists, PlaylistRef{New: true})
				continue
			}
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				continue
			}
			op.Playlists = append(op.Playlists, PlaylistRef{ID: id})
		}
		if op.wantsNew() && op.NewPlaylistName == "" {
			return nil, fmt.Errorf("%w: new playlist requires a name", ErrInvalidOperation)
		}
		return op, nil

	case OperationMove:
		dir, err := NormalizePath(params.Directory)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOperation, err)
		}
		return MoveOperation{Directory: dir}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrInvalidOperation, tag)
}

func (o PlaylistOperation) wantsNew() bool {
	for _, ref := range o.Playlists {
		if ref.New {
			return true
		}
	}
	return false
}
