package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/elaa0505/AzuraCast/internal/domain"
)

const (
	// MaxSelection is the largest number of paths one batch request may name.
	MaxSelection = 10_000

	maxPathLength = 4096
	maxNameLength = 255
)

var (
	ErrEmptySelection   = errors.New("no files selected")
	ErrSelectionTooLong = fmt.Errorf("more than %d files selected", MaxSelection)
	ErrEmptyName        = errors.New("name must not be empty")
)

// Selection splits the pipe-delimited files field. Entries that are too long
// or carry control characters are dropped the same way missing files are.
func Selection(raw string) ([]string, error) {
	parts := domain.SplitSelection(raw)
	if len(parts) == 0 {
		return nil, ErrEmptySelection
	}
	if len(parts) > MaxSelection {
		return nil, ErrSelectionTooLong
	}

	selection := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) > maxPathLength || !utf8.ValidString(p) || strings.IndexFunc(p, isControl) >= 0 {
			continue
		}
		selection = append(selection, p)
	}
	return selection, nil
}

// PlaylistName cleans a user supplied playlist name: control characters
// become spaces, surrounding whitespace is trimmed and the result is cut to
// 255 bytes on a rune boundary.
func PlaylistName(name string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		if isControl(r) {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(r)
	}

	result := strings.TrimSpace(strings.ToValidUTF8(sb.String(), ""))
	if result == "" {
		return "", ErrEmptyName
	}
	return strings.TrimSpace(truncateToBytes(result, maxNameLength)), nil
}

func isControl(r rune) bool {
	return r < 32 || r == 127
}

// truncateToBytes cuts s to at most maxBytes bytes without splitting a rune.
func truncateToBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}
