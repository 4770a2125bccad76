package domain

import (
	"fmt"
	"path"
	"strings"
)

// NormalizePath cleans a media-relative path. The empty string denotes the
// media root. Paths climbing above the root are rejected.
func NormalizePath(p string) (string, error) {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	p = strings.TrimPrefix(p, "media://")

	for _, segment := range strings.Split(p, "/") {
		if segment == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
		}
	}

	clean := path.Clean("/" + p)
	return strings.TrimPrefix(clean, "/"), nil
}

// SplitSelection splits the pipe-delimited selection sent by clients.
func SplitSelection(files string) []string {
	var out []string
	for _, f := range strings.Split(files, "|") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
