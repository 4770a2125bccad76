package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		err      error
	}{
		{
			name:     "single file",
			input:    "song.mp3",
			expected: []string{"song.mp3"},
		},
		{
			name:     "pipe delimited",
			input:    "a.mp3|dir/b.mp3|dir",
			expected: []string{"a.mp3", "dir/b.mp3", "dir"},
		},
		{
			name:     "empty entries skipped",
			input:    "|a.mp3||b.mp3|",
			expected: []string{"a.mp3", "b.mp3"},
		},
		{
			name:     "unicode preserved",
			input:    "vidéo/曲.flac",
			expected: []string{"vidéo/曲.flac"},
		},
		{
			name:     "control characters dropped",
			input:    "ok.mp3|bad\n.mp3",
			expected: []string{"ok.mp3"},
		},
		{
			name:     "overlong path dropped",
			input:    strings.Repeat("a", maxPathLength+1) + "|ok.mp3",
			expected: []string{"ok.mp3"},
		},
		{
			name:  "nothing selected",
			input: "||",
			err:   ErrEmptySelection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Selection(tt.input)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSelection_TooMany(t *testing.T) {
	raw := strings.TrimSuffix(strings.Repeat("a.mp3|", MaxSelection+1), "|")
	_, err := Selection(raw)
	assert.ErrorIs(t, err, ErrSelectionTooLong)
}

func TestPlaylistName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Morning Show", "Morning Show"},
		{"trimmed", "  Late Night  ", "Late Night"},
		{"control characters", "Rock\r\nRoll", "Rock  Roll"},
		{"unicode", "Café Ünïcode 🎵", "Café Ünïcode 🎵"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlaylistName(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("empty", func(t *testing.T) {
		_, err := PlaylistName(" \t ")
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("truncated on rune boundary", func(t *testing.T) {
		got, err := PlaylistName(strings.Repeat("é", 200))
		require.NoError(t, err)
		assert.LessOrEqual(t, len(got), maxNameLength)
		assert.Equal(t, strings.Repeat("é", 127), got)
	})
}
