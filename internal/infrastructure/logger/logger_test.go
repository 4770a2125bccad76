package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("json output with fields", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New(&buf, Options{Level: "debug", Format: "json"})
		require.NoError(t, err)

		l.Debug("batch finished", "station", "radio", "files", 3)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "batch finished", entry["msg"])
		assert.Equal(t, "radio", entry["station"])
		assert.Equal(t, float64(3), entry["files"])
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New(&buf, Options{Level: "warn"})
		require.NoError(t, err)

		l.Info("hidden")
		assert.Empty(t, buf.String())
		l.Warn("shown")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := New(nil, Options{Level: "loud"})
		assert.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := New(nil, Options{Format: "xml"})
		assert.Error(t, err)
	})
}

func TestDefault(t *testing.T) {
	original := Default()
	t.Cleanup(func() { SetDefault(original) })

	replacement := Discard()
	SetDefault(replacement)
	assert.Same(t, replacement, Default())
}
