package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elaa0505/AzuraCast/config"
	"github.com/elaa0505/AzuraCast/internal/adapter/filestore/local"
	"github.com/elaa0505/AzuraCast/internal/domain"
	"github.com/elaa0505/AzuraCast/internal/infrastructure/logger"
	"github.com/elaa0505/AzuraCast/internal/service"
)

type cliFixture struct {
	runner *Runner
	files  *local.Store
	output *bytes.Buffer
	cfg    *config.Config
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	f := &cliFixture{
		files:  local.NewMemoryStore(),
		output: &bytes.Buffer{},
		cfg: &config.Config{
			Logging:  config.LoggingConfig{Level: "info", Format: "text"},
			Catalog:  config.CatalogConfig{DataDir: t.TempDir(), CacheEntries: 100},
			Storage:  config.StorageConfig{Type: "memory"},
			Playback: config.PlaybackConfig{OutputDir: t.TempDir()},
			Worker:   config.WorkerConfig{Count: 1},
		},
	}
	f.runner = NewRunner(RunnerOpts{
		Config: f.cfg,
		Logger: logger.Discard(),
		Output: f.output,
		Files:  f.files,
	})
	return f
}

func (f *cliFixture) run(t *testing.T, args ...string) error {
	t.Helper()
	f.output.Reset()
	return newApp(f.runner).Run(context.Background(), append([]string{"mediabatch"}, args...))
}

func (f *cliFixture) createStation(t *testing.T, shortName string) {
	t.Helper()
	require.NoError(t, f.run(t, "station", "create", "--name", "Test Radio", "--short-name", shortName))
}

func (f *cliFixture) seed(t *testing.T, p, content string) {
	t.Helper()
	fs := f.files.Fs()
	require.NoError(t, fs.MkdirAll(filepath.Dir("/"+p), 0o755))
	require.NoError(t, afero.WriteFile(fs, "/"+p, []byte(content), 0o644))
}

func TestNewRunner(t *testing.T) {
	t.Run("defaults output to stdout", func(t *testing.T) {
		r := NewRunner(RunnerOpts{})
		assert.NotNil(t, r.output)
		assert.Nil(t, r.config)
	})

	t.Run("registers every command", func(t *testing.T) {
		var names []string
		for _, c := range NewRunner(RunnerOpts{}).register() {
			names = append(names, c.Name)
		}
		assert.Equal(t, []string{"serve", "batch", "verify", "station", "migrate", "hash-key"}, names)
	})
}

func TestSetup_LogLevelOverride(t *testing.T) {
	f := newCLIFixture(t)
	require.NoError(t, f.run(t, "--log-level", "debug", "migrate"))
	assert.Equal(t, "debug", f.cfg.Logging.Level)
}

func TestStationCommands(t *testing.T) {
	f := newCLIFixture(t)

	f.createStation(t, "test_radio")
	assert.Equal(t, "1\ttest_radio\tstation_test_radio/media\n", f.output.String())

	meta, err := f.files.Metadata(context.Background(), "station_test_radio/media")
	require.NoError(t, err)
	assert.True(t, meta.IsDir())

	require.NoError(t, f.run(t, "station", "list", "--json"))
	var tenants []domain.Tenant
	require.NoError(t, json.Unmarshal(f.output.Bytes(), &tenants))
	require.Len(t, tenants, 1)
	assert.Equal(t, "Test Radio", tenants[0].Name)

	require.NoError(t, f.run(t, "station", "list"))
	assert.Contains(t, f.output.String(), "SHORT NAME")
	assert.Contains(t, f.output.String(), "test_radio")
	assert.Contains(t, f.output.String(), "0 B")

	err = f.run(t, "station", "create", "--name", "Other", "--short-name", "Bad Name!")
	assert.ErrorContains(t, err, "invalid short name")

	err = f.run(t, "station", "create", "--name", "Again", "--short-name", "test_radio")
	assert.Error(t, err)
}

func TestBatchCommand(t *testing.T) {
	f := newCLIFixture(t)
	f.createStation(t, "demo")
	f.seed(t, "station_demo/media/a.mp3", "abc")
	require.NoError(t, f.files.MkdirAll(context.Background(), "station_demo/media/archive"))

	t.Run("move", func(t *testing.T) {
		require.NoError(t, f.run(t, "batch", "--station", "demo", "--files", "a.mp3", "--do", "move", "--directory", "archive"))

		var result domain.BatchResult
		require.NoError(t, json.Unmarshal(f.output.Bytes(), &result))
		assert.True(t, result.Success)
		assert.Equal(t, 1, result.FilesFound)
		assert.Equal(t, 1, result.FilesAffected)
		assert.Empty(t, result.Errors)

		exists, err := f.files.Exists(context.Background(), "station_demo/media/archive/a.mp3")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.FileExists(t, filepath.Join(f.cfg.Playback.OutputDir, "station_demo", "station.toml"))
	})

	t.Run("playlist with a new playlist", func(t *testing.T) {
		require.NoError(t, f.run(t, "batch", "-s", "1", "-f", "archive", "--do", "playlist", "-p", "new", "--name", "Fresh"))

		var result domain.BatchResult
		require.NoError(t, json.Unmarshal(f.output.Bytes(), &result))
		assert.Equal(t, 1, result.FilesAffected)
		require.NotNil(t, result.Record)
		assert.Equal(t, "Fresh", result.Record.Name)
	})

	t.Run("unknown operation", func(t *testing.T) {
		err := f.run(t, "batch", "--station", "demo", "--files", "archive", "--do", "rename")
		assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	})

	t.Run("unknown station", func(t *testing.T) {
		err := f.run(t, "batch", "--station", "nope", "--files", "a.mp3", "--do", "delete")
		assert.ErrorContains(t, err, `station "nope" not found`)
	})

	t.Run("empty selection", func(t *testing.T) {
		err := f.run(t, "batch", "--station", "demo", "--files", "||", "--do", "delete")
		assert.Error(t, err)
	})
}

func TestVerifyCommand(t *testing.T) {
	f := newCLIFixture(t)
	f.createStation(t, "demo")
	f.seed(t, "station_demo/media/untracked.mp3", "12345")

	err := f.run(t, "verify", "--station", "demo")
	assert.ErrorContains(t, err, "catalog drift detected")

	var report service.Report
	require.NoError(t, json.Unmarshal(f.output.Bytes(), &report))
	assert.Equal(t, []string{"untracked.mp3"}, report.UntrackedFiles)
	assert.Equal(t, int64(5), report.ActualUsage)

	require.NoError(t, f.run(t, "verify", "--station", "demo", "--fix"))
	require.NoError(t, json.Unmarshal(f.output.Bytes(), &report))
	assert.True(t, report.Repaired)

	require.NoError(t, f.run(t, "station", "list", "--json"))
	var tenants []domain.Tenant
	require.NoError(t, json.Unmarshal(f.output.Bytes(), &tenants))
	assert.Equal(t, int64(5), tenants[0].StorageUsed)
}

func TestMigrateCommand(t *testing.T) {
	f := newCLIFixture(t)
	require.NoError(t, f.run(t, "migrate"))
	assert.Regexp(t, `^schema version [1-9]\d*\n$`, f.output.String())
}

func TestHashKeyCommand(t *testing.T) {
	f := newCLIFixture(t)

	t.Run("given key", func(t *testing.T) {
		key := strings.Repeat("k", 32)
		require.NoError(t, f.run(t, "hash-key", "--key", key))

		hash, ok := strings.CutPrefix(strings.TrimSpace(f.output.String()), "hash: ")
		require.True(t, ok)
		auth, err := service.NewAPIKeyAuthenticator([]string{hash})
		require.NoError(t, err)
		assert.NoError(t, auth.Authenticate(key))
	})

	t.Run("generated key", func(t *testing.T) {
		require.NoError(t, f.run(t, "hash-key"))

		lines := strings.Split(strings.TrimSpace(f.output.String()), "\n")
		require.Len(t, lines, 2)
		key := strings.TrimSpace(strings.TrimPrefix(lines[0], "key:"))
		hash := strings.TrimSpace(strings.TrimPrefix(lines[1], "hash:"))

		auth, err := service.NewAPIKeyAuthenticator([]string{hash})
		require.NoError(t, err)
		assert.NoError(t, auth.Authenticate(key))
	})

	t.Run("weak key", func(t *testing.T) {
		err := f.run(t, "hash-key", "--key", "short")
		assert.ErrorIs(t, err, service.ErrWeakAPIKey)
	})
}
