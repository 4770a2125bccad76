package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"

	"github.com/elaa0505/AzuraCast/internal/adapter/filestore/local"
	"github.com/elaa0505/AzuraCast/internal/adapter/filestore/s3"
	"github.com/elaa0505/AzuraCast/internal/adapter/storage/sqlite"
	"github.com/elaa0505/AzuraCast/internal/infrastructure/logger"
	"github.com/elaa0505/AzuraCast/internal/port"
)

func NewLogger(cfg LoggingConfig, w io.Writer) (*log.Logger, error) {
	return logger.New(w, logger.Options{
		Level:        cfg.Level,
		Format:       cfg.Format,
		ReportCaller: cfg.ReportCaller,
	})
}

func OpenCatalog(cfg CatalogConfig) (*sqlite.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	store, err := sqlite.NewStore(cfg.DataDir, sqlite.WithCacheEntries(cfg.CacheEntries))
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	return store, nil
}

// OpenFileStore creates the file store selected by cfg.Type.
func OpenFileStore(ctx context.Context, cfg StorageConfig, dataDir string) (port.FileStore, error) {
	switch cfg.Type {
	case "local":
		return openLocalStore(cfg.Options, dataDir)
	case "memory":
		return local.NewMemoryStore(), nil
	case "s3":
		return openS3Store(ctx, cfg.Options)
	default:
		return nil, fmt.Errorf("unknown storage type: %q", cfg.Type)
	}
}

func openLocalStore(options map[string]any, dataDir string) (port.FileStore, error) {
	type localOptions struct {
		Root string `mapstructure:"root"`
	}

	var opts localOptions
	if err := mapstructure.Decode(options, &opts); err != nil {
		return nil, fmt.Errorf("failed to decode local storage options: %w", err)
	}
	if opts.Root == "" {
		opts.Root = filepath.Join(dataDir, "stations")
	}

	store, err := local.NewStore(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to create local store: %w", err)
	}
	return store, nil
}

func openS3Store(ctx context.Context, options map[string]any) (port.FileStore, error) {
	var opts s3.Options
	if err := mapstructure.Decode(options, &opts); err != nil {
		return nil, fmt.Errorf("failed to decode s3 storage options: %w", err)
	}
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 storage: bucket is required")
	}

	client, err := s3.NewClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s3.NewStore(client, opts.Bucket, opts.KeyPrefix), nil
}

// PlaybackFs is the filesystem playback configuration is written to,
// rooted at the output directory.
func PlaybackFs(cfg PlaybackConfig) (afero.Fs, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create playback directory: %w", err)
	}
	return afero.NewBasePathFs(afero.NewOsFs(), cfg.OutputDir), nil
}
