package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/elaa0505/AzuraCast/config"
	"github.com/elaa0505/AzuraCast/internal/adapter/playback"
	"github.com/elaa0505/AzuraCast/internal/adapter/storage/sqlite"
	"github.com/elaa0505/AzuraCast/internal/domain"
	"github.com/elaa0505/AzuraCast/internal/infrastructure/logger"
	"github.com/elaa0505/AzuraCast/internal/port"
)

// Runner holds the dependencies shared by command actions.
type Runner struct {
	config *config.Config
	logger *log.Logger
	output io.Writer
	files  port.FileStore
}

// RunnerOpts overrides what Setup would otherwise build from the
// configuration file.
type RunnerOpts struct {
	Config *config.Config
	Logger *log.Logger
	Output io.Writer
	Files  port.FileStore
}

func NewRunner(opts RunnerOpts) *Runner {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
		files:  opts.Files,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, batchCommand, verifyCommand, stationCommand, migrateCommand, hashKeyCommand,
	} {
		commands = append(commands, fn(r))
	}
	return commands
}

// Setup loads the configuration and builds the process logger. It runs
// before every command.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if r.config == nil {
		cfg, err := config.Load(cmd.String("config"))
		if err != nil {
			return ctx, err
		}
		r.config = cfg
	}
	if level := cmd.String("log-level"); level != "" {
		r.config.Logging.Level = level
	}

	if r.logger == nil {
		l, err := config.NewLogger(r.config.Logging, os.Stderr)
		if err != nil {
			return ctx, err
		}
		r.logger = l
	}
	logger.SetDefault(r.logger)
	return ctx, nil
}

func (r *Runner) openCatalog() (*sqlite.Store, error) {
	return config.OpenCatalog(r.config.Catalog)
}

func (r *Runner) openFiles(ctx context.Context) (port.FileStore, error) {
	if r.files != nil {
		return r.files, nil
	}
	return config.OpenFileStore(ctx, r.config.Storage, r.config.Catalog.DataDir)
}

func (r *Runner) playbackWriter(catalog port.Catalog) (*playback.Writer, error) {
	fs, err := config.PlaybackFs(r.config.Playback)
	if err != nil {
		return nil, err
	}
	return playback.NewWriter(fs, catalog, "/", r.logger), nil
}

// resolveStation accepts a numeric id or a short name.
func resolveStation(ctx context.Context, catalog port.Catalog, ref string) (*domain.Tenant, error) {
	var (
		tenant *domain.Tenant
		err    error
	)
	if id, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
		tenant, err = catalog.GetTenant(ctx, id)
	} else {
		tenant, err = catalog.GetTenantByShortName(ctx, ref)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("station %q not found", ref)
	}
	return tenant, err
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(append(output, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	if _, err := fmt.Fprintf(r.output, format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
