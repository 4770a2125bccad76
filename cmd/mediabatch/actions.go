package main

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/elaa0505/AzuraCast/internal/adapter/http/validation"
	"github.com/elaa0505/AzuraCast/internal/domain"
	"github.com/elaa0505/AzuraCast/internal/service"
)

var shortNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// Batch runs one operation synchronously and regenerates the playback
// configuration in-process.
func (r *Runner) Batch(ctx context.Context, cmd *cli.Command) error {
	store, err := r.openCatalog()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	files, err := r.openFiles(ctx)
	if err != nil {
		return err
	}
	tenant, err := resolveStation(ctx, store, cmd.String("station"))
	if err != nil {
		return err
	}

	selection, err := validation.Selection(cmd.String("files"))
	if err != nil {
		return err
	}
	params := domain.OperationParams{
		Playlists: cmd.StringSlice("playlist"),
		Directory: cmd.String("directory"),
	}
	if name := cmd.String("name"); name != "" {
		if params.NewPlaylistName, err = validation.PlaylistName(name); err != nil {
			return fmt.Errorf("name: %w", err)
		}
	}
	op, err := domain.ParseOperation(cmd.String("do"), params)
	if err != nil {
		return err
	}

	writer, err := r.playbackWriter(store)
	if err != nil {
		return err
	}
	result, err := service.NewBatchService(store, files, writer, nil, r.logger).Execute(ctx, tenant, selection, op)
	if err != nil {
		return err
	}
	return r.writeJSON(result, cmd.Bool("pretty"))
}

// Verify prints the reconciliation report. Unrepaired drift is an error so
// scripts can alert on it.
func (r *Runner) Verify(ctx context.Context, cmd *cli.Command) error {
	store, err := r.openCatalog()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	files, err := r.openFiles(ctx)
	if err != nil {
		return err
	}
	tenant, err := resolveStation(ctx, store, cmd.String("station"))
	if err != nil {
		return err
	}

	reconciler := service.NewReconciler(store, files, r.logger)
	var report *service.Report
	if cmd.Bool("fix") {
		report, err = reconciler.Repair(ctx, tenant)
	} else {
		report, err = reconciler.Verify(ctx, tenant)
	}
	if report == nil {
		return err
	}
	if werr := r.writeJSON(report, true); werr != nil {
		return werr
	}
	if err != nil {
		return fmt.Errorf("repair incomplete: %w", err)
	}
	if !report.Repaired && !report.Clean() {
		return errors.New("catalog drift detected, rerun with --fix to repair")
	}
	return nil
}

func (r *Runner) StationCreate(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(cmd.String("name"))
	shortName := strings.ToLower(strings.TrimSpace(cmd.String("short-name")))
	if name == "" {
		return errors.New("name must not be empty")
	}
	if !shortNamePattern.MatchString(shortName) {
		return fmt.Errorf("invalid short name %q: use lowercase letters, digits, '-' and '_'", shortName)
	}

	store, err := r.openCatalog()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	files, err := r.openFiles(ctx)
	if err != nil {
		return err
	}

	tenant := domain.NewTenant(name, shortName)
	if err := store.CreateTenant(ctx, tenant); err != nil {
		return err
	}
	// Object stores have no directories to create.
	if mk, ok := files.(interface {
		MkdirAll(context.Context, string) error
	}); ok {
		if err := mk.MkdirAll(ctx, tenant.MediaRoot); err != nil {
			return fmt.Errorf("create media root: %w", err)
		}
	}

	r.logger.Info("station created", "id", tenant.ID, "short_name", tenant.ShortName, "media_root", tenant.MediaRoot)
	return r.writePlain("%d\t%s\t%s\n", tenant.ID, tenant.ShortName, tenant.MediaRoot)
}

func (r *Runner) StationList(ctx context.Context, cmd *cli.Command) error {
	store, err := r.openCatalog()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	tenants, err := store.ListTenants(ctx)
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		if tenants == nil {
			tenants = []*domain.Tenant{}
		}
		return r.writeJSON(tenants, true)
	}

	tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSHORT NAME\tNAME\tUSED\tMEDIA ROOT")
	for _, t := range tenants {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.ShortName, t.Name, humanize.IBytes(uint64(t.StorageUsed)), t.MediaRoot)
	}
	return tw.Flush()
}

// Migrate relies on the catalog applying pending migrations when opened.
func (r *Runner) Migrate(_ context.Context, _ *cli.Command) error {
	store, err := r.openCatalog()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	version, err := store.SchemaVersion()
	if err != nil {
		return err
	}
	return r.writePlain("schema version %d\n", version)
}

func (r *Runner) HashKey(_ context.Context, cmd *cli.Command) error {
	key := cmd.String("key")
	generated := key == ""
	if generated {
		var err error
		if key, err = service.GenerateAPIKey(); err != nil {
			return err
		}
	}

	hash, err := service.HashAPIKey(key)
	if err != nil {
		return err
	}
	if generated {
		if err := r.writePlain("key:  %s\n", key); err != nil {
			return err
		}
	}
	return r.writePlain("hash: %s\n", hash)
}
