package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"go.uber.org/multierr"

	"github.com/elaa0505/AzuraCast/internal/domain"
	"github.com/elaa0505/AzuraCast/internal/infrastructure/logger"
	"github.com/elaa0505/AzuraCast/internal/port"
)

// Report describes how far the catalog and the file store of a tenant have
// drifted apart.
type Report struct {
	Station        string   `json:"station"`
	MissingFiles   []string `json:"missing_files"`
	UntrackedFiles []string `json:"untracked_files"`
	RecordedUsage  int64    `json:"recorded_usage"`
	ActualUsage    int64    `json:"actual_usage"`
	Repaired       bool     `json:"repaired"`
}

func (r *Report) UsageDrift() int64 {
	return r.RecordedUsage - r.ActualUsage
}

func (r *Report) Clean() bool {
	return len(r.MissingFiles) == 0 && len(r.UntrackedFiles) == 0 && r.UsageDrift() == 0
}

type Reconciler struct {
	catalog port.Catalog
	files   port.FileStore
	logger  *log.Logger
}

func NewReconciler(catalog port.Catalog, files port.FileStore, l *log.Logger) *Reconciler {
	if l == nil {
		l = logger.Default()
	}
	return &Reconciler{
		catalog: catalog,
		files:   files,
		logger:  l.With("component", "reconcile"),
	}
}

// Verify compares the catalog records of tenant with its media tree.
func (r *Reconciler) Verify(ctx context.Context, tenant *domain.Tenant) (*Report, error) {
	records, err := r.catalog.ListMedia(ctx, tenant.ID)
	if err != nil {
		return nil, fmt.Errorf("list media records: %w", err)
	}

	entries, err := r.files.List(ctx, tenant.MediaRoot, true)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("list media tree: %w", err)
	}

	report := &Report{
		Station:        tenant.ShortName,
		MissingFiles:   []string{},
		UntrackedFiles: []string{},
		RecordedUsage:  tenant.StorageUsed,
	}

	onDisk := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if !e.IsFile() {
			continue
		}
		rel := tenant.RelativePath(e.Path)
		onDisk[rel] = struct{}{}
		report.ActualUsage += e.Size
	}

	inCatalog := make(map[string]struct{}, len(records))
	for _, m := range records {
		inCatalog[m.Path] = struct{}{}
		if _, ok := onDisk[m.Path]; !ok {
			report.MissingFiles = append(report.MissingFiles, m.Path)
		}
	}
	for _, e := range entries {
		if !e.IsFile() {
			continue
		}
		rel := tenant.RelativePath(e.Path)
		if _, ok := inCatalog[rel]; !ok {
			report.UntrackedFiles = append(report.UntrackedFiles, rel)
		}
	}

	return report, nil
}

// Repair removes records whose file is gone and resets the usage counter to
// what the store holds. Untracked files are left alone.
func (r *Reconciler) Repair(ctx context.Context, tenant *domain.Tenant) (*Report, error) {
	defer r.catalog.ClearIdentities(domain.EntityMedia, domain.EntityPlaylistMembership)

	report, err := r.Verify(ctx, tenant)
	if err != nil {
		return nil, err
	}
	if report.Clean() {
		return report, nil
	}

	tx, err := r.catalog.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var errs error
	for _, p := range report.MissingFiles {
		err := tx.Isolate(ctx, func() error {
			record, err := tx.FindMedia(ctx, tenant.ID, p)
			if err != nil {
				return err
			}
			return tx.DeleteMedia(ctx, record)
		})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", p, err))
		}
	}
	if err := tx.SetStorageUsed(ctx, tenant.ID, report.ActualUsage); err != nil {
		return nil, fmt.Errorf("reset storage usage: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit repair: %w", err)
	}

	tenant.StorageUsed = report.ActualUsage
	report.Repaired = true
	r.logger.Info("catalog repaired",
		"station", tenant.ShortName,
		"removed_records", len(report.MissingFiles),
		"usage", humanize.IBytes(uint64(report.ActualUsage)))
	return report, errs
}
