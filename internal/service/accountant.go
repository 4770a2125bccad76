package service

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/elaa0505/AzuraCast/internal/domain"
	"github.com/elaa0505/AzuraCast/internal/port"
)

// StorageAccountant tracks the bytes a batch frees from a tenant. Persist
// subtracts them from the stored usage in one relative update, so batches
// working from stale tenant snapshots do not overwrite each other.
type StorageAccountant struct {
	tenants port.TenantStore
	tenant  *domain.Tenant
	logger  *log.Logger

	freed   int64
	counted map[string]struct{}
}

func NewStorageAccountant(tenants port.TenantStore, tenant *domain.Tenant, logger *log.Logger) *StorageAccountant {
	return &StorageAccountant{
		tenants: tenants,
		tenant:  tenant,
		logger:  logger,
		counted: make(map[string]struct{}),
	}
}

// Decrement records size as freed for path. A path is only counted once per
// batch.
func (a *StorageAccountant) Decrement(path string, size int64) {
	if _, ok := a.counted[path]; ok || size <= 0 {
		return
	}
	a.counted[path] = struct{}{}
	a.freed += size
}

func (a *StorageAccountant) Freed() int64 { return a.freed }

// Persist releases the freed bytes. The stored usage never drops below zero.
func (a *StorageAccountant) Persist(ctx context.Context) error {
	if a.freed == 0 {
		return nil
	}
	used, err := a.tenants.ReleaseStorage(ctx, a.tenant.ID, a.freed)
	if err != nil {
		return fmt.Errorf("persist storage usage: %w", err)
	}
	if used == 0 {
		a.logger.Warn("storage usage is now zero",
			"station", a.tenant.ShortName, "freed", a.freed)
	}
	a.tenant.StorageUsed = used
	a.logger.Debug("storage usage updated",
		"station", a.tenant.ShortName,
		"freed", humanize.IBytes(uint64(a.freed)),
		"used", humanize.IBytes(uint64(used)))
	return nil
}
