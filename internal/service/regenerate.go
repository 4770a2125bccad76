package service

import (
	"context"
	"fmt"

	"github.com/elaa0505/AzuraCast/internal/domain"
	"github.com/elaa0505/AzuraCast/internal/port"
)

// QueuedRegenerator defers playback regeneration to the worker pool.
// Requests for a tenant that already has a pending job collapse into it.
type QueuedRegenerator struct {
	queue port.JobQueue
}

func NewQueuedRegenerator(queue port.JobQueue) *QueuedRegenerator {
	return &QueuedRegenerator{queue: queue}
}

func (r *QueuedRegenerator) Regenerate(ctx context.Context, tenant *domain.Tenant) error {
	if _, err := r.queue.Enqueue(ctx, tenant.ID, domain.JobTypeRegenerate); err != nil {
		return fmt.Errorf("enqueue regeneration: %w", err)
	}
	return nil
}

var _ port.ConfigRegenerator = (*QueuedRegenerator)(nil)
