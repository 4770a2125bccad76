package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/elaa0505/AzuraCast/internal/domain"
	"github.com/elaa0505/AzuraCast/internal/infrastructure/backoff"
	"github.com/elaa0505/AzuraCast/internal/infrastructure/logger"
	"github.com/elaa0505/AzuraCast/internal/port"
)

// WorkerPool drains the job queue. Regenerate jobs rebuild the playback
// configuration of their tenant.
type WorkerPool struct {
	jobQueue     port.JobQueue
	tenants      port.TenantStore
	regenerator  port.ConfigRegenerator
	eventBus     EventPublisher
	workers      int
	pollInterval time.Duration
	backoff      *backoff.Backoff
	logger       *log.Logger
	wg           sync.WaitGroup
}

func NewWorkerPool(
	jobQueue port.JobQueue,
	tenants port.TenantStore,
	regenerator port.ConfigRegenerator,
	eventBus EventPublisher,
	workers int,
	pollInterval time.Duration,
	l *log.Logger,
) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if pollInterval <= 0 {
		pollInterval = 500 * time.Millisecond
	}
	if l == nil {
		l = logger.Default()
	}
	return &WorkerPool{
		jobQueue:     jobQueue,
		tenants:      tenants,
		regenerator:  regenerator,
		eventBus:     eventBus,
		workers:      workers,
		pollInterval: pollInterval,
		backoff:      backoff.New(pollInterval, 30*time.Second, 2),
		logger:       l.With("component", "worker"),
	}
}

func (wp *WorkerPool) Start(ctx context.Context) {
	if err := wp.jobQueue.ResetStalled(ctx); err != nil {
		wp.logger.Error("failed to reset stalled jobs", "error", err)
	}

	for i := range wp.workers {
		wp.wg.Add(1)
		go func() {
			defer wp.wg.Done()
			wp.runWorker(ctx, i)
		}()
	}
	wp.logger.Info("workers started", "count", wp.workers)
}

// Wait blocks until every worker has returned after ctx was cancelled.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

func (wp *WorkerPool) runWorker(ctx context.Context, id int) {
	failures := 0
	for {
		job, err := wp.jobQueue.Claim(ctx)

		var delay time.Duration
		switch {
		case err != nil:
			failures++
			delay = wp.backoff.Duration(failures)
			if ctx.Err() == nil {
				wp.logger.Error("failed to claim job", "worker", id, "error", err, "retry_in", delay)
			}
		case job == nil:
			failures = 0
			delay = wp.pollInterval
		default:
			failures = 0
			wp.logger.Debug("processing job", "worker", id, "job", job.ID, "type", job.Type, "tenant", job.TenantID)
			wp.processJob(ctx, job)
		}

		if delay == 0 {
			if ctx.Err() != nil {
				wp.logger.Debug("worker shutting down", "worker", id)
				return
			}
			continue
		}

		select {
		case <-ctx.Done():
			wp.logger.Debug("worker shutting down", "worker", id)
			return
		case <-time.After(delay):
		}
	}
}

func (wp *WorkerPool) processJob(ctx context.Context, job *domain.Job) {
	var err error

	switch job.Type {
	case domain.JobTypeRegenerate:
		err = wp.handleRegenerate(ctx, job)
	default:
		err = fmt.Errorf("unknown job type: %s", job.Type)
	}

	if err != nil {
		wp.logger.Error("job failed", "job", job.ID, "tenant", job.TenantID, "error", err)
		if failErr := wp.jobQueue.Fail(ctx, job.ID, err.Error()); failErr != nil {
			wp.logger.Error("failed to mark job failed", "job", job.ID, "error", failErr)
		}
		wp.publishEvent(job.TenantID, string(job.Type), string(domain.JobStatusFailed), err.Error())
		return
	}

	if err := wp.jobQueue.Complete(ctx, job.ID); err != nil {
		wp.logger.Error("failed to mark job done", "job", job.ID, "error", err)
	}
	wp.publishEvent(job.TenantID, string(job.Type), string(domain.JobStatusDone), "")
}

func (wp *WorkerPool) handleRegenerate(ctx context.Context, job *domain.Job) error {
	tenant, err := wp.tenants.GetTenant(ctx, job.TenantID)
	if err != nil {
		return fmt.Errorf("load tenant %d: %w", job.TenantID, err)
	}
	if err := wp.regenerator.Regenerate(ctx, tenant); err != nil {
		return fmt.Errorf("regenerate %s: %w", tenant.ShortName, err)
	}
	return nil
}

func (wp *WorkerPool) publishEvent(tenantID int64, eventType, status, message string) {
	if wp.eventBus == nil {
		return
	}
	wp.eventBus.Publish(tenantID, Event{
		Type:    eventType,
		Status:  status,
		Message: message,
	})
}
