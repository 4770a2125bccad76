package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/elaa0505/AzuraCast/internal/adapter/storage/sqlite/sqlitedb"
	"github.com/elaa0505/AzuraCast/internal/domain"
	"github.com/elaa0505/AzuraCast/internal/port"
)

type JobQueue struct {
	db      *sql.DB
	queries *sqlitedb.Queries
}

func NewJobQueue(store *Store) *JobQueue {
	return &JobQueue{
		db:      store.db,
		queries: store.queries,
	}
}

// Enqueue adds a job unless an identical one is still pending, in which
// case the pending job is returned.
func (q *JobQueue) Enqueue(ctx context.Context, tenantID int64, jobType domain.JobType) (*domain.Job, error) {
	pending, err := q.queries.FindPendingJob(ctx, sqlitedb.FindPendingJobParams{
		TenantID: tenantID,
		Type:     string(jobType),
	})
	if err == nil {
		return jobFromRow(pending), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	id, err := q.queries.InsertJob(ctx, sqlitedb.InsertJobParams{
		TenantID: tenantID,
		Type:     string(jobType),
	})
	if err != nil {
		return nil, err
	}
	row, err := q.queries.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	return jobFromRow(row), nil
}

// Claim marks the oldest pending job as running. It returns nil when the
// queue is empty.
func (q *JobQueue) Claim(ctx context.Context) (*domain.Job, error) {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin claim: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	queries := q.queries.WithTx(tx)
	id, err := queries.NextPendingJobID(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := queries.MarkJobRunning(ctx, id); err != nil {
		return nil, err
	}
	row, err := queries.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit claim: %w", err)
	}
	return jobFromRow(row), nil
}

func (q *JobQueue) Complete(ctx context.Context, jobID int64) error {
	return q.queries.CompleteJob(ctx, jobID)
}

func (q *JobQueue) Fail(ctx context.Context, jobID int64, errMsg string) error {
	return q.queries.FailJob(ctx, sqlitedb.FailJobParams{
		ErrorMessage: errMsg,
		ID:           jobID,
	})
}

func (q *JobQueue) ResetStalled(ctx context.Context) error {
	return q.queries.ResetStalledJobs(ctx)
}

func jobFromRow(row sqlitedb.Job) *domain.Job {
	return &domain.Job{
		ID:           row.ID,
		TenantID:     row.TenantID,
		Type:         domain.JobType(row.Type),
		Status:       domain.JobStatus(row.Status),
		ErrorMessage: row.ErrorMessage,
		Attempts:     row.Attempts,
		CreatedAt:    row.CreatedAt,
		StartedAt:    nullTime(row.StartedAt),
		CompletedAt:  nullTime(row.CompletedAt),
	}
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

var _ port.JobQueue = (*JobQueue)(nil)
