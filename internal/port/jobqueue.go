package port

import (
	"context"

	"github.com/elaa0505/AzuraCast/internal/domain"
)

type JobQueue interface {
	Enqueue(ctx context.Context, tenantID int64, jobType domain.JobType) (*domain.Job, error)
	Claim(ctx context.Context) (*domain.Job, error)
	Complete(ctx context.Context, jobID int64) error
	Fail(ctx context.Context, jobID int64, errMsg string) error
	ResetStalled(ctx context.Context) error
}
