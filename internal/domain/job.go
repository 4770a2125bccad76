package domain

import "time"

// JobType names the background work a job performs for its tenant.
type JobType string

// JobTypeRegenerate rebuilds the playback configuration of a tenant. At most
// one pending regenerate job exists per tenant.
const JobTypeRegenerate JobType = "regenerate"

type JobStatus string

const (
	JobStatusPending JobStatus = "pending"
	JobStatusRunning JobStatus = "running"
	JobStatusDone    JobStatus = "done"
	JobStatusFailed  JobStatus = "failed"
)

type Job struct {
	ID           int64
	TenantID     int64
	Type         JobType
	Status       JobStatus
	ErrorMessage string
	Attempts     int64
	CreatedAt    time.Time
	StartedAt    *time.Time
	CompletedAt  *time.Time
}
