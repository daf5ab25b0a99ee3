// Package jobs describes background work the ledger schedules after writes.
package jobs

import (
	"context"
	"time"
)

// JobType represents the type of job to be executed.
type JobType string

const (
	// JobTypeRefreshBudgetPeriod recomputes the cached aggregates of one budget period.
	JobTypeRefreshBudgetPeriod JobType = "refresh_budget_period"
)

// JobStatus represents the current status of a job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusRetrying  JobStatus = "retrying"
)

// RefreshBudgetPeriodJob asks a worker to recompute one budget period's aggregates.
type RefreshBudgetPeriodJob struct {
	JobID          string `json:"job_id"`
	BudgetPeriodID string `json:"budget_period_id"`

	// TriggeredBy is the transaction whose write made the refresh necessary, if any.
	TriggeredBy string `json:"triggered_by,omitempty"`

	Status      JobStatus  `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
	RetryCount  int        `json:"retry_count"`
	MaxRetries  int        `json:"max_retries"`
}

// Job is a generic interface for all job types.
type Job interface {
	GetID() string
	GetType() JobType
	GetStatus() JobStatus
}

func (j *RefreshBudgetPeriodJob) GetID() string        { return j.JobID }
func (j *RefreshBudgetPeriodJob) GetType() JobType     { return JobTypeRefreshBudgetPeriod }
func (j *RefreshBudgetPeriodJob) GetStatus() JobStatus { return j.Status }

// Publisher enqueues jobs.
type Publisher interface {
	PublishRefreshBudgetPeriod(ctx context.Context, job *RefreshBudgetPeriodJob) error
	Close() error
}

// Consumer runs handlers for queued jobs.
type Consumer interface {
	// Start begins consuming jobs; it returns immediately.
	Start(ctx context.Context, handler JobHandler) error

	// Stop stops consuming jobs and waits for in-flight jobs to complete.
	Stop(ctx context.Context) error
}

// JobHandler processes a job. A returned error schedules a retry until MaxRetries is reached.
type JobHandler func(ctx context.Context, job Job) error

// JobStore keeps the last known state of each job.
type JobStore interface {
	SaveJob(ctx context.Context, job *RefreshBudgetPeriodJob) error
	GetJob(ctx context.Context, jobID string) (*RefreshBudgetPeriodJob, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]*RefreshBudgetPeriodJob, error)
}

// JobFilter defines filtering criteria for listing jobs.
type JobFilter struct {
	BudgetPeriodID string
	Status         JobStatus
	Limit          int
}
