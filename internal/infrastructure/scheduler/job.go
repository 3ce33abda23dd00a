package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the status of a job run
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// Names of the background jobs
const (
	JobExpireStaleQuotes  = "expire_stale_quotes"
	JobWarmDashboardCache = "warm_dashboard_cache"
)

// JobFunc is the body of a background job
type JobFunc func(ctx context.Context) error

// Job is one run of a registered job
type Job struct {
	ID          uuid.UUID
	Name        string
	Status      JobStatus
	Error       string
	StartedAt   *time.Time
	CompletedAt *time.Time
	RetryCount  int
	MaxRetries  int
}

// NewJob creates a pending run
func NewJob(name string, maxRetries int) *Job {
	return &Job{
		ID:         uuid.New(),
		Name:       name,
		Status:     JobStatusPending,
		MaxRetries: maxRetries,
	}
}

// Start marks the job as running
func (j *Job) Start() {
	now := time.Now()
	j.Status = JobStatusRunning
	j.StartedAt = &now
	j.Error = ""
}

// Complete marks the job as successful
func (j *Job) Complete() {
	now := time.Now()
	j.Status = JobStatusSuccess
	j.CompletedAt = &now
}

// Fail marks the job as failed
func (j *Job) Fail(err string) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.CompletedAt = &now
	j.Error = err
}

// ShouldRetry returns true if the job should be retried
func (j *Job) ShouldRetry() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// ScheduleRetry resets the job for another attempt
func (j *Job) ScheduleRetry() {
	j.RetryCount++
	j.Status = JobStatusPending
	j.Error = ""
}

// JobStats summarises the runs of one job name
type JobStats struct {
	Name        string     `json:"name"`
	Runs        int64      `json:"runs"`
	Failures    int64      `json:"failures"`
	Running     bool       `json:"running"`
	LastStatus  JobStatus  `json:"last_status,omitempty"`
	LastError   string     `json:"last_error,omitempty"`
	LastRunAt   *time.Time `json:"last_run_at,omitempty"`
	LastRunTime string     `json:"last_run_time,omitempty"`
}
