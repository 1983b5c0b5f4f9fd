// Package queue runs the background jobs the API fires and forgets:
// notification email digests and approved-statement exports. Providers
// are an in-process memory queue for dev and tests and a postgres table
// shared with the document mirror for production.
package queue

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Job is one unit of background work.
type Job struct {
	ID           uuid.UUID
	QueueName    string
	JobType      string
	Payload      map[string]interface{}
	Status       JobStatus
	Priority     int
	MaxAttempts  int
	AttemptCount int
	ScheduledAt  time.Time
	CreatedAt    time.Time
	StartedAt    *time.Time
	CompletedAt  *time.Time
	Result       map[string]interface{}
	ErrorMessage string
	WorkerID     string
}

// EnqueueOptions customizes scheduling of a new job.
type EnqueueOptions struct {
	Priority    int        // higher runs first, default 0
	MaxAttempts int        // default 3
	ScheduledAt *time.Time // absolute run time, default now
	Delay       time.Duration
}

// DequeueOptions selects which queues a worker polls.
type DequeueOptions struct {
	QueueNames []string // empty means every queue
	Timeout    time.Duration
}

// Queue is implemented by the memory and postgres providers.
type Queue interface {
	// Enqueue adds a job to the named queue.
	Enqueue(ctx context.Context, queueName, jobType string, payload map[string]interface{}, opts *EnqueueOptions) (*Job, error)

	// Dequeue claims the next runnable job for workerID, or returns nil
	// when nothing is pending.
	Dequeue(ctx context.Context, workerID string, opts *DequeueOptions) (*Job, error)

	// Complete records the result and finishes the job.
	Complete(ctx context.Context, jobID uuid.UUID, result map[string]interface{}) error

	// Fail records the error. Jobs with attempts remaining are
	// rescheduled with exponential backoff.
	Fail(ctx context.Context, jobID uuid.UUID, errMsg string) error

	// Delete removes a job outright.
	Delete(ctx context.Context, jobID uuid.UUID) error

	// GetJob looks a job up by id.
	GetJob(ctx context.Context, jobID uuid.UUID) (*Job, error)

	// ListJobs returns jobs matching the filter, newest first.
	ListJobs(ctx context.Context, filter JobFilter) ([]*Job, error)

	// GetQueueStats summarizes recent activity on one queue.
	GetQueueStats(ctx context.Context, queueName string) (*QueueStats, error)

	Close() error
}

type JobFilter struct {
	QueueName *string
	JobType   *string
	Status    *JobStatus
	Limit     int
	Offset    int
}

type QueueStats struct {
	QueueName         string
	PendingJobs       int
	ProcessingJobs    int
	CompletedJobs     int
	FailedJobs        int
	AvgProcessingTime time.Duration
}

// Config selects a provider and tunes the worker pool.
type Config struct {
	Provider string // "postgres" or "memory"

	PostgresConnectionString string

	WorkerCount      int
	PollInterval     time.Duration
	JobTimeout       time.Duration
	ShutdownTimeout  time.Duration
	CleanupInterval  time.Duration
	CleanupRetention time.Duration
}

func DefaultEnqueueOptions() *EnqueueOptions {
	return &EnqueueOptions{MaxAttempts: 3}
}

func DefaultDequeueOptions() *DequeueOptions {
	return &DequeueOptions{Timeout: 5 * time.Second}
}

// DefaultConfig suits the two low-volume queues this service runs.
func DefaultConfig() Config {
	return Config{
		Provider:         "memory",
		WorkerCount:      3,
		PollInterval:     1 * time.Second,
		JobTimeout:       60 * time.Second,
		ShutdownTimeout:  30 * time.Second,
		CleanupInterval:  1 * time.Hour,
		CleanupRetention: 24 * time.Hour,
	}
}
