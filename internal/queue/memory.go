package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryQueue is an in-memory queue implementation, used in development and tests
type MemoryQueue struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*Job
}

// NewMemoryQueue creates a new in-memory queue
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{
		jobs: make(map[uuid.UUID]*Job),
	}
}

func (m *MemoryQueue) Enqueue(ctx context.Context, queueName, jobType string, payload map[string]interface{}, opts *EnqueueOptions) (*Job, error) {
	if opts == nil {
		opts = DefaultEnqueueOptions()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	job := &Job{
		ID:           uuid.New(),
		QueueName:    queueName,
		JobType:      jobType,
		Payload:      payload,
		Status:       JobStatusPending,
		Priority:     opts.Priority,
		MaxAttempts:  opts.MaxAttempts,
		AttemptCount: 0,
		CreatedAt:    time.Now(),
		ScheduledAt:  time.Now(),
	}

	if opts.ScheduledAt != nil {
		job.ScheduledAt = *opts.ScheduledAt
	} else if opts.Delay > 0 {
		job.ScheduledAt = time.Now().Add(opts.Delay)
	}

	m.jobs[job.ID] = job
	return job, nil
}

func (m *MemoryQueue) Dequeue(ctx context.Context, workerID string, opts *DequeueOptions) (*Job, error) {
	if opts == nil {
		opts = DefaultDequeueOptions()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Find next pending job
	var bestJob *Job
	for _, job := range m.jobs {
		if job.Status != JobStatusPending {
			continue
		}
		if job.ScheduledAt.After(time.Now()) {
			continue
		}
		if len(opts.QueueNames) > 0 && !containsString(opts.QueueNames, job.QueueName) {
			continue
		}
		if bestJob == nil || job.Priority > bestJob.Priority {
			bestJob = job
		}
	}

	if bestJob == nil {
		return nil, nil
	}

	// Lock the job
	now := time.Now()
	bestJob.Status = JobStatusProcessing
	bestJob.StartedAt = &now
	bestJob.AttemptCount++
	bestJob.WorkerID = workerID

	return bestJob, nil
}

func (m *MemoryQueue) Complete(ctx context.Context, jobID uuid.UUID, result map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}

	now := time.Now()
	job.Status = JobStatusCompleted
	job.CompletedAt = &now
	job.Result = result

	return nil
}

func (m *MemoryQueue) Fail(ctx context.Context, jobID uuid.UUID, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}

	job.ErrorMessage = errMsg

	if job.AttemptCount >= job.MaxAttempts {
		job.Status = JobStatusFailed
	} else {
		// Retry with exponential backoff
		job.Status = JobStatusPending
		backoff := time.Duration(1<<uint(job.AttemptCount)) * time.Minute
		job.ScheduledAt = time.Now().Add(backoff)
	}

	return nil
}

func (m *MemoryQueue) Delete(ctx context.Context, jobID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.jobs, jobID)
	return nil
}

func (m *MemoryQueue) GetJob(ctx context.Context, jobID uuid.UUID) (*Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}

	return job, nil
}

func (m *MemoryQueue) ListJobs(ctx context.Context, filter JobFilter) ([]*Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var jobs []*Job
	for _, job := range m.jobs {
		if filter.QueueName != nil && *filter.QueueName != job.QueueName {
			continue
		}
		if filter.JobType != nil && *filter.JobType != job.JobType {
			continue
		}
		if filter.Status != nil && *filter.Status != job.Status {
			continue
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

func (m *MemoryQueue) GetQueueStats(ctx context.Context, queueName string) (*QueueStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &QueueStats{
		QueueName: queueName,
	}

	for _, job := range m.jobs {
		if job.QueueName != queueName {
			continue
		}

		switch job.Status {
		case JobStatusPending:
			stats.PendingJobs++
		case JobStatusProcessing:
			stats.ProcessingJobs++
		case JobStatusCompleted:
			stats.CompletedJobs++
		case JobStatusFailed:
			stats.FailedJobs++
		}
	}

	return stats, nil
}

func (m *MemoryQueue) Close() error {
	// Nothing to close for the in-memory queue
	return nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// Verify MemoryQueue implements Queue interface
var _ Queue = (*MemoryQueue)(nil)
