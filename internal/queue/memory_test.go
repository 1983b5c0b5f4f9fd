package queue

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueue_EnqueueDequeue(t *testing.T) {
	queue := NewMemoryQueue()
	ctx := context.Background()

	// Enqueue a job
	payload := map[string]interface{}{
		"test": "data",
	}

	job, err := queue.Enqueue(ctx, "test_queue", "test_job", payload, nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, job.ID)
	assert.Equal(t, "test_queue", job.QueueName)
	assert.Equal(t, "test_job", job.JobType)
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, 0, job.AttemptCount)

	// Dequeue the job
	dequeuedJob, err := queue.Dequeue(ctx, "worker-1", nil)
	require.NoError(t, err)
	require.NotNil(t, dequeuedJob)
	assert.Equal(t, job.ID, dequeuedJob.ID)
	assert.Equal(t, JobStatusProcessing, dequeuedJob.Status)
	assert.Equal(t, 1, dequeuedJob.AttemptCount)
	assert.Equal(t, "worker-1", dequeuedJob.WorkerID)

	// No more jobs
	noJob, err := queue.Dequeue(ctx, "worker-2", nil)
	require.NoError(t, err)
	assert.Nil(t, noJob)
}

func TestMemoryQueue_Complete(t *testing.T) {
	queue := NewMemoryQueue()
	ctx := context.Background()

	job, err := queue.Enqueue(ctx, "test_queue", "test_job", nil, nil)
	require.NoError(t, err)

	_, err = queue.Dequeue(ctx, "worker-1", nil)
	require.NoError(t, err)

	result := map[string]interface{}{"outcome": "done"}
	err = queue.Complete(ctx, job.ID, result)
	require.NoError(t, err)

	completed, err := queue.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, JobStatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)
	assert.Equal(t, result, completed.Result)
}

func TestMemoryQueue_FailAndRetry(t *testing.T) {
	queue := NewMemoryQueue()
	ctx := context.Background()

	opts := &EnqueueOptions{MaxAttempts: 2}
	job, err := queue.Enqueue(ctx, "test_queue", "test_job", nil, opts)
	require.NoError(t, err)

	// First failure schedules a retry
	_, err = queue.Dequeue(ctx, "worker-1", nil)
	require.NoError(t, err)
	err = queue.Fail(ctx, job.ID, "transient error")
	require.NoError(t, err)

	retried, err := queue.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, JobStatusPending, retried.Status)
	assert.True(t, retried.ScheduledAt.After(time.Now()))
	assert.Equal(t, "transient error", retried.ErrorMessage)

	// Backoff delays the retry, so dequeue finds nothing yet
	noJob, err := queue.Dequeue(ctx, "worker-1", nil)
	require.NoError(t, err)
	assert.Nil(t, noJob)

	// Force the retry to be due, fail again: attempts exhausted
	retried.ScheduledAt = time.Now().Add(-time.Second)
	_, err = queue.Dequeue(ctx, "worker-1", nil)
	require.NoError(t, err)
	err = queue.Fail(ctx, job.ID, "still failing")
	require.NoError(t, err)

	failed, err := queue.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, JobStatusFailed, failed.Status)
}

func TestMemoryQueue_PriorityOrdering(t *testing.T) {
	queue := NewMemoryQueue()
	ctx := context.Background()

	_, err := queue.Enqueue(ctx, "test_queue", "low", nil, &EnqueueOptions{Priority: 0, MaxAttempts: 3})
	require.NoError(t, err)
	high, err := queue.Enqueue(ctx, "test_queue", "high", nil, &EnqueueOptions{Priority: 10, MaxAttempts: 3})
	require.NoError(t, err)

	job, err := queue.Dequeue(ctx, "worker-1", nil)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, high.ID, job.ID)
}

func TestMemoryQueue_QueueNameFilter(t *testing.T) {
	queue := NewMemoryQueue()
	ctx := context.Background()

	_, err := queue.Enqueue(ctx, "emails", "notification_email", nil, nil)
	require.NoError(t, err)

	// Dequeue from a different queue finds nothing
	opts := &DequeueOptions{QueueNames: []string{"exports"}}
	job, err := queue.Dequeue(ctx, "worker-1", opts)
	require.NoError(t, err)
	assert.Nil(t, job)

	// Dequeue from the right queue succeeds
	opts = &DequeueOptions{QueueNames: []string{"emails"}}
	job, err = queue.Dequeue(ctx, "worker-1", opts)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "notification_email", job.JobType)
}

func TestMemoryQueue_ScheduledJobs(t *testing.T) {
	queue := NewMemoryQueue()
	ctx := context.Background()

	opts := &EnqueueOptions{Delay: time.Hour, MaxAttempts: 3}
	_, err := queue.Enqueue(ctx, "test_queue", "delayed", nil, opts)
	require.NoError(t, err)

	// Not due yet
	job, err := queue.Dequeue(ctx, "worker-1", nil)
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestMemoryQueue_ListJobs(t *testing.T) {
	queue := NewMemoryQueue()
	ctx := context.Background()

	_, err := queue.Enqueue(ctx, "emails", "notification_email", nil, nil)
	require.NoError(t, err)
	_, err = queue.Enqueue(ctx, "exports", "statement_export", nil, nil)
	require.NoError(t, err)

	queueName := "emails"
	jobs, err := queue.ListJobs(ctx, JobFilter{QueueName: &queueName})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "notification_email", jobs[0].JobType)

	status := JobStatusPending
	jobs, err = queue.ListJobs(ctx, JobFilter{Status: &status})
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestMemoryQueue_GetQueueStats(t *testing.T) {
	queue := NewMemoryQueue()
	ctx := context.Background()

	// Higher priority guarantees job1 is the one dequeued
	job1, err := queue.Enqueue(ctx, "emails", "notification_email", nil, &EnqueueOptions{Priority: 1, MaxAttempts: 3})
	require.NoError(t, err)
	_, err = queue.Enqueue(ctx, "emails", "notification_email", nil, nil)
	require.NoError(t, err)

	_, err = queue.Dequeue(ctx, "worker-1", nil)
	require.NoError(t, err)
	err = queue.Complete(ctx, job1.ID, nil)
	require.NoError(t, err)

	stats, err := queue.GetQueueStats(ctx, "emails")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PendingJobs)
	assert.Equal(t, 1, stats.CompletedJobs)
}
