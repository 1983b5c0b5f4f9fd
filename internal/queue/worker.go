package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// JobHandler processes one job. The returned map is stored as the job
// result; a non-nil error marks the job failed for retry.
type JobHandler func(ctx context.Context, job *Job) (result map[string]interface{}, err error)

// WorkerPool polls the queue and dispatches jobs to registered handlers.
// One pool serves the email and export queues.
type WorkerPool struct {
	queue    Queue
	logger   *slog.Logger
	config   Config
	handlers map[string]JobHandler // keyed by job type
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	mu       sync.RWMutex
}

func NewWorkerPool(queue Queue, logger *slog.Logger, config Config) *WorkerPool {
	return &WorkerPool{
		queue:    queue,
		logger:   logger,
		config:   config,
		handlers: make(map[string]JobHandler),
	}
}

// RegisterHandler binds a job type to its handler. Jobs of an unregistered
// type are failed, not requeued forever.
func (wp *WorkerPool) RegisterHandler(jobType string, handler JobHandler) {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	wp.handlers[jobType] = handler
	wp.logger.Info("registered job handler", slog.String("job_type", jobType))
}

// Start launches the configured number of workers polling the given
// queues. Starting an already started pool is an error.
func (wp *WorkerPool) Start(ctx context.Context, queueNames []string) error {
	wp.mu.Lock()
	if wp.cancel != nil {
		wp.mu.Unlock()
		return fmt.Errorf("worker pool already started")
	}
	workerCtx, cancel := context.WithCancel(ctx)
	wp.cancel = cancel
	wp.mu.Unlock()

	for i := 0; i < wp.config.WorkerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(workerCtx, fmt.Sprintf("worker-%d", i+1), queueNames)
	}

	wp.logger.Info("worker pool started",
		slog.Int("worker_count", wp.config.WorkerCount),
		slog.Any("queues", queueNames))
	return nil
}

// Stop signals workers and waits up to the shutdown timeout for in-flight
// jobs to finish.
func (wp *WorkerPool) Stop() error {
	wp.mu.Lock()
	if wp.cancel == nil {
		wp.mu.Unlock()
		return fmt.Errorf("worker pool not started")
	}
	cancel := wp.cancel
	wp.cancel = nil
	wp.mu.Unlock()

	wp.logger.Info("stopping worker pool")
	cancel()

	done := make(chan struct{})
	go func() {
		wp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		wp.logger.Info("worker pool stopped")
		return nil
	case <-time.After(wp.config.ShutdownTimeout):
		wp.logger.Warn("worker pool shutdown timeout",
			slog.Duration("timeout", wp.config.ShutdownTimeout))
		return fmt.Errorf("shutdown timeout after %v", wp.config.ShutdownTimeout)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, workerID string, queueNames []string) {
	defer wp.wg.Done()

	ticker := time.NewTicker(wp.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := wp.processNextJob(ctx, workerID, queueNames); err != nil {
				wp.logger.Error("failed to process job",
					slog.String("worker_id", workerID),
					slog.String("error", err.Error()))
			}
		}
	}
}

func (wp *WorkerPool) processNextJob(ctx context.Context, workerID string, queueNames []string) error {
	job, err := wp.queue.Dequeue(ctx, workerID, &DequeueOptions{
		QueueNames: queueNames,
		Timeout:    wp.config.PollInterval,
	})
	if err != nil {
		return fmt.Errorf("dequeue: %w", err)
	}
	if job == nil {
		return nil
	}
	return wp.executeJob(ctx, job)
}

func (wp *WorkerPool) executeJob(ctx context.Context, job *Job) error {
	log := wp.logger.With(
		slog.String("job_id", job.ID.String()),
		slog.String("queue", job.QueueName),
		slog.String("type", job.JobType))

	log.Info("processing job", slog.Int("attempt", job.AttemptCount))

	wp.mu.RLock()
	handler, exists := wp.handlers[job.JobType]
	wp.mu.RUnlock()

	if !exists {
		log.Error("no handler for job type")
		return wp.queue.Fail(ctx, job.ID, fmt.Sprintf("no handler registered for job type: %s", job.JobType))
	}

	jobCtx, cancel := context.WithTimeout(ctx, wp.config.JobTimeout)
	defer cancel()

	start := time.Now()
	result, err := handler(jobCtx, job)
	duration := time.Since(start)

	if err != nil {
		log.Error("job failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", duration))
		return wp.queue.Fail(ctx, job.ID, err.Error())
	}

	log.Info("job completed", slog.Duration("duration", duration))
	return wp.queue.Complete(ctx, job.ID, result)
}

// GetHandler returns the handler registered for a job type.
func (wp *WorkerPool) GetHandler(jobType string) (JobHandler, bool) {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	handler, exists := wp.handlers[jobType]
	return handler, exists
}
