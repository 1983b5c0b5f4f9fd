package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// jobColumns is the column list every job query returns, in scanJob order.
const jobColumns = `
	id, queue_name, job_type, payload,
	status, priority, max_attempts, attempt_count,
	scheduled_at, created_at, started_at, completed_at,
	result, error_message, worker_id`

// PostgresQueue stores jobs in the jobs table alongside the document
// mirror, claiming work with FOR UPDATE SKIP LOCKED so multiple workers
// never process the same job.
type PostgresQueue struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
	config Config
}

func NewPostgresQueue(pool *pgxpool.Pool, logger *slog.Logger, config Config) *PostgresQueue {
	return &PostgresQueue{pool: pool, logger: logger, config: config}
}

func (q *PostgresQueue) Enqueue(ctx context.Context, queueName, jobType string, payload map[string]interface{}, opts *EnqueueOptions) (*Job, error) {
	if opts == nil {
		opts = DefaultEnqueueOptions()
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	scheduledAt := time.Now()
	if opts.ScheduledAt != nil {
		scheduledAt = *opts.ScheduledAt
	} else if opts.Delay > 0 {
		scheduledAt = scheduledAt.Add(opts.Delay)
	}

	var jobID uuid.UUID
	var createdAt time.Time
	err = q.pool.QueryRow(ctx, `
		INSERT INTO jobs (queue_name, job_type, payload, priority, max_attempts, scheduled_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		queueName, jobType, payloadJSON, opts.Priority, opts.MaxAttempts, scheduledAt,
	).Scan(&jobID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("enqueue job: %w", err)
	}

	q.logger.Debug("job enqueued",
		slog.String("job_id", jobID.String()),
		slog.String("queue", queueName),
		slog.String("type", jobType))

	return &Job{
		ID:          jobID,
		QueueName:   queueName,
		JobType:     jobType,
		Payload:     payload,
		Status:      JobStatusPending,
		Priority:    opts.Priority,
		MaxAttempts: opts.MaxAttempts,
		ScheduledAt: scheduledAt,
		CreatedAt:   createdAt,
	}, nil
}

func (q *PostgresQueue) Dequeue(ctx context.Context, workerID string, opts *DequeueOptions) (*Job, error) {
	if opts == nil {
		opts = DefaultDequeueOptions()
	}

	queueFilter := ""
	if len(opts.QueueNames) > 0 {
		queueFilter = "AND queue_name = ANY($2)"
	}

	query := fmt.Sprintf(`
		UPDATE jobs
		SET status = 'processing',
		    started_at = NOW(),
		    attempt_count = attempt_count + 1,
		    worker_id = $1
		WHERE id = (
			SELECT id FROM jobs
			WHERE status = 'pending' AND scheduled_at <= NOW() %s
			ORDER BY priority DESC, created_at ASC
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		RETURNING %s`, queueFilter, jobColumns)

	var row pgx.Row
	if len(opts.QueueNames) > 0 {
		row = q.pool.QueryRow(ctx, query, workerID, opts.QueueNames)
	} else {
		row = q.pool.QueryRow(ctx, query, workerID)
	}

	job, err := q.scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue job: %w", err)
	}

	q.logger.Debug("job dequeued",
		slog.String("job_id", job.ID.String()),
		slog.String("queue", job.QueueName),
		slog.String("worker", workerID))
	return job, nil
}

func (q *PostgresQueue) Complete(ctx context.Context, jobID uuid.UUID, result map[string]interface{}) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if _, err := q.pool.Exec(ctx, `
		UPDATE jobs
		SET status = 'completed', completed_at = NOW(), result = $1
		WHERE id = $2`, resultJSON, jobID); err != nil {
		return fmt.Errorf("complete job: %w", err)
	}

	q.logger.Debug("job completed", slog.String("job_id", jobID.String()))
	return nil
}

// Fail records the error and reschedules with exponential backoff until
// the attempt budget is spent, then marks the job permanently failed.
func (q *PostgresQueue) Fail(ctx context.Context, jobID uuid.UUID, errMsg string) error {
	var status string
	var attemptCount, maxAttempts int
	err := q.pool.QueryRow(ctx, `
		UPDATE jobs
		SET status = CASE WHEN attempt_count >= max_attempts THEN 'failed' ELSE 'pending' END,
		    error_message = $1,
		    scheduled_at = CASE
		        WHEN attempt_count < max_attempts
		        THEN NOW() + (INTERVAL '1 minute' * POW(2, attempt_count))
		        ELSE scheduled_at
		    END,
		    completed_at = CASE WHEN attempt_count >= max_attempts THEN NOW() ELSE NULL END
		WHERE id = $2
		RETURNING status, attempt_count, max_attempts`,
		errMsg, jobID,
	).Scan(&status, &attemptCount, &maxAttempts)
	if err != nil {
		return fmt.Errorf("fail job: %w", err)
	}

	if status == string(JobStatusFailed) {
		q.logger.Warn("job permanently failed",
			slog.String("job_id", jobID.String()),
			slog.Int("attempts", attemptCount),
			slog.String("error", errMsg))
	} else {
		q.logger.Debug("job failed, will retry",
			slog.String("job_id", jobID.String()),
			slog.Int("attempt", attemptCount),
			slog.Int("max_attempts", maxAttempts))
	}
	return nil
}

func (q *PostgresQueue) Delete(ctx context.Context, jobID uuid.UUID) error {
	if _, err := q.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, jobID); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

func (q *PostgresQueue) GetJob(ctx context.Context, jobID uuid.UUID) (*Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE id = $1`, jobColumns)

	job, err := q.scanJob(q.pool.QueryRow(ctx, query, jobID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("job not found: %s", jobID)
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

func (q *PostgresQueue) ListJobs(ctx context.Context, filter JobFilter) ([]*Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE 1=1`, jobColumns)
	var args []interface{}

	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		query += fmt.Sprintf(clause, len(args))
	}

	if filter.QueueName != nil {
		addArg(" AND queue_name = $%d", *filter.QueueName)
	}
	if filter.JobType != nil {
		addArg(" AND job_type = $%d", *filter.JobType)
	}
	if filter.Status != nil {
		addArg(" AND status = $%d", string(*filter.Status))
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		addArg(" LIMIT $%d", filter.Limit)
	}
	if filter.Offset > 0 {
		addArg(" OFFSET $%d", filter.Offset)
	}

	rows, err := q.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := q.scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// GetQueueStats summarizes the last 24 hours of a queue.
func (q *PostgresQueue) GetQueueStats(ctx context.Context, queueName string) (*QueueStats, error) {
	rows, err := q.pool.Query(ctx, `
		SELECT
			status,
			COUNT(*),
			AVG(EXTRACT(EPOCH FROM (COALESCE(completed_at, NOW()) - started_at)))
		FROM jobs
		WHERE queue_name = $1 AND created_at > NOW() - INTERVAL '24 hours'
		GROUP BY status`, queueName)
	if err != nil {
		return nil, fmt.Errorf("get queue stats: %w", err)
	}
	defer rows.Close()

	stats := &QueueStats{QueueName: queueName}
	var completedAvg float64
	var completed int

	for rows.Next() {
		var status string
		var count int
		var avgDuration pgtype.Float8
		if err := rows.Scan(&status, &count, &avgDuration); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}

		switch JobStatus(status) {
		case JobStatusPending:
			stats.PendingJobs = count
		case JobStatusProcessing:
			stats.ProcessingJobs = count
		case JobStatusCompleted:
			stats.CompletedJobs = count
			if avgDuration.Valid {
				completedAvg = avgDuration.Float64
				completed = count
			}
		case JobStatusFailed:
			stats.FailedJobs = count
		}
	}

	if completed > 0 {
		stats.AvgProcessingTime = time.Duration(completedAvg * float64(time.Second))
	}
	return stats, nil
}

func (q *PostgresQueue) Close() error {
	q.logger.Info("closing postgres queue")
	q.pool.Close()
	return nil
}

func (q *PostgresQueue) scanJob(row pgx.Row) (*Job, error) {
	var job Job
	var payloadJSON, resultJSON []byte
	var startedAt, completedAt pgtype.Timestamptz
	var workerID, errorMessage pgtype.Text

	err := row.Scan(
		&job.ID, &job.QueueName, &job.JobType,
		&payloadJSON, &job.Status, &job.Priority, &job.MaxAttempts,
		&job.AttemptCount, &job.ScheduledAt, &job.CreatedAt,
		&startedAt, &completedAt, &resultJSON, &errorMessage, &workerID,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(payloadJSON, &job.Payload); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	if len(resultJSON) > 0 {
		if err := json.Unmarshal(resultJSON, &job.Result); err != nil {
			return nil, fmt.Errorf("unmarshal result: %w", err)
		}
	}

	if startedAt.Valid {
		job.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		job.CompletedAt = &completedAt.Time
	}
	if workerID.Valid {
		job.WorkerID = workerID.String
	}
	if errorMessage.Valid {
		job.ErrorMessage = errorMessage.String
	}
	return &job, nil
}

var _ Queue = (*PostgresQueue)(nil)
