package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewQueue builds the configured provider.
func NewQueue(ctx context.Context, logger *slog.Logger, cfg Config) (Queue, error) {
	switch cfg.Provider {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.PostgresConnectionString)
		if err != nil {
			return nil, fmt.Errorf("create postgres pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}

		logger.Info("initialized postgres queue",
			slog.Int("worker_count", cfg.WorkerCount),
			slog.Duration("poll_interval", cfg.PollInterval))
		return NewPostgresQueue(pool, logger, cfg), nil

	case "memory":
		logger.Info("initialized memory queue")
		return NewMemoryQueue(), nil

	default:
		return nil, fmt.Errorf("unknown queue provider: %s", cfg.Provider)
	}
}
