package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nasserq/raqeeb/memory"
)

// Mirror persists memory store dumps as one JSONB document per
// collection and restores them on startup.
type Mirror struct {
	db       *DB
	logger   *slog.Logger
	interval time.Duration
}

// NewMirror creates a mirror flushing at the given interval.
func NewMirror(db *DB, logger *slog.Logger, interval time.Duration) *Mirror {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Mirror{db: db, logger: logger, interval: interval}
}

// collectionDocs splits a dump into named JSON documents.
func collectionDocs(d *memory.Dump) map[string]interface{} {
	return map[string]interface{}{
		"users":         d.Users,
		"passwords":     d.Passwords,
		"sessions":      d.Sessions,
		"reports":       d.Reports,
		"cdrs":          d.CDRs,
		"invoices":      d.Invoices,
		"statements":    d.Statements,
		"notifications": d.Notifications,
		"report_seq":    d.ReportSeq,
		"cdr_seq":       d.CDRSeq,
	}
}

// Save writes the dump to the collections table in one transaction.
func (m *Mirror) Save(ctx context.Context, d *memory.Dump) error {
	tx, err := m.db.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin mirror transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO collections (name, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`

	for name, value := range collectionDocs(d) {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal collection %s: %w", name, err)
		}
		if _, err := tx.Exec(ctx, query, name, data); err != nil {
			return fmt.Errorf("failed to upsert collection %s: %w", name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit mirror transaction: %w", err)
	}
	return nil
}

// Load reads the persisted dump. Returns (nil, nil) when the database
// holds no state yet.
func (m *Mirror) Load(ctx context.Context) (*memory.Dump, error) {
	rows, err := m.db.pool.Query(ctx, `SELECT name, data FROM collections`)
	if err != nil {
		return nil, fmt.Errorf("failed to read collections: %w", err)
	}
	defer rows.Close()

	docs := make(map[string][]byte)
	for rows.Next() {
		var name string
		var data []byte
		if err := rows.Scan(&name, &data); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		docs[name] = data
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read collections: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	d := &memory.Dump{}
	targets := map[string]interface{}{
		"users":         &d.Users,
		"passwords":     &d.Passwords,
		"sessions":      &d.Sessions,
		"reports":       &d.Reports,
		"cdrs":          &d.CDRs,
		"invoices":      &d.Invoices,
		"statements":    &d.Statements,
		"notifications": &d.Notifications,
		"report_seq":    &d.ReportSeq,
		"cdr_seq":       &d.CDRSeq,
	}
	for name, target := range targets {
		data, ok := docs[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(data, target); err != nil {
			return nil, fmt.Errorf("failed to unmarshal collection %s: %w", name, err)
		}
	}
	return d, nil
}

// Run flushes the store to the database on a fixed interval until the
// context is cancelled, then performs a final flush.
func (m *Mirror) Run(ctx context.Context, store *memory.Store) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Final flush with a fresh context so shutdown still persists
			flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := m.Save(flushCtx, store.Dump()); err != nil {
				m.logger.Error("final mirror flush failed", slog.Any("error", err))
			} else {
				m.logger.Info("final mirror flush complete")
			}
			cancel()
			return

		case <-ticker.C:
			if err := m.Save(ctx, store.Dump()); err != nil {
				m.logger.Error("mirror flush failed", slog.Any("error", err))
			}
		}
	}
}
