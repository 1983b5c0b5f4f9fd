package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nasserq/raqeeb"
	"github.com/nasserq/raqeeb/internal/config"
	"github.com/nasserq/raqeeb/internal/export"
	"github.com/nasserq/raqeeb/internal/queue"
)

const (
	emailQueueName  = "emails"
	exportQueueName = "exports"

	jobTypeNotificationEmail = "notification_email"
	jobTypeStatementExport   = "statement_export"
)

// queueMailer bridges the store's notification fan-out to the job queue.
// Email delivery happens in the worker pool, never on the request path.
type queueMailer struct {
	queue queue.Queue
}

func (m *queueMailer) EnqueueNotificationEmail(ctx context.Context, userID uuid.UUID, subject, body string) error {
	_, err := m.queue.Enqueue(ctx, emailQueueName, jobTypeNotificationEmail, map[string]interface{}{
		"user_id": userID.String(),
		"subject": subject,
		"body":    body,
	}, nil)
	return err
}

// newWorkerPool builds the worker pool and registers the job handlers.
func newWorkerPool(svcs *Services, cfg *config.Config, logger *slog.Logger, queueCfg queue.Config) *queue.WorkerPool {
	pool := queue.NewWorkerPool(svcs.Queue, logger, queueCfg)
	pool.RegisterHandler(jobTypeNotificationEmail, notificationEmailHandler(svcs, cfg))
	pool.RegisterHandler(jobTypeStatementExport, statementExportHandler(svcs, cfg))
	return pool
}

// notificationEmailHandler delivers a notification digest to the user's
// mailbox. The address is the username at the configured mail domain;
// with no domain configured the bare username is passed through, which
// the mock provider just logs.
func notificationEmailHandler(svcs *Services, cfg *config.Config) queue.JobHandler {
	return func(ctx context.Context, job *queue.Job) (map[string]interface{}, error) {
		userIDStr, _ := job.Payload["user_id"].(string)
		subject, _ := job.Payload["subject"].(string)
		body, _ := job.Payload["body"].(string)

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return nil, fmt.Errorf("invalid user_id %q: %w", userIDStr, err)
		}

		user, err := svcs.UserService.FindUserByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("resolving user: %w", err)
		}

		to := user.Username
		if cfg.Email.NotificationDomain != "" {
			to = user.Username + "@" + cfg.Email.NotificationDomain
		}

		if err := svcs.EmailService.SendNotificationEmail(to, subject, body); err != nil {
			return nil, fmt.Errorf("sending notification email: %w", err)
		}

		return map[string]interface{}{"sent": true, "to": to}, nil
	}
}

// statementExportHandler renders an approved statement as an Excel
// workbook and mails it to the billing recipient.
func statementExportHandler(svcs *Services, cfg *config.Config) queue.JobHandler {
	return func(ctx context.Context, job *queue.Job) (map[string]interface{}, error) {
		statementIDStr, _ := job.Payload["statement_id"].(string)
		statementID, err := uuid.Parse(statementIDStr)
		if err != nil {
			return nil, fmt.Errorf("invalid statement_id %q: %w", statementIDStr, err)
		}

		stmt, err := svcs.StatementService.FindStatementByID(ctx, statementID)
		if err != nil {
			return nil, fmt.Errorf("resolving statement: %w", err)
		}
		if stmt.Status != raqeeb.StatementStatusApproved {
			return nil, fmt.Errorf("statement %s is not approved", stmt.ReferenceNumber)
		}

		if cfg.Email.StatementRecipient == "" {
			return map[string]interface{}{"skipped": true, "reason": "no recipient configured"}, nil
		}

		data, err := export.StatementWorkbook(stmt)
		if err != nil {
			return nil, fmt.Errorf("rendering workbook: %w", err)
		}

		filename := export.StatementFilename(stmt)
		if err := svcs.EmailService.SendStatementEmail(cfg.Email.StatementRecipient, stmt.ReferenceNumber, filename, data); err != nil {
			return nil, fmt.Errorf("sending statement email: %w", err)
		}

		return map[string]interface{}{
			"sent":      true,
			"to":        cfg.Email.StatementRecipient,
			"reference": stmt.ReferenceNumber,
		}, nil
	}
}
