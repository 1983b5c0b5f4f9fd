package email

import (
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/keighl/postmark"
)

// EmailService defines the interface for sending emails
type EmailService interface {
	SendNotificationEmail(to, subject, body string) error
	SendStatementEmail(to, reference string, attachmentName string, attachment []byte) error
}

// EmailConfig holds configuration for email services
type EmailConfig struct {
	Provider        string // "mock" or "postmark"
	PostmarkToken   string
	PostmarkAccount string
	FromAddress     string
	FromName        string
	AppBaseURL      string
}

// NewEmailService creates an email service based on the provider configuration
func NewEmailService(logger *slog.Logger, config EmailConfig) EmailService {
	switch config.Provider {
	case "postmark":
		return newPostmarkEmailService(logger, config)
	default:
		return newMockEmailService(logger, config)
	}
}

// mockEmailService is a mock implementation that logs instead of sending emails
type mockEmailService struct {
	logger *slog.Logger
	config EmailConfig
}

// newMockEmailService creates a new mock email service
func newMockEmailService(logger *slog.Logger, config EmailConfig) *mockEmailService {
	return &mockEmailService{
		logger: logger,
		config: config,
	}
}

// SendNotificationEmail logs the notification email instead of sending it
func (s *mockEmailService) SendNotificationEmail(to, subject, body string) error {
	s.logger.Info("📧 MOCK EMAIL: Notification",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}

// SendStatementEmail logs the statement email instead of sending it
func (s *mockEmailService) SendStatementEmail(to, reference string, attachmentName string, attachment []byte) error {
	s.logger.Info("📧 MOCK EMAIL: Penalty statement",
		slog.String("to", to),
		slog.String("reference", reference),
		slog.String("attachment", attachmentName),
		slog.Int("attachment_bytes", len(attachment)),
	)
	return nil
}

// postmarkEmailService sends emails via Postmark
type postmarkEmailService struct {
	client *postmark.Client
	logger *slog.Logger
	config EmailConfig
}

// newPostmarkEmailService creates a new Postmark email service
func newPostmarkEmailService(logger *slog.Logger, config EmailConfig) *postmarkEmailService {
	client := postmark.NewClient(config.PostmarkToken, config.PostmarkAccount)
	return &postmarkEmailService{
		client: client,
		logger: logger,
		config: config,
	}
}

// SendNotificationEmail sends an in-app notification digest via Postmark
func (s *postmarkEmailService) SendNotificationEmail(to, subject, body string) error {
	email := postmark.Email{
		From:     fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress),
		To:       to,
		Subject:  subject,
		TextBody: fmt.Sprintf("%s\n\nOpen the dashboard for details: %s", body, s.config.AppBaseURL),
		HtmlBody: fmt.Sprintf(`
			<h2>%s</h2>
			<p>%s</p>
			<p><a href="%s">Open dashboard</a></p>
		`, subject, body, s.config.AppBaseURL),
		Tag:        "notification",
		TrackOpens: true,
	}

	_, err := s.client.SendEmail(email)
	if err != nil {
		s.logger.Error("failed to send notification email via Postmark",
			slog.String("to", to),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to send notification email: %w", err)
	}

	s.logger.Info("notification email sent via Postmark",
		slog.String("to", to),
	)
	return nil
}

// SendStatementEmail sends a monthly penalty statement with the workbook attached
func (s *postmarkEmailService) SendStatementEmail(to, reference string, attachmentName string, attachment []byte) error {
	email := postmark.Email{
		From:     fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress),
		To:       to,
		Subject:  fmt.Sprintf("Penalty statement %s", reference),
		TextBody: fmt.Sprintf("The penalty statement %s is attached.", reference),
		HtmlBody: fmt.Sprintf(`
			<h2>Penalty statement %s</h2>
			<p>The monthly penalty statement is attached to this email.</p>
			<p><a href="%s">Open dashboard</a></p>
		`, reference, s.config.AppBaseURL),
		Tag:        "penalty-statement",
		TrackOpens: true,
		Attachments: []postmark.Attachment{
			{
				Name:        attachmentName,
				Content:     base64.StdEncoding.EncodeToString(attachment),
				ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			},
		},
	}

	_, err := s.client.SendEmail(email)
	if err != nil {
		s.logger.Error("failed to send statement email via Postmark",
			slog.String("to", to),
			slog.String("reference", reference),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to send statement email: %w", err)
	}

	s.logger.Info("statement email sent via Postmark",
		slog.String("to", to),
		slog.String("reference", reference),
	)
	return nil
}
