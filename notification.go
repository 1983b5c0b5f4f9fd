package raqeeb

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app message delivered to one user, typically
// raised by a lifecycle event on a report, CDR, or statement.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	EntityID  *uuid.UUID       `json:"entityId,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NotificationType classifies the event a notification reports.
type NotificationType string

const (
	NotificationReportSubmitted   NotificationType = "report_submitted"
	NotificationReportReviewed    NotificationType = "report_reviewed"
	NotificationReportNeedsAction NotificationType = "report_needs_action"
	NotificationCDRSubmitted      NotificationType = "cdr_submitted"
	NotificationCDRApproved       NotificationType = "cdr_approved"
	NotificationInvoiceDerived    NotificationType = "invoice_derived"
	NotificationStatementApproved NotificationType = "statement_approved"
)

// NotificationService defines operations for managing notifications.
type NotificationService interface {
	// FindNotifications retrieves a user's notifications, newest first.
	FindNotifications(ctx context.Context, userID uuid.UUID, filter NotificationFilter) ([]*Notification, int, error)

	// CreateNotification stores a notification.
	CreateNotification(ctx context.Context, n *Notification) error

	// MarkRead marks a single notification as read.
	// Returns ENOTFOUND if the notification does not exist.
	MarkRead(ctx context.Context, id uuid.UUID) error

	// MarkAllRead marks all of a user's notifications as read.
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

// NotificationFilter defines criteria for filtering notifications.
type NotificationFilter struct {
	UnreadOnly bool

	Offset int
	Limit  int
}
