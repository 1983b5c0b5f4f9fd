package mock

import (
	"context"

	"github.com/google/uuid"

	"github.com/nasserq/raqeeb"
)

// Compile-time interface check
var _ raqeeb.NotificationService = (*NotificationService)(nil)

// NotificationService is a mock implementation of raqeeb.NotificationService.
type NotificationService struct {
	FindNotificationsFn  func(ctx context.Context, userID uuid.UUID, filter raqeeb.NotificationFilter) ([]*raqeeb.Notification, int, error)
	CreateNotificationFn func(ctx context.Context, n *raqeeb.Notification) error
	MarkReadFn           func(ctx context.Context, id uuid.UUID) error
	MarkAllReadFn        func(ctx context.Context, userID uuid.UUID) error
}

func (s *NotificationService) FindNotifications(ctx context.Context, userID uuid.UUID, filter raqeeb.NotificationFilter) ([]*raqeeb.Notification, int, error) {
	if s.FindNotificationsFn != nil {
		return s.FindNotificationsFn(ctx, userID, filter)
	}
	return []*raqeeb.Notification{}, 0, nil
}

func (s *NotificationService) CreateNotification(ctx context.Context, n *raqeeb.Notification) error {
	if s.CreateNotificationFn != nil {
		return s.CreateNotificationFn(ctx, n)
	}
	return nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	if s.MarkReadFn != nil {
		return s.MarkReadFn(ctx, id)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if s.MarkAllReadFn != nil {
		return s.MarkAllReadFn(ctx, userID)
	}
	return nil
}
