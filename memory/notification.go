package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/nasserq/raqeeb"
)

// NotificationService implements raqeeb.NotificationService against the
// in-memory store.
type NotificationService struct {
	store *Store
}

// NewNotificationService returns a new instance of NotificationService.
func NewNotificationService(store *Store) *NotificationService {
	return &NotificationService{store: store}
}

var _ raqeeb.NotificationService = (*NotificationService)(nil)

func (s *NotificationService) FindNotifications(ctx context.Context, userID uuid.UUID, filter raqeeb.NotificationFilter) ([]*raqeeb.Notification, int, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var notifications []*raqeeb.Notification
	for _, n := range s.store.notifications {
		if n.UserID != userID {
			continue
		}
		if filter.UnreadOnly && n.Read {
			continue
		}
		notifications = append(notifications, copyNotification(n))
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	total := len(notifications)
	lo, hi := paginate(total, filter.Offset, filter.Limit)
	return notifications[lo:hi], total, nil
}

func (s *NotificationService) CreateNotification(ctx context.Context, n *raqeeb.Notification) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.store.clock.Now()
	}
	s.store.notifications[n.ID] = copyNotification(n)
	return nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	n, ok := s.store.notifications[id]
	if !ok {
		return raqeeb.NotFound("notification not found")
	}
	n.Read = true
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, n := range s.store.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}
