package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nasserq/raqeeb"
)

// Compile-time interface check
var _ raqeeb.SessionService = (*SessionService)(nil)

// SessionService is a mock implementation of raqeeb.SessionService.
type SessionService struct {
	CreateSessionFn      func(ctx context.Context, userID uuid.UUID, duration time.Duration) (*raqeeb.Session, error)
	FindSessionByTokenFn func(ctx context.Context, token string) (*raqeeb.Session, error)
	DeleteSessionFn      func(ctx context.Context, token string) error
	DeleteUserSessionsFn func(ctx context.Context, userID uuid.UUID) error

	// Counter for generating fallback tokens
	nextID int
}

func (s *SessionService) CreateSession(ctx context.Context, userID uuid.UUID, duration time.Duration) (*raqeeb.Session, error) {
	if s.CreateSessionFn != nil {
		return s.CreateSessionFn(ctx, userID, duration)
	}
	s.nextID++
	now := time.Now()
	return &raqeeb.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     fmt.Sprintf("mock-token-%d", s.nextID),
		ExpiresAt: now.Add(duration),
		CreatedAt: now,
	}, nil
}

func (s *SessionService) FindSessionByToken(ctx context.Context, token string) (*raqeeb.Session, error) {
	if s.FindSessionByTokenFn != nil {
		return s.FindSessionByTokenFn(ctx, token)
	}
	return nil, raqeeb.NotFound("Session not found")
}

func (s *SessionService) DeleteSession(ctx context.Context, token string) error {
	if s.DeleteSessionFn != nil {
		return s.DeleteSessionFn(ctx, token)
	}
	return nil
}

func (s *SessionService) DeleteUserSessions(ctx context.Context, userID uuid.UUID) error {
	if s.DeleteUserSessionsFn != nil {
		return s.DeleteUserSessionsFn(ctx, userID)
	}
	return nil
}
