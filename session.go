package raqeeb

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is an active login, identified by the opaque token stored in the
// session cookie.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`

	// User is attached by FindSessionByToken.
	User *User `json:"user,omitempty"`
}

// IsExpired reports whether the session is past its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// SessionService manages login sessions.
type SessionService interface {
	// CreateSession starts a session for the user, generating its token.
	CreateSession(ctx context.Context, userID uuid.UUID, duration time.Duration) (*Session, error)

	// FindSessionByToken resolves a token to its session and user.
	// Returns ENOTFOUND for unknown tokens and EUNAUTHORIZED for expired
	// sessions.
	FindSessionByToken(ctx context.Context, token string) (*Session, error)

	// DeleteSession ends a session. Logout.
	DeleteSession(ctx context.Context, token string) error

	// DeleteUserSessions ends every session belonging to the user.
	DeleteUserSessions(ctx context.Context, userID uuid.UUID) error
}
