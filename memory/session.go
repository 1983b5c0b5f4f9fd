package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nasserq/raqeeb"
	"github.com/nasserq/raqeeb/internal/auth"
)

// SessionService implements raqeeb.SessionService against the in-memory
// store. Tokens are random and opaque; expiry is checked on lookup.
type SessionService struct {
	store *Store
}

// NewSessionService returns a new instance of SessionService.
func NewSessionService(store *Store) *SessionService {
	return &SessionService{store: store}
}

var _ raqeeb.SessionService = (*SessionService)(nil)

func (s *SessionService) CreateSession(ctx context.Context, userID uuid.UUID, duration time.Duration) (*raqeeb.Session, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return nil, raqeeb.Internal("Failed to generate session token", err)
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	user, ok := s.store.users[userID]
	if !ok {
		return nil, raqeeb.NotFound("user not found")
	}

	now := s.store.clock.Now()
	sess := &raqeeb.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: now.Add(duration),
		CreatedAt: now,
	}
	s.store.sessions[token] = sess

	out := copySession(sess)
	out.User = copyUser(user)
	return out, nil
}

func (s *SessionService) FindSessionByToken(ctx context.Context, token string) (*raqeeb.Session, error) {
	s.store.mu.RLock()
	sess, ok := s.store.sessions[token]
	if !ok {
		s.store.mu.RUnlock()
		return nil, raqeeb.NotFound("session not found")
	}
	expired := s.store.clock.Now().After(sess.ExpiresAt)
	out := copySession(sess)
	out.User = copyUser(s.store.users[sess.UserID])
	s.store.mu.RUnlock()

	if expired {
		s.store.mu.Lock()
		delete(s.store.sessions, token)
		s.store.mu.Unlock()
		return nil, raqeeb.Unauthorized("session expired")
	}
	return out, nil
}

func (s *SessionService) DeleteSession(ctx context.Context, token string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	delete(s.store.sessions, token)
	return nil
}

func (s *SessionService) DeleteUserSessions(ctx context.Context, userID uuid.UUID) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for token, sess := range s.store.sessions {
		if sess.UserID == userID {
			delete(s.store.sessions, token)
		}
	}
	return nil
}
