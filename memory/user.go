package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/nasserq/raqeeb"
	"github.com/nasserq/raqeeb/internal/auth"
)

// UserService implements raqeeb.UserService against the in-memory store.
type UserService struct {
	store *Store
}

// NewUserService returns a new instance of UserService.
func NewUserService(store *Store) *UserService {
	return &UserService{store: store}
}

var _ raqeeb.UserService = (*UserService)(nil)

func (s *UserService) FindUserByID(ctx context.Context, id uuid.UUID) (*raqeeb.User, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	u, ok := s.store.users[id]
	if !ok {
		return nil, raqeeb.NotFound("user not found")
	}
	return copyUser(u), nil
}

func (s *UserService) FindUserByUsername(ctx context.Context, username string) (*raqeeb.User, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	id, ok := s.store.usernames[strings.ToLower(username)]
	if !ok {
		return nil, raqeeb.NotFound("user not found")
	}
	return copyUser(s.store.users[id]), nil
}

func (s *UserService) FindUsers(ctx context.Context, filter raqeeb.UserFilter) ([]*raqeeb.User, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var users []*raqeeb.User
	for _, u := range s.store.users {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		users = append(users, copyUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })

	lo, hi := paginate(len(users), filter.Offset, filter.Limit)
	return users[lo:hi], nil
}

func (s *UserService) CreateUser(ctx context.Context, user *raqeeb.User, password string) error {
	if user.Name == "" || user.Username == "" {
		return raqeeb.Invalid("name and username are required")
	}
	if !user.Role.Valid() {
		return raqeeb.Invalid("invalid role %q", user.Role)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return raqeeb.Invalid("password is required")
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	key := strings.ToLower(user.Username)
	if _, exists := s.store.usernames[key]; exists {
		return raqeeb.Conflict("username %q is already taken", user.Username)
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := s.store.clock.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	s.store.users[user.ID] = copyUser(user)
	s.store.usernames[key] = user.ID
	s.store.passwords[user.ID] = hash
	return nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, upd raqeeb.UserUpdate) (*raqeeb.User, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	u, ok := s.store.users[id]
	if !ok {
		return nil, raqeeb.NotFound("user not found")
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Role != nil {
		if !upd.Role.Valid() {
			return nil, raqeeb.Invalid("invalid role %q", *upd.Role)
		}
		u.Role = *upd.Role
	}
	u.UpdatedAt = s.store.clock.Now()
	return copyUser(u), nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	u, ok := s.store.users[id]
	if !ok {
		return raqeeb.NotFound("user not found")
	}
	delete(s.store.usernames, strings.ToLower(u.Username))
	delete(s.store.passwords, id)
	delete(s.store.users, id)
	for token, sess := range s.store.sessions {
		if sess.UserID == id {
			delete(s.store.sessions, token)
		}
	}
	return nil
}

func (s *UserService) VerifyPassword(ctx context.Context, username, password string) (*raqeeb.User, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	id, ok := s.store.usernames[strings.ToLower(username)]
	if !ok {
		return nil, raqeeb.Unauthorized("invalid credentials")
	}
	if err := auth.VerifyPassword(password, s.store.passwords[id]); err != nil {
		return nil, raqeeb.Unauthorized("invalid credentials")
	}
	return copyUser(s.store.users[id]), nil
}

func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error {
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return raqeeb.Invalid("new password is required")
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	current, ok := s.store.passwords[id]
	if !ok {
		return raqeeb.NotFound("user not found")
	}
	if err := auth.VerifyPassword(oldPassword, current); err != nil {
		return raqeeb.Unauthorized("current password is incorrect")
	}
	s.store.passwords[id] = hash
	return nil
}
