// Package mock provides function-field mocks for every domain service,
// used by the HTTP handler tests.
package mock

import (
	"context"

	"github.com/google/uuid"

	"github.com/nasserq/raqeeb"
)

// Compile-time interface check
var _ raqeeb.UserService = (*UserService)(nil)

// UserService is a mock implementation of raqeeb.UserService.
type UserService struct {
	FindUserByIDFn       func(ctx context.Context, id uuid.UUID) (*raqeeb.User, error)
	FindUserByUsernameFn func(ctx context.Context, username string) (*raqeeb.User, error)
	FindUsersFn          func(ctx context.Context, filter raqeeb.UserFilter) ([]*raqeeb.User, error)
	CreateUserFn         func(ctx context.Context, user *raqeeb.User, password string) error
	UpdateUserFn         func(ctx context.Context, id uuid.UUID, upd raqeeb.UserUpdate) (*raqeeb.User, error)
	DeleteUserFn         func(ctx context.Context, id uuid.UUID) error
	VerifyPasswordFn     func(ctx context.Context, username, password string) (*raqeeb.User, error)
	ChangePasswordFn     func(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error
}

func (s *UserService) FindUserByID(ctx context.Context, id uuid.UUID) (*raqeeb.User, error) {
	if s.FindUserByIDFn != nil {
		return s.FindUserByIDFn(ctx, id)
	}
	return nil, raqeeb.NotFound("User not found")
}

func (s *UserService) FindUserByUsername(ctx context.Context, username string) (*raqeeb.User, error) {
	if s.FindUserByUsernameFn != nil {
		return s.FindUserByUsernameFn(ctx, username)
	}
	return nil, raqeeb.NotFound("User not found")
}

func (s *UserService) FindUsers(ctx context.Context, filter raqeeb.UserFilter) ([]*raqeeb.User, error) {
	if s.FindUsersFn != nil {
		return s.FindUsersFn(ctx, filter)
	}
	return []*raqeeb.User{}, nil
}

func (s *UserService) CreateUser(ctx context.Context, user *raqeeb.User, password string) error {
	if s.CreateUserFn != nil {
		return s.CreateUserFn(ctx, user, password)
	}
	return nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, upd raqeeb.UserUpdate) (*raqeeb.User, error) {
	if s.UpdateUserFn != nil {
		return s.UpdateUserFn(ctx, id, upd)
	}
	return nil, raqeeb.NotFound("User not found")
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if s.DeleteUserFn != nil {
		return s.DeleteUserFn(ctx, id)
	}
	return nil
}

func (s *UserService) VerifyPassword(ctx context.Context, username, password string) (*raqeeb.User, error) {
	if s.VerifyPasswordFn != nil {
		return s.VerifyPasswordFn(ctx, username, password)
	}
	return nil, raqeeb.Unauthorized("Invalid credentials")
}

func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error {
	if s.ChangePasswordFn != nil {
		return s.ChangePasswordFn(ctx, id, oldPassword, newPassword)
	}
	return nil
}
