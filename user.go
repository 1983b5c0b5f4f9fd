package raqeeb

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User represents an account in the system: either a field inspector who
// files reports and CDRs, or a supervisor who reviews them.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserRole determines which views and operations an account may use.
type UserRole string

const (
	RoleInspector  UserRole = "inspector"
	RoleSupervisor UserRole = "supervisor"
)

// Valid returns true for a known role value.
func (r UserRole) Valid() bool {
	return r == RoleInspector || r == RoleSupervisor
}

// IsSupervisor returns true if the user holds the supervisor role.
func (u *User) IsSupervisor() bool {
	return u.Role == RoleSupervisor
}

// FirstName returns the leading name component, used in compact displays.
func (u *User) FirstName() string {
	for i, r := range u.Name {
		if r == ' ' {
			return u.Name[:i]
		}
	}
	return u.Name
}

// UserService defines operations for managing user accounts.
type UserService interface {
	// FindUserByID retrieves a user by ID.
	// Returns ENOTFOUND if the user does not exist.
	FindUserByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindUserByUsername retrieves a user by username (case-insensitive).
	// Returns ENOTFOUND if the user does not exist.
	FindUserByUsername(ctx context.Context, username string) (*User, error)

	// FindUsers retrieves users matching the filter criteria.
	FindUsers(ctx context.Context, filter UserFilter) ([]*User, error)

	// CreateUser creates a new user with the given password.
	// Returns ECONFLICT if the username is already taken.
	CreateUser(ctx context.Context, user *User, password string) error

	// UpdateUser updates an existing user.
	// Returns ENOTFOUND if the user does not exist.
	UpdateUser(ctx context.Context, id uuid.UUID, upd UserUpdate) (*User, error)

	// DeleteUser removes a user account.
	// Returns ENOTFOUND if the user does not exist.
	DeleteUser(ctx context.Context, id uuid.UUID) error

	// VerifyPassword checks credentials and returns the user if valid.
	// Returns EUNAUTHORIZED if the credentials are invalid.
	VerifyPassword(ctx context.Context, username, password string) (*User, error)

	// ChangePassword replaces a user's password after verifying the old one.
	// Returns EUNAUTHORIZED if the old password does not match.
	ChangePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error
}

// UserFilter defines criteria for filtering users.
type UserFilter struct {
	Role *UserRole

	// Pagination
	Offset int
	Limit  int
}

// UserUpdate defines fields that can be updated on a user.
// Pointer fields: nil = don't update, non-nil = update to this value.
type UserUpdate struct {
	Name *string
	Role *UserRole
}
