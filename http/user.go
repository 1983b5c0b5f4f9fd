package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/nasserq/raqeeb"
)

func (s *Server) handleListUsers(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	offset, limit := pagination(c)
	filter := raqeeb.UserFilter{Offset: offset, Limit: limit}

	if roleStr := c.QueryParam("role"); roleStr != "" {
		role := raqeeb.UserRole(roleStr)
		if !role.Valid() {
			return raqeeb.Invalid("Unknown role %q", roleStr)
		}
		filter.Role = &role
	}

	users, err := s.userService.FindUsers(ctx, filter)
	if err != nil {
		return err
	}

	return RespondList(c, users, len(users), offset, limit)
}

// CreateUserRequest is the request payload for creating a user account.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Role     string `json:"role" validate:"required,oneof=inspector supervisor"`
}

func (s *Server) handleCreateUser(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	var req CreateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user := &raqeeb.User{
		Name:     req.Name,
		Username: req.Username,
		Role:     raqeeb.UserRole(req.Role),
	}

	if err := s.userService.CreateUser(ctx, user, req.Password); err != nil {
		return err
	}

	s.log(c).Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)),
	)

	return RespondCreated(c, user)
}

// UpdateUserRequest is the request payload for updating a user account.
type UpdateUserRequest struct {
	Name *string `json:"name" validate:"omitempty,max=100"`
	Role *string `json:"role" validate:"omitempty,oneof=inspector supervisor"`
}

func (s *Server) handleUpdateUser(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	userID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	upd := raqeeb.UserUpdate{Name: req.Name}
	if req.Role != nil {
		role := raqeeb.UserRole(*req.Role)
		upd.Role = &role
	}

	user, err := s.userService.UpdateUser(ctx, userID, upd)
	if err != nil {
		return err
	}

	return RespondOK(c, user)
}

func (s *Server) handleDeleteUser(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	userID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	actor, err := requireUser(c)
	if err != nil {
		return err
	}
	if actor.ID == userID {
		return raqeeb.Invalid("Cannot delete your own account")
	}

	if err := s.userService.DeleteUser(ctx, userID); err != nil {
		return err
	}

	s.log(c).Info("user deleted", slog.String("user_id", userID.String()))

	return RespondNoContent(c)
}
