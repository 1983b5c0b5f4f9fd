package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nasserq/raqeeb"
)

// LoginRequest is the request payload for user login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,max=128"`
}

// LoginResponse is the response payload for user login.
type LoginResponse struct {
	User      *raqeeb.User `json:"user"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

func (s *Server) handleLogin(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	// Verify password
	user, err := s.userService.VerifyPassword(ctx, req.Username, req.Password)
	if err != nil {
		return err
	}

	// Create session
	session, err := s.sessionService.CreateSession(ctx, user.ID, s.SessionDuration)
	if err != nil {
		s.log(c).Error("failed to create session", slog.String("error", err.Error()))
		return raqeeb.Internal("Login failed", err)
	}

	// Set session cookie
	c.SetCookie(&http.Cookie{
		Name:     s.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.SessionSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
	})

	s.log(c).Info("user logged in", slog.String("user_id", user.ID.String()))

	return RespondOK(c, LoginResponse{
		User:      user,
		ExpiresAt: session.ExpiresAt,
	})
}

func (s *Server) handleLogout(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	session := raqeeb.SessionFromContext(c.Request().Context())
	if session != nil {
		if err := s.sessionService.DeleteSession(ctx, session.Token); err != nil {
			s.log(c).Error("failed to delete session", slog.String("error", err.Error()))
		}
	}

	// Expire the cookie
	c.SetCookie(&http.Cookie{
		Name:     s.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.SessionSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	return RespondSuccess(c, "Logged out")
}

func (s *Server) handleMe(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	return RespondOK(c, user)
}

// ChangePasswordRequest is the request payload for a password change.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required,max=128"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=128"`
}

func (s *Server) handleChangePassword(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req ChangePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := s.userService.ChangePassword(ctx, userID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	s.log(c).Info("password changed", slog.String("user_id", userID.String()))

	return RespondSuccess(c, "Password changed")
}
