package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nasserq/raqeeb"
)

const (
	// DefaultSessionCookieName is the name of the session cookie.
	DefaultSessionCookieName = "session_token"

	// DefaultTimeout bounds handler operations.
	DefaultTimeout = 5 * time.Second
)

// registerMiddleware sets up all middleware for the server.
func (s *Server) registerMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestID())
	s.echo.Use(s.requestLoggerMiddleware())
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	s.echo.HTTPErrorHandler = s.httpErrorHandler
}

// requestLoggerMiddleware creates a middleware that logs requests with context.
func (s *Server) requestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)

			logger := s.logger.With(
				slog.String("request_id", requestID),
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
			)
			c.Set("logger", logger)
			c.SetRequest(c.Request().WithContext(
				raqeeb.NewContextWithRequestID(c.Request().Context(), requestID)))

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			logAttrs := []any{
				slog.Int("status", status),
				slog.Duration("duration", duration),
			}

			if err != nil {
				logAttrs = append(logAttrs, slog.String("error", err.Error()))
				logger.Error("request failed", logAttrs...)
			} else if status >= 500 {
				logger.Error("request completed with server error", logAttrs...)
			} else if status >= 400 {
				logger.Warn("request completed with client error", logAttrs...)
			} else {
				logger.Info("request completed", logAttrs...)
			}

			return err
		}
	}
}

// httpErrorHandler handles errors and returns appropriate responses.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Check if it's an Echo HTTP error
	if he, ok := err.(*echo.HTTPError); ok {
		msg := he.Message
		if m, ok := msg.(string); ok {
			_ = c.JSON(he.Code, ErrorResponse{Error: httpErrorCode(he.Code), Message: m})
		} else {
			_ = c.JSON(he.Code, map[string]any{"error": msg})
		}
		return
	}

	_ = HandleError(c, s.logger, err)
}

// SessionMiddleware validates session and attaches user to context.
// If required is true, returns 401 for missing/invalid sessions.
func (s *Server) SessionMiddleware(required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			logger := s.getRequestLogger(c)

			cookie, err := c.Cookie(s.SessionCookieName)
			if err != nil {
				if required {
					logger.Debug("session required but no cookie found")
					return raqeeb.Unauthorized("Authentication required")
				}
				return next(c)
			}

			session, err := s.sessionService.FindSessionByToken(c.Request().Context(), cookie.Value)
			if err != nil {
				if required {
					if raqeeb.IsErrorCode(err, raqeeb.EUNAUTHORIZED) {
						logger.Debug("session expired")
						return err
					}
					if raqeeb.IsErrorCode(err, raqeeb.ENOTFOUND) {
						logger.Debug("session not found")
						return raqeeb.Unauthorized("Authentication required")
					}
					logger.Error("session validation failed", slog.String("error", err.Error()))
					return raqeeb.Internal("Failed to validate session", err)
				}
				return next(c)
			}

			ctx := raqeeb.NewContextWithUser(c.Request().Context(), session.User)
			ctx = raqeeb.NewContextWithSession(ctx, session)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequireAuth is a middleware that requires authentication.
func (s *Server) RequireAuth() echo.MiddlewareFunc {
	return s.SessionMiddleware(true)
}

// RequireSupervisor is a middleware that requires the supervisor role.
// It must run after RequireAuth.
func (s *Server) RequireSupervisor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := raqeeb.UserFromContext(c.Request().Context())
			if user == nil {
				return raqeeb.Unauthorized("Authentication required")
			}
			if !user.IsSupervisor() {
				return raqeeb.Forbidden("Supervisor role required")
			}
			return next(c)
		}
	}
}

// getRequestLogger retrieves the request-scoped logger from context.
func (s *Server) getRequestLogger(c echo.Context) *slog.Logger {
	if logger, ok := c.Get("logger").(*slog.Logger); ok {
		return logger
	}
	return s.logger
}
