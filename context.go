package raqeeb

import "context"

type contextKey int

const (
	userContextKey contextKey = iota + 1
	sessionContextKey
	requestIDContextKey
)

// NewContextWithUser returns a context carrying the authenticated user.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user, or nil when the request
// is anonymous.
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey).(*User)
	return user
}

// NewContextWithSession returns a context carrying the current session.
func NewContextWithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// SessionFromContext returns the current session, or nil.
func SessionFromContext(ctx context.Context) *Session {
	session, _ := ctx.Value(sessionContextKey).(*Session)
	return session
}

// NewContextWithRequestID returns a context carrying the request id used
// to correlate log lines.
func NewContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// RequestIDFromContext returns the request id, or "".
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDContextKey).(string)
	return requestID
}

// IsSupervisor reports whether the context user holds the supervisor role.
// Inspectors see only their own reports and CDRs; supervisors see all.
func IsSupervisor(ctx context.Context) bool {
	user := UserFromContext(ctx)
	return user != nil && user.Role == RoleSupervisor
}
