package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasserq/raqeeb"
	"github.com/nasserq/raqeeb/internal/queue"
	"github.com/nasserq/raqeeb/mock"
)

// testServer bundles a Server with its mock dependencies so tests can
// program behavior per case.
type testServer struct {
	*Server

	Users         *mock.UserService
	Sessions      *mock.SessionService
	Reports       *mock.ReportService
	CDRs          *mock.CDRService
	Invoices      *mock.InvoiceService
	Statements    *mock.StatementService
	Notifications *mock.NotificationService
	Zones         *mock.ZoneService
	Locations     *mock.LocationService
	Forms         *mock.FormService
	Snapshots     *mock.SnapshotService
	Queue         *queue.MemoryQueue
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{
		Users:         &mock.UserService{},
		Sessions:      &mock.SessionService{},
		Reports:       &mock.ReportService{},
		CDRs:          &mock.CDRService{},
		Invoices:      &mock.InvoiceService{},
		Statements:    &mock.StatementService{},
		Notifications: &mock.NotificationService{},
		Zones:         &mock.ZoneService{},
		Locations:     &mock.LocationService{},
		Forms:         &mock.FormService{},
		Snapshots:     &mock.SnapshotService{},
		Queue:         queue.NewMemoryQueue(),
	}

	ts.Server = NewServer(Config{
		Addr:                "127.0.0.1:0",
		Logger:              slog.New(slog.NewTextHandler(io.Discard, nil)),
		UserService:         ts.Users,
		SessionService:      ts.Sessions,
		ReportService:       ts.Reports,
		CDRService:          ts.CDRs,
		InvoiceService:      ts.Invoices,
		StatementService:    ts.Statements,
		NotificationService: ts.Notifications,
		ZoneService:         ts.Zones,
		LocationService:     ts.Locations,
		FormService:         ts.Forms,
		SnapshotService:     ts.Snapshots,
		Queue:               ts.Queue,
	})
	t.Cleanup(ts.loginLimiter.Shutdown)

	return ts
}

// loginAs programs the session mock so requests carrying the test cookie
// resolve to the given user.
func (ts *testServer) loginAs(user *raqeeb.User) {
	session := &raqeeb.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     "test-token",
		ExpiresAt: time.Now().Add(time.Hour),
		User:      user,
	}
	ts.Sessions.FindSessionByTokenFn = func(ctx context.Context, token string) (*raqeeb.Session, error) {
		if token != session.Token {
			return nil, raqeeb.NotFound("Session not found")
		}
		return session, nil
	}
}

func (ts *testServer) request(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.AddCookie(&http.Cookie{Name: DefaultSessionCookieName, Value: "test-token"})
	}

	rec := httptest.NewRecorder()
	ts.Echo().ServeHTTP(rec, req)
	return rec
}

func testInspector() *raqeeb.User {
	return &raqeeb.User{
		ID:       uuid.New(),
		Name:     "Amal Hassan",
		Username: "ahassan",
		Role:     raqeeb.RoleInspector,
	}
}

func testSupervisor() *raqeeb.User {
	return &raqeeb.User{
		ID:       uuid.New(),
		Name:     "Khalid Omar",
		Username: "komar",
		Role:     raqeeb.RoleSupervisor,
	}
}

func TestServer_HealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ts := newTestServer(t)
		user := testInspector()

		ts.Users.VerifyPasswordFn = func(ctx context.Context, username, password string) (*raqeeb.User, error) {
			require.Equal(t, "ahassan", username)
			require.Equal(t, "password123", password)
			return user, nil
		}
		ts.Sessions.CreateSessionFn = func(ctx context.Context, userID uuid.UUID, duration time.Duration) (*raqeeb.Session, error) {
			require.Equal(t, user.ID, userID)
			return &raqeeb.Session{
				ID:        uuid.New(),
				UserID:    userID,
				Token:     "fresh-token",
				ExpiresAt: time.Now().Add(duration),
				User:      user,
			}, nil
		}

		rec := ts.request(t, http.MethodPost, "/api/auth/login", map[string]string{
			"username": "ahassan",
			"password": "password123",
		}, false)

		require.Equal(t, http.StatusOK, rec.Code)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, DefaultSessionCookieName, cookies[0].Name)
		assert.Equal(t, "fresh-token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, user.ID, resp.User.ID)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		ts := newTestServer(t)
		ts.Users.VerifyPasswordFn = func(ctx context.Context, username, password string) (*raqeeb.User, error) {
			return nil, raqeeb.Unauthorized("Invalid username or password")
		}

		rec := ts.request(t, http.MethodPost, "/api/auth/login", map[string]string{
			"username": "ahassan",
			"password": "wrong",
		}, false)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, raqeeb.EUNAUTHORIZED, resp.Error)
	})

	t.Run("MissingFields", func(t *testing.T) {
		ts := newTestServer(t)

		rec := ts.request(t, http.MethodPost, "/api/auth/login", map[string]string{
			"username": "ahassan",
		}, false)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_RequireAuth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/auth/me", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_Me(t *testing.T) {
	ts := newTestServer(t)
	user := testInspector()
	ts.loginAs(user)

	rec := ts.request(t, http.MethodGet, "/api/auth/me", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var got raqeeb.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "ahassan", got.Username)
}

func TestServer_Logout(t *testing.T) {
	ts := newTestServer(t)
	user := testInspector()
	ts.loginAs(user)

	var deleted string
	ts.Sessions.DeleteSessionFn = func(ctx context.Context, token string) error {
		deleted = token
		return nil
	}

	rec := ts.request(t, http.MethodPost, "/api/auth/logout", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test-token", deleted)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestServer_SupervisorGate(t *testing.T) {
	ts := newTestServer(t)
	ts.loginAs(testInspector())

	rec := ts.request(t, http.MethodGet, "/api/invoices", nil, true)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, raqeeb.EFORBIDDEN, resp.Error)
}

func TestServer_UnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/nope", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleError_InternalLogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req = req.WithContext(raqeeb.NewContextWithRequestID(req.Context(), "req-1234"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := HandleError(c, logger, raqeeb.Internal("query reports", errors.New("connection refused")))
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// Internal details stay out of the response but land in the log,
	// correlated by request id.
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, raqeeb.EINTERNAL, resp.Error)
	assert.Equal(t, "An internal error occurred.", resp.Message)
	assert.Contains(t, buf.String(), "request_id=req-1234")
	assert.Contains(t, buf.String(), "connection refused")
}
