package http

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nasserq/raqeeb"
	"github.com/nasserq/raqeeb/internal/queue"
	"github.com/nasserq/raqeeb/internal/ratelimit"
	"github.com/nasserq/raqeeb/internal/storage"
	"github.com/nasserq/raqeeb/internal/validation"
)

// Server represents the HTTP server with all its dependencies.
type Server struct {
	echo   *echo.Echo
	ln     net.Listener
	logger *slog.Logger

	// Configuration
	Addr   string
	Domain string

	// Session configuration
	SessionCookieName string
	SessionDuration   time.Duration
	SessionSecure     bool

	// Domain services
	userService         raqeeb.UserService
	sessionService      raqeeb.SessionService
	reportService       raqeeb.ReportService
	cdrService          raqeeb.CDRService
	invoiceService      raqeeb.InvoiceService
	statementService    raqeeb.StatementService
	notificationService raqeeb.NotificationService
	zoneService         raqeeb.ZoneService
	locationService     raqeeb.LocationService
	formService         raqeeb.FormService
	snapshotService     raqeeb.SnapshotService

	// External services
	fileStorage  storage.FileStorage
	queue        queue.Queue
	loginLimiter *ratelimit.Limiter
}

// Config holds the configuration for creating a new Server.
type Config struct {
	Addr   string
	Domain string
	Logger *slog.Logger

	// Session configuration
	SessionCookieName string
	SessionDuration   time.Duration
	SessionSecure     bool

	// Domain services
	UserService         raqeeb.UserService
	SessionService      raqeeb.SessionService
	ReportService       raqeeb.ReportService
	CDRService          raqeeb.CDRService
	InvoiceService      raqeeb.InvoiceService
	StatementService    raqeeb.StatementService
	NotificationService raqeeb.NotificationService
	ZoneService         raqeeb.ZoneService
	LocationService     raqeeb.LocationService
	FormService         raqeeb.FormService
	SnapshotService     raqeeb.SnapshotService

	// External services
	FileStorage storage.FileStorage
	Queue       queue.Queue
}

// NewServer creates a new HTTP server with the given configuration.
func NewServer(cfg Config) *Server {
	s := &Server{
		Addr:                cfg.Addr,
		Domain:              cfg.Domain,
		logger:              cfg.Logger,
		SessionCookieName:   cfg.SessionCookieName,
		SessionDuration:     cfg.SessionDuration,
		SessionSecure:       cfg.SessionSecure,
		userService:         cfg.UserService,
		sessionService:      cfg.SessionService,
		reportService:       cfg.ReportService,
		cdrService:          cfg.CDRService,
		invoiceService:      cfg.InvoiceService,
		statementService:    cfg.StatementService,
		notificationService: cfg.NotificationService,
		zoneService:         cfg.ZoneService,
		locationService:     cfg.LocationService,
		formService:         cfg.FormService,
		snapshotService:     cfg.SnapshotService,
		fileStorage:         cfg.FileStorage,
		queue:               cfg.Queue,
	}

	if s.SessionCookieName == "" {
		s.SessionCookieName = DefaultSessionCookieName
	}
	if s.SessionDuration == 0 {
		s.SessionDuration = 7 * 24 * time.Hour
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.echo = echo.New()
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Validator = validation.NewValidator()

	s.loginLimiter = ratelimit.NewLimiter(s.logger, ratelimit.DefaultLoginConfig())

	// Register middleware and routes
	s.registerMiddleware()
	s.registerRoutes()

	return s
}

// Echo returns the underlying Echo instance.
// Use sparingly - prefer registering routes through Server methods.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Open starts the HTTP server.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		if err := s.echo.Server.Serve(s.ln); err != nil {
			s.logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	s.logger.Info("server started", slog.String("addr", s.Addr))
	return nil
}

// Close gracefully shuts down the HTTP server.
func (s *Server) Close(ctx context.Context) error {
	s.loginLimiter.Shutdown()
	if err := s.echo.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// URL returns the URL of the server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}
