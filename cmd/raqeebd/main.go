package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	raqeebhttp "github.com/nasserq/raqeeb/http"
	"github.com/nasserq/raqeeb/internal/config"
)

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main entry point for the application. It wires the store,
// persistence mirror, job queue, and HTTP server, then blocks until a
// shutdown signal arrives.
func run(ctx context.Context) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Configure logger
	logger := slog.New(cfg.GetLogger())
	slog.SetDefault(logger)
	logger.Debug("application configuration",
		slog.String("environment", cfg.App.Env),
		slog.String("host", cfg.App.Host),
		slog.Int("port", cfg.App.Port),
		slog.Bool("database", cfg.Database.Enabled))

	// Background context for the mirror and worker pool, cancelled on
	// shutdown after the HTTP server has drained.
	bgCtx, bgCancel := context.WithCancel(ctx)
	defer bgCancel()

	// Initialize services
	services, err := initServices(bgCtx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing services: %w", err)
	}
	defer services.Close()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	server := raqeebhttp.NewServer(raqeebhttp.Config{
		Addr:                addr,
		Logger:              logger,
		SessionCookieName:   cfg.Session.CookieName,
		SessionDuration:     cfg.Session.Duration,
		SessionSecure:       cfg.Session.Secure,
		UserService:         services.UserService,
		SessionService:      services.SessionService,
		ReportService:       services.ReportService,
		CDRService:          services.CDRService,
		InvoiceService:      services.InvoiceService,
		StatementService:    services.StatementService,
		NotificationService: services.NotificationService,
		ZoneService:         services.ZoneService,
		LocationService:     services.LocationService,
		FormService:         services.FormService,
		SnapshotService:     services.SnapshotService,
		FileStorage:         services.FileStorage,
		Queue:               services.Queue,
	})

	// Create channel for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Start server
	serverErr := make(chan error, 1)
	go func() {
		if err := server.Open(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	// Graceful shutdown: drain HTTP first, then stop the mirror and
	// workers so in-flight writes still reach the queue and store.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Close(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", slog.String("error", err.Error()))
		return fmt.Errorf("server shutdown: %w", err)
	}

	bgCancel()
	services.Close()

	logger.Info("server exited gracefully")
	return nil
}
