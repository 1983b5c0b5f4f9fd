package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nasserq/raqeeb"
	"github.com/nasserq/raqeeb/internal/config"
	"github.com/nasserq/raqeeb/internal/email"
	"github.com/nasserq/raqeeb/internal/queue"
	"github.com/nasserq/raqeeb/internal/storage"
	"github.com/nasserq/raqeeb/memory"
	"github.com/nasserq/raqeeb/postgres"
	"github.com/nasserq/raqeeb/refdata"
)

// Services holds all application services.
type Services struct {
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

	FileStorage  storage.FileStorage
	EmailService email.EmailService
	Queue        queue.Queue

	store   *memory.Store
	db      *postgres.DB
	workers *queue.WorkerPool
	logger  *slog.Logger

	closeOnce sync.Once
}

// initServices initializes all application services. The in-memory store
// is authoritative; when the database is enabled its last dump is
// restored on startup and a mirror goroutine flushes changes back.
func initServices(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	svcs := &Services{logger: logger}

	// Database (optional)
	var mirror *postgres.Mirror
	if cfg.Database.Enabled {
		db, err := postgres.NewDB(ctx, cfg.GetConnectionString(), logger)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		svcs.db = db

		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}

		mirror = postgres.NewMirror(db, logger, 30*time.Second)
		logger.Info("postgres mirror initialized")
	}

	// Job queue
	queueCfg := queue.DefaultConfig()
	if cfg.Database.Enabled {
		queueCfg.Provider = "postgres"
		queueCfg.PostgresConnectionString = cfg.GetConnectionString()
	}
	q, err := queue.NewQueue(ctx, logger, queueCfg)
	if err != nil {
		svcs.Close()
		return nil, fmt.Errorf("initializing queue: %w", err)
	}
	svcs.Queue = q
	logger.Info("queue initialized", slog.String("provider", queueCfg.Provider))

	// Entity store
	store := memory.NewStore(memory.Config{
		Clock:     raqeeb.SystemClock(),
		RateTable: refdata.RateTable(),
		Logger:    logger,
		Mailer:    &queueMailer{queue: q},
	})
	store.LoadReferenceData(refdata.Zones(), refdata.Locations(), refdata.Forms())
	svcs.store = store

	// Restore the last mirrored state, or seed a fresh store.
	restored := false
	if mirror != nil {
		dump, err := mirror.Load(ctx)
		if err != nil {
			svcs.Close()
			return nil, fmt.Errorf("loading mirrored state: %w", err)
		}
		if dump != nil {
			store.Restore(dump)
			restored = true
			logger.Info("store restored from mirror")
		}
	}
	if !restored && cfg.Seed.Enabled {
		if err := store.Seed(ctx, cfg.Seed.Year); err != nil {
			svcs.Close()
			return nil, fmt.Errorf("seeding store: %w", err)
		}
		logger.Info("store seeded", slog.Int("year", cfg.Seed.Year))
	}

	if mirror != nil {
		go mirror.Run(ctx, store)
	}

	// Domain services
	svcs.UserService = memory.NewUserService(store)
	svcs.SessionService = memory.NewSessionService(store)
	svcs.ReportService = memory.NewReportService(store)
	svcs.CDRService = memory.NewCDRService(store)
	svcs.InvoiceService = memory.NewInvoiceService(store)
	svcs.StatementService = memory.NewStatementService(store)
	svcs.NotificationService = memory.NewNotificationService(store)
	svcs.ZoneService = memory.NewZoneService(store)
	svcs.LocationService = memory.NewLocationService(store)
	svcs.FormService = memory.NewFormService(store)
	svcs.SnapshotService = memory.NewSnapshotService(store)

	// File storage
	fileStorage, err := storage.NewFileStorage(ctx, logger, storage.StorageConfig{
		Provider: cfg.Storage.Provider,
		S3Bucket: cfg.Storage.Bucket,
		S3Region: cfg.Storage.Region,
	})
	if err != nil {
		svcs.Close()
		return nil, fmt.Errorf("initializing file storage: %w", err)
	}
	svcs.FileStorage = fileStorage
	logger.Info("file storage initialized", slog.String("provider", cfg.Storage.Provider))

	// Email
	svcs.EmailService = email.NewEmailService(logger, email.EmailConfig{
		Provider:        cfg.Email.Provider,
		PostmarkToken:   cfg.Email.PostmarkToken,
		PostmarkAccount: cfg.Email.PostmarkAccount,
		FromAddress:     cfg.Email.FromAddress,
		FromName:        cfg.Email.FromName,
		AppBaseURL:      cfg.Email.AppBaseURL,
	})
	logger.Info("email service initialized", slog.String("provider", cfg.Email.Provider))

	// Workers
	svcs.workers = newWorkerPool(svcs, cfg, logger, queueCfg)
	if err := svcs.workers.Start(ctx, []string{emailQueueName, exportQueueName}); err != nil {
		svcs.Close()
		return nil, fmt.Errorf("starting worker pool: %w", err)
	}
	logger.Info("worker pool started", slog.Int("workers", queueCfg.WorkerCount))

	return svcs, nil
}

// Close stops the workers, queue, and database connections. Safe to call
// more than once.
func (s *Services) Close() {
	s.closeOnce.Do(func() {
		if s.workers != nil {
			if err := s.workers.Stop(); err != nil {
				s.logger.Error("worker pool stop failed", slog.String("error", err.Error()))
			}
		}
		if s.Queue != nil {
			if err := s.Queue.Close(); err != nil {
				s.logger.Error("queue close failed", slog.String("error", err.Error()))
			}
		}
		if s.db != nil {
			s.db.Close()
		}
	})
}
