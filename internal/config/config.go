package config

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Email    EmailConfig
	Storage  StorageConfig
	Seed     SeedConfig
	Logger   LoggerConfig
}

type AppConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	// Enabled turns on the PostgreSQL mirror and job queue.
	// When false the application runs purely from the in-memory store.
	Enabled  bool
	Username string
	Password string
	Host     string
	Port     string
	DbName   string
}

type SessionConfig struct {
	CookieName string
	Duration   time.Duration
	Secure     bool
}

type EmailConfig struct {
	Provider        string // "mock" or "postmark"
	PostmarkToken   string
	PostmarkAccount string
	FromAddress     string
	FromName        string
	AppBaseURL      string

	// NotificationDomain is appended to usernames to form inspector
	// mailbox addresses for notification digests.
	NotificationDomain string

	// StatementRecipient receives approved statement workbooks. Export
	// jobs are skipped when empty.
	StatementRecipient string
}

type StorageConfig struct {
	Provider  string // "local" or "s3"
	Bucket    string
	Region    string
	Endpoint  string // Optional custom endpoint (MinIO and friends)
	AccessKey string
	SecretKey string
}

type SeedConfig struct {
	// Enabled loads demo users and a year of generated inspection history
	Enabled bool
	Year    int
}

type LoggerConfig struct {
	Level slog.Level
}

var (
	flagsInitialized = false
	flagHost         *string
	flagPort         *int
	flagEnv          *string
	flagLogLevel     *string
	flagDbEnabled    *bool
	flagDbUser       *string
	flagDbPassword   *string
	flagDbHost       *string
	flagDbPort       *string
	flagDbName       *string
	flagSeed         *bool
	flagSeedYear     *int
)

func initFlags() {
	if !flagsInitialized {
		flagHost = flag.String("host", getEnv("SERVER_HOST", "localhost"), "server host")
		flagPort = flag.Int("port", getEnvInt("SERVER_PORT", 8080), "server port")
		flagEnv = flag.String("env", getEnv("ENVIRONMENT", "prod"), "environment: prod, dev")
		flagLogLevel = flag.String("log_level", getEnv("LOG_LEVEL", "info"), "log level: debug, info, warn, error")
		flagDbEnabled = flag.Bool("db", getEnvBool("DB_ENABLED", false), "mirror state to postgres")
		flagDbUser = flag.String("db_user", getEnv("DB_USER", "postgres"), "postgres database username")
		flagDbPassword = flag.String("db_password", getEnv("DB_PASSWORD", ""), "postgres database password")
		flagDbHost = flag.String("db_hostname", getEnv("DB_HOSTNAME", "localhost"), "postgres database hostname")
		flagDbPort = flag.String("db_port", getEnv("DB_PORT", "5432"), "postgres database port")
		flagDbName = flag.String("db_name", getEnv("DB_NAME", "postgres"), "postgres database name")
		flagSeed = flag.Bool("seed", getEnvBool("SEED_DEMO_DATA", true), "seed demo users and inspection history")
		flagSeedYear = flag.Int("seed_year", getEnvInt("SEED_YEAR", time.Now().Year()-1), "calendar year for seeded history")
		flagsInitialized = true
	}
	if !flag.Parsed() {
		flag.Parse()
	}
}

// Load loads configuration from environment variables and command-line flags
func Load() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		// Walk up directories to find .env (max 2 parent directories)
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			log.Println("Warning: .env file not found, using environment variables and defaults")
		}
	}

	// Initialize and parse flags
	initFlags()

	// Set up logging
	var programLevel = new(slog.LevelVar) // Info by default
	switch *flagLogLevel {
	case "error":
		programLevel.Set(slog.LevelError)
	case "warn":
		programLevel.Set(slog.LevelWarn)
	case "debug":
		programLevel.Set(slog.LevelDebug)
	default:
		programLevel.Set(slog.LevelInfo)
	}

	cfg := &Config{
		App: AppConfig{
			Host: *flagHost,
			Port: *flagPort,
			Env:  *flagEnv,
		},
		Database: DatabaseConfig{
			Enabled:  *flagDbEnabled,
			Username: *flagDbUser,
			Password: *flagDbPassword,
			Host:     *flagDbHost,
			Port:     *flagDbPort,
			DbName:   *flagDbName,
		},
		Session: SessionConfig{
			CookieName: "session_token",
			Duration:   24 * time.Hour * 7, // 7 days
			Secure:     *flagEnv == "prod" || *flagEnv == "production",
		},
		Email: EmailConfig{
			Provider:        getEnv("EMAIL_PROVIDER", "mock"),
			PostmarkToken:   getEnv("POSTMARK_SERVER_TOKEN", ""),
			PostmarkAccount: getEnv("POSTMARK_ACCOUNT_TOKEN", ""),
			FromAddress:     getEnv("EMAIL_FROM_ADDRESS", "noreply@example.com"),
			FromName:        getEnv("EMAIL_FROM_NAME", "Raqeeb"),
			AppBaseURL:      getEnv("EMAIL_APP_BASE_URL", "http://localhost:8080"),

			NotificationDomain: getEnv("EMAIL_NOTIFICATION_DOMAIN", ""),
			StatementRecipient: getEnv("EMAIL_STATEMENT_RECIPIENT", ""),
		},
		Storage: StorageConfig{
			Provider:  getEnv("STORAGE_PROVIDER", "local"),
			Bucket:    getEnv("STORAGE_BUCKET", "raqeeb-uploads"),
			Region:    getEnv("STORAGE_REGION", "me-south-1"),
			Endpoint:  getEnv("STORAGE_ENDPOINT", ""),
			AccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey: getEnv("STORAGE_SECRET_KEY", ""),
		},
		Seed: SeedConfig{
			Enabled: *flagSeed,
			Year:    *flagSeedYear,
		},
		Logger: LoggerConfig{
			Level: programLevel.Level(),
		},
	}

	if cfg.Database.Enabled && cfg.Database.Password == "" && (cfg.App.Env == "prod" || cfg.App.Env == "production") {
		return nil, fmt.Errorf("DB_PASSWORD must be set when the postgres mirror is enabled in production")
	}

	return cfg, nil
}

func (c *Config) GetLogger() slog.Handler {
	var handler slog.Handler
	logLevel := c.Logger.Level
	switch c.App.Env {
	case "prod", "production":
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String("time", a.Value.Time().Format(time.RFC3339Nano))
				}
				return a
			},
		})
	default:
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	}
	return handler
}

func (c *Config) GetConnectionString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s", c.Database.Username, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.DbName)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intValue int
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "yes":
		return true
	case "0", "false", "FALSE", "no":
		return false
	}
	return defaultValue
}
