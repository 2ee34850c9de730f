package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Display   DisplayConfig
	Reporting ReportingConfig
	Notifier  NotifierConfig
	MongoDB   MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds settings for the embedded SQLite store. An empty
// Path selects an in-memory database.
type DatabaseConfig struct {
	Path string
}

// DisplayConfig controls boundary-layer formatting; timestamps are stored
// in UTC and only converted for presentation.
type DisplayConfig struct {
	Timezone string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule        string
	LowStockThresholdKg int64
}

// NotifierConfig holds the optional snapshot webhook target.
type NotifierConfig struct {
	WebhookURL string
}

// MongoDBConfig holds settings for the optional snapshot archive.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	threshold, err := strconv.ParseInt(getenvWithDefault("LOW_STOCK_THRESHOLD_KG", "1000"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("LOW_STOCK_THRESHOLD_KG must be an integer: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Path: os.Getenv("DATABASE_PATH"),
		},
		Display: DisplayConfig{
			Timezone: getenvWithDefault("TIMEZONE", "America/Argentina/Cordoba"),
		},
		Reporting: ReportingConfig{
			CronSchedule:        getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 20 * * *"),
			LowStockThresholdKg: threshold,
		},
		Notifier: NotifierConfig{
			WebhookURL: os.Getenv("WEBHOOK_URL"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "silotrack"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated and
// well formed. The webhook and MongoDB settings stay optional; the
// features they enable are skipped when unset.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Display.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}
	if _, err := time.LoadLocation(c.Display.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE is not a valid location: %w", err)
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.LowStockThresholdKg < 0 {
		return errors.New("LOW_STOCK_THRESHOLD_KG must not be negative")
	}

	if c.MongoDB.URI != "" && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided when MONGODB_URI is set")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
