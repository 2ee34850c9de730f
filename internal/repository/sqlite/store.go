package sqlite

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mamadbah2/silotrack/internal/domain/models"
)

// Store owns the SQLite database handle shared by the registry and the
// ledger. It is passed explicitly into every service; there is no global
// session state.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New opens (or creates) the SQLite database at path and applies the
// schema migrations. An empty path opens an in-memory database, useful
// for tests and local experimentation.
func New(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dsn := "file::memory:"
	if path != "" {
		dir := filepath.Dir(path)
		if _, err := os.Stat(dir); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read data dir: %w", err)
			}
			if err := os.MkdirAll(dir, fs.ModePerm); err != nil {
				return nil, fmt.Errorf("failed to create data dir: %w", err)
			}
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", path)
	}

	// Timestamps are stored in UTC; localization happens at the display
	// boundary only.
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  gormlogger.Discard,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// A single pooled connection serializes all writers, which is the
	// concurrency model the registry assumes. It also keeps in-memory
	// databases alive across uses of the pool.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	for _, model := range models.MigrateModels {
		if err := db.AutoMigrate(model); err != nil {
			return nil, fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	logger.Info("sqlite store ready", zap.String("dsn", dsn))

	return &Store{db: db, logger: logger}, nil
}

// DB exposes the underlying handle for read paths.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn inside a single database transaction; any returned
// error rolls back every statement issued within it.
func (s *Store) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// IsUniqueViolation reports whether err originates from a unique
// constraint, so callers can translate it into a domain error instead of
// leaking storage details.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
