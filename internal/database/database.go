package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ledgerly/internal/config"
	"ledgerly/internal/logger"
	"ledgerly/internal/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Manager owns the connection backing the budget list and activity log.
type Manager struct {
	db     *gorm.DB
	config *Config
}

// NewManager opens the database selected by config.Driver.
func NewManager(cfg *Config) (*Manager, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true,
		}), gormCfg)
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" {
			if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", mkErr)
			}
		}
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if cfg.Driver == config.DriverSQLite {
		// SQLite serializes writers; one connection avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return &Manager{db: db, config: cfg}, nil
}

// RunMigrations brings the schema up to date. Postgres applies the SQL files
// under migrations/; SQLite uses gorm's AutoMigrate.
func (m *Manager) RunMigrations() error {
	logger.Get().Infow("Running database migrations", "driver", m.config.Driver)

	if m.config.Driver != config.DriverPostgres {
		if err := AutoMigrate(m.db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Get().Info("Database migrations completed successfully")
		return nil
	}

	mig, err := migrate.New(m.config.MigrationsURL, m.config.MigrateURL())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// AutoMigrate creates the tables for every persisted model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Budget{},
		&models.StoreMeta{},
		&models.ActivityEntry{},
	)
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases the underlying connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
