package infrastructure

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"user-api/internal/adapter/db/postgres"
	"user-api/internal/config"
	"user-api/pkg/logger"
)

// NewDatabase opens the datastore named by DATABASE_URL, tunes the pool and,
// when DB_AUTO_MIGRATE is set, creates or updates the users table.
func NewDatabase(cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	driver, dsn, err := cfg.DB.Driver()
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		dialector = pgdriver.Open(dsn)
	}

	gormLogger := logger.NewGormLoggerWithConfig(l, cfg.Logger.SlowQuerySeconds, cfg.Logger.Level)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpen := cfg.DB.MaxOpenConns
	if driver == config.DriverSQLite {
		// a single writer avoids SQLITE_BUSY and keeps :memory: databases shared
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(min(cfg.DB.MaxIdleConns, maxOpen))
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DB.ConnMaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DB.ConnMaxIdleTime) * time.Second)

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&postgres.UserSchema{}); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to migrate users table: %w", err)
		}
	}

	l.Info("database connected successfully",
		zap.String("driver", driver),
		zap.Int("max_open_conns", maxOpen),
		zap.Int("max_idle_conns", cfg.DB.MaxIdleConns),
		zap.Int("conn_max_lifetime_seconds", cfg.DB.ConnMaxLifetime),
		zap.Int("conn_max_idle_time_seconds", cfg.DB.ConnMaxIdleTime),
		zap.Bool("auto_migrate", cfg.DB.AutoMigrate),
	)

	return db, nil
}

// CloseDatabase closes the database connection
func CloseDatabase(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
