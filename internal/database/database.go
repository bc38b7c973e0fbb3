package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pacsboard/pacsboard/internal/models"
)

// Config holds database connection parameters
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	LogLevel string
}

func (c Config) dsn() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

var (
	initOnce sync.Once
	pool     *gorm.DB
	initErr  error
)

// Init establishes the process-wide connection pool exactly once. The
// result, including a failure, is cached: every later Get call observes
// the same outcome instead of silently retrying.
func Init(cfg Config) error {
	initOnce.Do(func() {
		pool, initErr = open(cfg, gormLogLevel(cfg.LogLevel), 25, 5)
		if initErr != nil {
			initErr = fmt.Errorf("failed to connect to database: %w", initErr)
			return
		}
		initErr = migrate(pool)
	})
	return initErr
}

// Get returns the pool established by Init, or the cached initialization
// error.
func Get() (*gorm.DB, error) {
	if initErr != nil {
		return nil, initErr
	}
	if pool == nil {
		return nil, errors.New("database not initialized")
	}
	return pool, nil
}

// Ping verifies the pool is still reachable.
func Ping(ctx context.Context) error {
	db, err := Get()
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the connection pool
func Close() error {
	if pool == nil {
		return nil
	}
	sqlDB, err := pool.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// TestConnection opens a throwaway single-connection pool against the
// given parameters and pings it. Used by the settings screen to verify
// credentials before saving them.
func TestConnection(ctx context.Context, cfg Config) error {
	db, err := open(cfg, logger.Silent, 1, 0)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return sqlDB.PingContext(pingCtx)
}

func open(cfg Config, level logger.LogLevel, maxOpen, maxIdle int) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.dsn()), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Minute)

	return db, nil
}

// migrate creates the tables owned by this application. The worklist and
// utilization tables belong to the PACS side and are never touched.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	default:
		return logger.Info
	}
}
