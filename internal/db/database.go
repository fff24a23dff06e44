package db

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jwtpizza/pizza-service/config"
	appLogger "github.com/jwtpizza/pizza-service/pkg/logger"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database owns the connection pool. Initialize must complete before the
// service takes traffic; Ready reports whether it has.
type Database struct {
	cfg   *config.Config
	mu    sync.Mutex
	conn  *gorm.DB
	ready atomic.Bool
	setup func() error
}

func New(cfg *config.Config) *Database {
	d := &Database{cfg: cfg}
	d.setup = d.initialize
	return d
}

// Initialize creates the database if it is missing, opens the pool, migrates
// the schema and seeds the default admin. Concurrent callers wait for one run.
// Once it has succeeded later calls return nil; after a failure the next call retries.
func (d *Database) Initialize() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ready.Load() {
		return nil
	}
	if err := d.setup(); err != nil {
		return err
	}
	d.ready.Store(true)
	return nil
}

func (d *Database) initialize() error {
	dbCfg := &d.cfg.Database

	appLogger.Info("Connecting to database", map[string]interface{}{
		"host":     dbCfg.Host,
		"port":     dbCfg.Port,
		"database": dbCfg.DBName,
		"user":     dbCfg.User,
	})

	if err := ensureDatabase(dbCfg); err != nil {
		return err
	}

	conn, err := gorm.Open(postgres.Open(dbCfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)

	if err := Migrate(conn, d.cfg.Admin); err != nil {
		sqlDB.Close()
		return err
	}

	d.conn = conn
	appLogger.Info("Database connection established successfully", map[string]interface{}{
		"max_idle_conns": dbCfg.MaxIdleConns,
		"max_open_conns": dbCfg.MaxOpenConns,
	})
	return nil
}

// ensureDatabase creates cfg.DBName through the maintenance database when it does not exist.
func ensureDatabase(cfg *config.DatabaseConfig) error {
	admin, err := gorm.Open(postgres.Open(cfg.MaintenanceDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to maintenance database: %w", err)
	}
	sqlDB, err := admin.DB()
	if err != nil {
		return fmt.Errorf("failed to get maintenance database instance: %w", err)
	}
	defer sqlDB.Close()

	var count int64
	if err := admin.Raw("SELECT COUNT(*) FROM pg_database WHERE datname = ?", cfg.DBName).Scan(&count).Error; err != nil {
		return fmt.Errorf("failed to look up database %s: %w", cfg.DBName, err)
	}
	if count > 0 {
		return nil
	}

	appLogger.Info("Creating database", map[string]interface{}{
		"database": cfg.DBName,
	})
	if err := admin.Exec("CREATE DATABASE " + pq.QuoteIdentifier(cfg.DBName)).Error; err != nil {
		return fmt.Errorf("failed to create database %s: %w", cfg.DBName, err)
	}
	return nil
}

// Ready reports whether Initialize has completed successfully.
func (d *Database) Ready() bool {
	return d.ready.Load()
}

// GetDB returns the pool. It is nil until Initialize succeeds.
func (d *Database) GetDB() *gorm.DB {
	return d.conn
}

// Close closes the pool and marks the database not ready.
func (d *Database) Close() error {
	d.ready.Store(false)
	if d.conn == nil {
		return nil
	}
	sqlDB, err := d.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
