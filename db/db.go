package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // Import postgres driver
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Dosada05/fencing-tournament/config"
)

// Database bundles the query handle used by repositories with the ORM handle
// that owns the schema.
type Database struct {
	SQL *sqlx.DB
	ORM *gorm.DB
}

func Connect(driver, dsn string, timeout time.Duration) (*Database, error) {
	switch driver {
	case config.DriverPostgres:
		return connectPostgres(dsn, timeout)
	case config.DriverSQLite:
		return connectSQLite(dsn, timeout)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func connectPostgres(dsn string, timeout time.Duration) (*Database, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := ping(sqlDB, timeout); err != nil {
		return nil, err
	}

	orm, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig())
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to attach gorm to postgres connection: %w", err)
	}

	return &Database{SQL: sqlx.NewDb(sqlDB, "postgres"), ORM: orm}, nil
}

func connectSQLite(dsn string, timeout time.Duration) (*Database, error) {
	orm, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	sqlDB, err := orm.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
	}

	// SQLite allows a single writer; an in-memory database also lives only as
	// long as its one connection.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := ping(sqlDB, timeout); err != nil {
		return nil, err
	}

	return &Database{SQL: sqlx.NewDb(sqlDB, "sqlite3"), ORM: orm}, nil
}

func ping(sqlDB *sql.DB, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		if closeErr := sqlDB.Close(); closeErr != nil {
			return fmt.Errorf("failed to ping database within %v: %w (close also failed: %v)", timeout, err, closeErr)
		}
		return fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}
	return nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
}

func (d *Database) Close() error {
	return d.SQL.Close()
}
