// Package storage opens the Bun database backing the persistent
// repositories.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

var (
	// ErrDSNRequired indicates an open attempt without a connection string.
	ErrDSNRequired = errors.New("storage: dsn is required")
)

// Config selects the backing database.
type Config struct {
	// Driver is one of sqlite3 or postgres. Empty defaults to sqlite3.
	Driver string
	// DSN is the driver connection string, e.g. "file::memory:?cache=shared"
	// or a postgres URL.
	DSN string
}

// Open connects to the configured database and wraps it with the matching
// Bun dialect. SQLite connections are capped at one open connection; the
// shared in-memory mode breaks beyond that.
func Open(cfg Config) (*bun.DB, error) {
	if cfg.DSN == "" {
		return nil, ErrDSNRequired
	}
	driver := cfg.Driver
	if driver == "" {
		driver = DriverSQLite
	}

	switch driver {
	case DriverSQLite:
		sqlDB, err := sql.Open(DriverSQLite, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		db := bun.NewDB(sqlDB, sqlitedialect.New())
		db.SetMaxOpenConns(1)
		return db, nil
	case DriverPostgres:
		sqlDB, err := sql.Open(DriverPostgres, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q", driver)
	}
}
