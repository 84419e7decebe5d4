package database

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect selects the SQL variant used for schema and search queries.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

const (
	sqliteDriver   = "sqlite3"
	postgresDriver = "pgx"
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// DialectFor maps a database/sql driver name to its dialect.
func DialectFor(driverName string) Dialect {
	switch driverName {
	case postgresDriver, "postgres", "pgx/v5":
		return Postgres
	default:
		return SQLite
	}
}

// IsPostgresURL reports whether dsn selects the PostgreSQL backend.
func IsPostgresURL(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	BusyTimeout     time.Duration // SQLite only
}

// Open connects to the database named by dsn. A postgres:// or
// postgresql:// URL uses pgx; anything else is a SQLite file path, whose
// parent directory is created if missing.
func Open(ctx context.Context, dsn string, opts Options) (*sqlx.DB, error) {
	driver, source, err := resolveDSN(dsn, opts)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", DialectFor(driver), err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", DialectFor(driver), err)
	}
	return db, nil
}

func resolveDSN(dsn string, opts Options) (driver, source string, err error) {
	if IsPostgresURL(dsn) {
		return postgresDriver, dsn, nil
	}

	path := strings.TrimPrefix(dsn, "sqlite://")
	if path == "" {
		return "", "", fmt.Errorf("empty database path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", "", fmt.Errorf("create database directory: %w", err)
		}
	}

	busy := opts.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	params := url.Values{}
	params.Set("_busy_timeout", fmt.Sprint(busy.Milliseconds()))
	params.Set("_journal_mode", "WAL")
	return sqliteDriver, path + "?" + params.Encode(), nil
}
