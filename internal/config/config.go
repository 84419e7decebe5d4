// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with documented defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables; CLI flags
// override individual values after loading.
type Config struct {
	Database DatabaseConfig
	Import   ImportConfig
	Server   ServerConfig
	Rate     RateLimitConfig
	Logging  LoggingConfig
	Site     SiteConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is a SQLite file path or a postgres:// connection string
	// (default: data/reflections.db). REFLECTIONS_DB is accepted as an alias.
	URL string `env:"DATABASE_URL" envAlt:"REFLECTIONS_DB" default:"data/reflections.db"`

	// MaxOpenConns caps the connection pool (default: 4)
	MaxOpenConns int `env:"DB_MAX_OPEN_CONNS" default:"4"`

	// MaxIdleConns is the number of idle connections kept open (default: 2)
	MaxIdleConns int `env:"DB_MAX_IDLE_CONNS" default:"2"`

	// ConnMaxLifetime is the maximum lifetime of a connection (default: 1h)
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" default:"1h"`

	// BusyTimeout is how long SQLite waits on a locked database (default: 5s)
	BusyTimeout time.Duration `env:"DB_BUSY_TIMEOUT" default:"5s"`
}

// ImportConfig holds CSV import settings.
type ImportConfig struct {
	// CSVPath is the source file (default: data/daily_reflections_all_languages_new.csv)
	CSVPath string `env:"IMPORT_CSV_PATH" default:"data/daily_reflections_all_languages_new.csv"`

	// Language is the partition replaced by an import (default: pt-BR)
	Language string `env:"IMPORT_LANGUAGE" default:"pt-BR"`

	// MaxFileSize is the maximum accepted CSV size in bytes (default: 100MB)
	MaxFileSize int64 `env:"IMPORT_MAX_FILE_SIZE" default:"104857600"`

	// Strict rolls back the whole import when any row fails (default: false)
	Strict bool `env:"IMPORT_STRICT" default:"false"`

	// Timeout bounds a single import run (default: 10m)
	Timeout time.Duration `env:"IMPORT_TIMEOUT" default:"10m"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 127.0.0.1)
	Host string `env:"SERVER_HOST" default:"127.0.0.1"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 10s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	Enabled           bool `env:"RATE_LIMIT_ENABLED" default:"true"`
	RequestsPerMinute int  `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`

	// File enables rotating file output in addition to stderr when set
	File string `env:"LOG_FILE"`

	MaxSizeMB int `env:"LOG_MAX_SIZE_MB" default:"10"`
	MaxFiles  int `env:"LOG_MAX_FILES" default:"5"`
}

// SiteConfig holds settings for the published data files and sitemap.
type SiteConfig struct {
	BaseURL     string `env:"SITE_BASE_URL" default:"https://paladini.github.io/aa-daily-reflections-database"`
	ExportDir   string `env:"SITE_EXPORT_DIR" default:"public/data"`
	SitemapPath string `env:"SITE_SITEMAP_PATH" default:"public/sitemap.xml"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
