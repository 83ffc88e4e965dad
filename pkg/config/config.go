package config

import "time"

// Config is the root configuration structure for Daybook.
type Config struct {
	// Server contains the TCP listener and wire-protocol limits.
	Server ServerConfig `yaml:"server"`

	// Storage selects and configures the persistence backend.
	Storage StorageConfig `yaml:"storage"`

	// Auth configures password hashing.
	Auth AuthConfig `yaml:"auth"`

	// Assets configures static file serving.
	Assets AssetsConfig `yaml:"assets"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the raw-TCP HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the deadline for reading one complete request from a
	// connection. A stalled peer is cut off when it fires.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the deadline for writing the response.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// ShutdownTimeout is the maximum duration to wait for in-flight
	// connections during graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes bounds the request line plus headers.
	// Default: 65536 (64 KiB)
	MaxHeaderBytes int64 `yaml:"max_header_bytes"`

	// MaxBodyBytes bounds the declared Content-Length of a request body.
	// A larger declaration is refused with 413 before the body is read.
	// Default: 10485760 (10 MiB)
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	// Backend is the storage backend to use: "sqlite" or "memory".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite configures the SQLite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// MaintenanceSchedule is a cron expression for periodic database
	// maintenance (WAL checkpoint, optimizer statistics). Empty disables it.
	// Default: "0 3 * * *"
	MaintenanceSchedule string `yaml:"maintenance_schedule"`
}

// SQLiteConfig contains configuration for the SQLite backend.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/daybook.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle database connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// AuthConfig configures password hashing.
type AuthConfig struct {
	// PasswordSalt is the deployment-wide PBKDF2 salt. It must be supplied
	// explicitly; there is no default and validation rejects an empty value.
	PasswordSalt string `yaml:"password_salt"`

	// PBKDF2Iterations is the PBKDF2 iteration count.
	// Default: 600000
	PBKDF2Iterations int `yaml:"pbkdf2_iterations"`
}

// AssetsConfig configures static file serving.
type AssetsConfig struct {
	// Dir is the directory holding the single-page application files.
	// Default: "public"
	Dir string `yaml:"dir"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures the Prometheus metrics endpoint.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures the Prometheus metrics endpoint. Metrics are an
// operator surface served by its own listener; the diary protocol itself
// stays on the raw-TCP server.
type MetricsConfig struct {
	// Enabled controls whether the metrics listener runs.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the metrics listener address.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// Namespace is the Prometheus metric namespace.
	// Default: "daybook"
	Namespace string `yaml:"namespace"`
}
