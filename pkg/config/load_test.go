package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

const minimalConfig = `
auth:
  password_salt: "test-salt"
`

func TestLoadConfig_Minimal(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.ListenAddress != DefaultListenAddress {
		t.Errorf("listen address = %q, want default %q", cfg.Server.ListenAddress, DefaultListenAddress)
	}
	if cfg.Server.MaxHeaderBytes != DefaultMaxHeaderBytes {
		t.Errorf("max header bytes = %d, want %d", cfg.Server.MaxHeaderBytes, DefaultMaxHeaderBytes)
	}
	if cfg.Server.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("max body bytes = %d, want %d", cfg.Server.MaxBodyBytes, DefaultMaxBodyBytes)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("backend = %q, want sqlite", cfg.Storage.Backend)
	}
	if !cfg.Storage.SQLite.WALMode {
		t.Error("WAL mode should default to true")
	}
	if cfg.Storage.MaintenanceSchedule != DefaultMaintenanceSched {
		t.Errorf("maintenance schedule = %q, want %q", cfg.Storage.MaintenanceSchedule, DefaultMaintenanceSched)
	}
	if cfg.Auth.PasswordSalt != "test-salt" {
		t.Errorf("password salt = %q, want test-salt", cfg.Auth.PasswordSalt)
	}
	if cfg.Auth.PBKDF2Iterations != DefaultPBKDF2Iterations {
		t.Errorf("iterations = %d, want %d", cfg.Auth.PBKDF2Iterations, DefaultPBKDF2Iterations)
	}
	if cfg.Telemetry.Logging.Level != "info" || cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("logging defaults = %q/%q, want info/json", cfg.Telemetry.Logging.Level, cfg.Telemetry.Logging.Format)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics should default to disabled")
	}
}

func TestLoadConfig_Explicit(t *testing.T) {
	path := writeConfigFile(t, `
server:
  listen_address: "0.0.0.0:9000"
  read_timeout: 10s
  max_body_bytes: 1048576
storage:
  backend: memory
auth:
  password_salt: "s"
  pbkdf2_iterations: 2000
telemetry:
  logging:
    level: debug
    format: text
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:9000" {
		t.Errorf("listen address = %q", cfg.Server.ListenAddress)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("read timeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.MaxBodyBytes != 1048576 {
		t.Errorf("max body bytes = %d", cfg.Server.MaxBodyBytes)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("backend = %q", cfg.Storage.Backend)
	}
	if cfg.Auth.PBKDF2Iterations != 2000 {
		t.Errorf("iterations = %d", cfg.Auth.PBKDF2Iterations)
	}
	if cfg.Telemetry.Logging.Level != "debug" || cfg.Telemetry.Logging.Format != "text" {
		t.Errorf("logging = %q/%q", cfg.Telemetry.Logging.Level, cfg.Telemetry.Logging.Format)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "server: [not a mapping")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadConfig_MissingSalt(t *testing.T) {
	path := writeConfigFile(t, "server:\n  listen_address: \"127.0.0.1:8080\"\n")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected validation error when password salt is absent")
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	t.Setenv("DAYBOOK_SERVER_LISTEN_ADDRESS", "127.0.0.1:8888")
	t.Setenv("DAYBOOK_AUTH_PASSWORD_SALT", "env-salt")
	t.Setenv("DAYBOOK_STORAGE_BACKEND", "memory")
	t.Setenv("DAYBOOK_METRICS_ENABLED", "true")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides failed: %v", err)
	}

	if cfg.Server.ListenAddress != "127.0.0.1:8888" {
		t.Errorf("listen address = %q, want env override", cfg.Server.ListenAddress)
	}
	if cfg.Auth.PasswordSalt != "env-salt" {
		t.Errorf("password salt = %q, want env override", cfg.Auth.PasswordSalt)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("backend = %q, want env override", cfg.Storage.Backend)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics should be enabled by env override")
	}
}

func TestLoadConfigWithEnvOverrides_SaltFromEnvOnly(t *testing.T) {
	path := writeConfigFile(t, "storage:\n  backend: memory\n")

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected validation error without salt")
	}

	t.Setenv("DAYBOOK_AUTH_PASSWORD_SALT", "only-env")
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides failed with env-only salt: %v", err)
	}
	if cfg.Auth.PasswordSalt != "only-env" {
		t.Errorf("password salt = %q, want only-env", cfg.Auth.PasswordSalt)
	}
}
