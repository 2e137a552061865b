// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/roster/pkg/logging"
)

// Backend selects the persistence implementation.
type Backend string

const (
	BackendText   Backend = "text"
	BackendSQLite Backend = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	// Backend is the persistence implementation to use.
	Backend Backend

	// DataFile is the delimited text file used by the text backend.
	DataFile string

	// DBPath is the database file used by the sqlite backend.
	DBPath string

	// MetricsFile, if set, receives Prometheus text-format metrics on exit.
	MetricsFile string

	// PassphraseHash is a bcrypt hash. When set the shell is locked until
	// the operator enters the matching passphrase.
	PassphraseHash string

	// Operator names whoever is at the terminal, for logs and session tokens.
	Operator string

	// SessionTTL is how long an unlocked session lasts before the shell
	// asks for the passphrase again.
	SessionTTL time.Duration

	LogLevel slog.Level
}

// Load reads configuration from the environment. Variables from envFile are
// applied first if that file exists; variables already set in the process
// environment win.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
			}
		}
	}

	cfg := &Config{
		Backend:        Backend(strings.ToLower(getEnv("ROSTER_BACKEND", string(BackendText)))),
		DataFile:       getEnv("ROSTER_FILE", "students.txt"),
		DBPath:         getEnv("ROSTER_DB", "./data/roster.db"),
		MetricsFile:    os.Getenv("ROSTER_METRICS_FILE"),
		PassphraseHash: os.Getenv("ROSTER_PASSPHRASE_HASH"),
		Operator:       getEnv("ROSTER_OPERATOR", getEnv("USER", "operator")),
		LogLevel:       logging.ParseLevel(os.Getenv("LOG_LEVEL")),
	}

	switch cfg.Backend {
	case BackendText, BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown ROSTER_BACKEND %q (want %q or %q)", cfg.Backend, BackendText, BackendSQLite)
	}

	ttl, err := time.ParseDuration(getEnv("ROSTER_SESSION_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ROSTER_SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid ROSTER_SESSION_TTL: must be positive, got %s", ttl)
	}
	cfg.SessionTTL = ttl

	return cfg, nil
}

// Locked reports whether the shell requires a passphrase.
func (c *Config) Locked() bool {
	return c.PassphraseHash != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
