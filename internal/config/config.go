package config

import (
	"os"
	"time"
)

// Config carries everything the server needs from the environment.
// It is built once in main and passed explicitly to the components that
// need it, so services never read process state on their own.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// Env selects the runtime mode; anything other than "production"
	// includes error detail in 500 responses.
	Env string
	// JWTSecret signs admin session tokens.
	JWTSecret string
	// PublicBaseURL prefixes generated campaign links. May be empty,
	// which yields relative paths.
	PublicBaseURL string
	// DBPath is the SQLite database file. Empty selects the in-memory
	// store (useful for local development and tests).
	DBPath string
	// TokenTTL bounds admin session lifetime.
	TokenTTL time.Duration
}

const defaultTokenTTL = 30 * 24 * time.Hour

// FromEnv reads NPSBOARD_* variables, applying development defaults.
func FromEnv() Config {
	return Config{
		Addr:          envOr("NPSBOARD_ADDR", ":8080"),
		Env:           envOr("NPSBOARD_ENV", "development"),
		JWTSecret:     envOr("NPSBOARD_JWT_SECRET", "npsboard-dev-secret"),
		PublicBaseURL: os.Getenv("NPSBOARD_BASE_URL"),
		DBPath:        os.Getenv("NPSBOARD_DB_PATH"),
		TokenTTL:      envDuration("NPSBOARD_TOKEN_TTL", defaultTokenTTL),
	}
}

// Production reports whether the server runs in production mode.
func (c Config) Production() bool { return c.Env == "production" }

func envOr(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
