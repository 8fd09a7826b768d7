package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"NPSBOARD_ADDR", "NPSBOARD_ENV", "NPSBOARD_JWT_SECRET",
		"NPSBOARD_BASE_URL", "NPSBOARD_DB_PATH", "NPSBOARD_TOKEN_TTL",
	} {
		t.Setenv(key, "")
	}
	cfg := FromEnv()
	if cfg.Addr != ":8080" {
		t.Fatalf("addr = %q", cfg.Addr)
	}
	if cfg.Env != "development" || cfg.Production() {
		t.Fatalf("env = %q, production = %v", cfg.Env, cfg.Production())
	}
	if cfg.TokenTTL != defaultTokenTTL {
		t.Fatalf("ttl = %v", cfg.TokenTTL)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("NPSBOARD_ADDR", ":9999")
	t.Setenv("NPSBOARD_ENV", "production")
	t.Setenv("NPSBOARD_BASE_URL", "https://nps.example.com")
	t.Setenv("NPSBOARD_TOKEN_TTL", "12h")
	cfg := FromEnv()
	if cfg.Addr != ":9999" {
		t.Fatalf("addr = %q", cfg.Addr)
	}
	if !cfg.Production() {
		t.Fatalf("production mode not detected")
	}
	if cfg.PublicBaseURL != "https://nps.example.com" {
		t.Fatalf("base url = %q", cfg.PublicBaseURL)
	}
	if cfg.TokenTTL != 12*time.Hour {
		t.Fatalf("ttl = %v", cfg.TokenTTL)
	}
}

func TestEnvDurationRejectsGarbage(t *testing.T) {
	t.Setenv("NPSBOARD_TOKEN_TTL", "soon")
	if got := envDuration("NPSBOARD_TOKEN_TTL", time.Hour); got != time.Hour {
		t.Fatalf("garbage duration: %v", got)
	}
	t.Setenv("NPSBOARD_TOKEN_TTL", "-5m")
	if got := envDuration("NPSBOARD_TOKEN_TTL", time.Hour); got != time.Hour {
		t.Fatalf("negative duration: %v", got)
	}
}
