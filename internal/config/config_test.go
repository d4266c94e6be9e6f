package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.HTTPPort != "8080" {
		t.Fatalf("default port wrong: %s", cfg.HTTPPort)
	}
	if cfg.DBDriver != "sqlite3" {
		t.Fatalf("default driver wrong: %s", cfg.DBDriver)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Fatalf("default session ttl wrong: %s", cfg.SessionTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("RATE_LIMIT_PER_MIN", "7")

	cfg := Load()
	if cfg.HTTPPort != "9999" || cfg.DBDriver != "pgx" {
		t.Fatalf("overrides ignored: %+v", cfg)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("session ttl override ignored: %s", cfg.SessionTTL)
	}
	if cfg.RateLimitPerMin != 7 {
		t.Fatalf("rate limit override ignored: %d", cfg.RateLimitPerMin)
	}
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("RATE_LIMIT_PER_MIN", "lots")

	cfg := Load()
	if cfg.SessionTTL != 12*time.Hour {
		t.Fatalf("bad duration should fall back: %s", cfg.SessionTTL)
	}
	if cfg.RateLimitPerMin != 120 {
		t.Fatalf("bad int should fall back: %d", cfg.RateLimitPerMin)
	}
}
