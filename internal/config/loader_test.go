package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOOKING_JWT_SECRET", "s3cret")
	t.Setenv("BOOKING_HTTP_PORT", "")
	t.Setenv("BOOKING_SQLITE_DSN", "")
	t.Setenv("BOOKING_TOKEN_TTL", "")
	t.Setenv("BOOKING_BCRYPT_COST", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTPPort != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.HTTPPort)
	}
	if cfg.SQLiteDSN != "file:booking.db" {
		t.Fatalf("unexpected default DSN %q", cfg.SQLiteDSN)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected default TTL of 24h, got %v", cfg.TokenTTL)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Fatalf("unexpected secret %q", cfg.JWTSecret)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BOOKING_JWT_SECRET", "s3cret")
	t.Setenv("BOOKING_HTTP_PORT", "9090")
	t.Setenv("BOOKING_SQLITE_DSN", "file:other.db")
	t.Setenv("BOOKING_TOKEN_TTL", "30m")
	t.Setenv("BOOKING_BCRYPT_COST", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTPPort != 9090 || cfg.SQLiteDSN != "file:other.db" || cfg.TokenTTL != 30*time.Minute || cfg.BcryptCost != 12 {
		t.Fatalf("overrides not applied: %#v", cfg)
	}
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("BOOKING_JWT_SECRET", "")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for missing secret")
	}
	if !strings.Contains(err.Error(), "BOOKING_JWT_SECRET") {
		t.Fatalf("expected error to name the missing variable, got %v", err)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	t.Setenv("BOOKING_JWT_SECRET", "s3cret")
	t.Setenv("BOOKING_HTTP_PORT", "not-a-port")
	t.Setenv("BOOKING_TOKEN_TTL", "-5m")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for invalid values")
	}
	if !strings.Contains(err.Error(), "BOOKING_HTTP_PORT") || !strings.Contains(err.Error(), "BOOKING_TOKEN_TTL") {
		t.Fatalf("expected both invalid variables to be reported, got %v", err)
	}
}
