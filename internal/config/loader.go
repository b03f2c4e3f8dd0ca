package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config captures environment driven configuration values for the booking
// service.
type Config struct {
	HTTPPort   int
	SQLiteDSN  string
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// Load parses configuration values from the current process environment.
//
// Optional fields fall back to defaults; the JWT secret is required. Missing
// and invalid entries are aggregated so operators see every problem at once.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:   8080,
		SQLiteDSN:  "file:booking.db",
		TokenTTL:   24 * time.Hour,
		BcryptCost: bcrypt.DefaultCost,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("BOOKING_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "BOOKING_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("BOOKING_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if secret := strings.TrimSpace(os.Getenv("BOOKING_JWT_SECRET")); secret == "" {
		missing = append(missing, "BOOKING_JWT_SECRET")
	} else {
		cfg.JWTSecret = secret
	}

	if ttlValue := strings.TrimSpace(os.Getenv("BOOKING_TOKEN_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "BOOKING_TOKEN_TTL")
		} else {
			cfg.TokenTTL = ttl
		}
	}

	if costValue := strings.TrimSpace(os.Getenv("BOOKING_BCRYPT_COST")); costValue != "" {
		cost, err := strconv.Atoi(costValue)
		if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			invalid = append(invalid, "BOOKING_BCRYPT_COST")
		} else {
			cfg.BcryptCost = cost
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
