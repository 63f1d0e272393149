// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultPort       = "9001"
	defaultDBPath     = "notevault.db"
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 72 * time.Hour
	defaultBcryptCost = 12
)

// Config holds every externally supplied setting. The signing secret
// has no default: a server must never start with a guessable key.
type Config struct {
	Port       string
	DBPath     string
	JWTSecret  []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	BcryptCost int
}

// Load reads configuration from the environment, after merging in a
// .env file if one exists next to the binary.
func Load() (*Config, error) {
	// missing .env is fine, the environment may be set by the host
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("missing required env var 'JWT_SECRET'")
	}

	cfg := &Config{
		Port:      envOr("PORT", defaultPort),
		DBPath:    envOr("DB_PATH", defaultDBPath),
		JWTSecret: []byte(secret),
	}

	var err error
	if cfg.AccessTTL, err = envDuration("ACCESS_TOKEN_TTL", defaultAccessTTL); err != nil {
		return nil, err
	}
	if cfg.RefreshTTL, err = envDuration("REFRESH_TOKEN_TTL", defaultRefreshTTL); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = envInt("BCRYPT_COST", defaultBcryptCost); err != nil {
		return nil, err
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST %d outside valid range [%d, %d]",
			cfg.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	return cfg, nil
}

func envOr(name string, fallback string) string {
	if v, present := os.LookupEnv(name); present {
		return v
	}
	return fallback
}

func envDuration(name string, fallback time.Duration) (time.Duration, error) {
	v, present := os.LookupEnv(name)
	if !present {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("env var '%s' is not a valid duration (%q): %v", name, v, err)
	}
	return d, nil
}

func envInt(name string, fallback int) (int, error) {
	v, present := os.LookupEnv(name)
	if !present {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("env var '%s' is not a valid integer (%q): %v", name, v, err)
	}
	return i, nil
}
