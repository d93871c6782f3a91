// Package config loads process-wide configuration from the environment.
// It is read once at startup; components receive values through their
// constructors instead of reading the environment themselves.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Default values applied when the corresponding variable is unset.
const (
	defaultPort       = "8080"
	defaultBcryptCost = 10
	defaultUploadDir  = "public/uploads"
)

// Config holds every setting the server needs.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// DatabaseDSN is the PostgreSQL connection string.
	DatabaseDSN string

	// RunMigrations enables schema auto-migration at startup.
	RunMigrations bool

	// JWTSecret signs and verifies session tokens. Required.
	JWTSecret string

	// BcryptCost is the password hashing work factor.
	BcryptCost int

	// UploadDir is where profile pictures are stored.
	UploadDir string

	// RedisAddr is the cache address ("" disables caching).
	RedisAddr string

	// RedisPassword is the cache password.
	RedisPassword string
}

// Load reads the configuration from environment variables.
// A missing JWT_SECRET is a startup-fatal condition and returns an error.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	cfg := &Config{
		Port:          getEnv("APP_PORT", defaultPort),
		DatabaseDSN:   buildDSN(),
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",
		JWTSecret:     secret,
		BcryptCost:    defaultBcryptCost,
		UploadDir:     getEnv("UPLOAD_DIR", defaultUploadDir),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST %q: %w", v, err)
		}
		cfg.BcryptCost = cost
	}

	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.RedisAddr = host + ":" + getEnv("REDIS_PORT", "6379")
	}

	return cfg, nil
}

// buildDSN assembles the PostgreSQL DSN from the DB_* variables.
func buildDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		getEnv("DB_PORT", "5432"),
	)
}

// getEnv returns the variable's value or a fallback when unset.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
