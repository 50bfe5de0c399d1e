package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full configuration surface, read from the environment
// (optionally seeded from a .env file).
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr string
	RedisPwd  string

	WebOrigin  string
	SessionTTL time.Duration

	// First admin created at startup when the user table is empty.
	BootstrapAdmin    string
	BootstrapPassword string
}

func Load() (*Config, error) {
	// Missing .env files are fine; config may come from the environment.
	_ = godotenv.Load()

	ttl := 24 * time.Hour
	if v := os.Getenv("SESSION_TTL_SECONDS"); v != "" {
		d, err := time.ParseDuration(v + "s")
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL_SECONDS: %w", err)
		}
		ttl = d
	}

	cfg := &Config{
		Port:       getenv("PORT", "3001"),
		DBHost:     getenv("DB_HOST", "127.0.0.1"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getenv("DB_NAME", "asset_circulation"),

		RedisAddr: getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:  os.Getenv("REDIS_PASSWORD"),

		WebOrigin:  getenv("WEB_ORIGIN", "http://localhost:3000"),
		SessionTTL: ttl,

		BootstrapAdmin:    strings.TrimSpace(os.Getenv("BOOTSTRAP_ADMIN")),
		BootstrapPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.DBName == "" {
		return errors.New("DB_NAME must not be empty")
	}
	if c.RedisAddr == "" {
		return errors.New("REDIS_ADDR must not be empty")
	}
	return nil
}

func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
