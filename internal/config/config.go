package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Env         string
	Store       string // "memory" or "gorm"
	DatabaseDSN string
	// AdminUsername/AdminPassword are the single hardcoded credential
	// the dashboard accepts; the password is bcrypt-hashed at startup.
	AdminUsername string
	AdminPassword string
	// MockLatency is the simulated backend delay of the memory store.
	MockLatency time.Duration
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.Store = getEnv("STORE", "memory")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "file:diamondadmin.db")
	cfg.AdminUsername = getEnv("ADMIN_USERNAME", "admin")
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", "admin")
	cfg.MockLatency = time.Duration(parseInt("MOCK_LATENCY_MS", 0)) * time.Millisecond
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid integer for %s: %s", key, v)
			return def
		}
		return n
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
