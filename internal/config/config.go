package config

import (
	"os"
	"strconv"
	"time"
)

// Store backends
const (
	StoreHTTP     = "http"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Document store
	StoreBackend    string // http, postgres, sqlite or memory
	RemoteAPIURL    string // base URL of the document API (http backend)
	RemoteTimeout   time.Duration
	RemoteRateLimit float64 // calls per second, 0 = unlimited
	DatabaseURL     string
	TablePrefix     string
	SQLitePath      string
	// Auth: JWKS_URL wins over JWT_SECRET; neither means every request is DevUserID
	JWKSURL   string
	JWTSecret string
	DevUserID string
	// Sessions
	SessionIdleTimeout time.Duration
	// Logging
	LogDir      string
	LogMaxFiles int
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        env,
		CORSOrigins:        getEnv("CORS_ORIGINS", "http://localhost:3000"),
		StoreBackend:       getEnv("STORE_BACKEND", StoreHTTP),
		RemoteAPIURL:       getEnv("REMOTE_API_URL", "http://localhost:8000/api"),
		RemoteTimeout:      getDuration("REMOTE_TIMEOUT", 15*time.Second),
		RemoteRateLimit:    getFloat("REMOTE_RATE_LIMIT", 0),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		TablePrefix:        getTablePrefix(env),
		SQLitePath:         getEnv("SQLITE_PATH", "data/vault.db"),
		JWKSURL:            getEnv("JWKS_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		DevUserID:          getEnv("DEV_USER_ID", "dev"),
		SessionIdleTimeout: getDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		LogDir:             getEnv("LOG_DIR", ""),
		LogMaxFiles:        getInt("LOG_MAX_FILES", 10),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true" // Enable DEBUG in dev/test by default
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return defaultValue
}
