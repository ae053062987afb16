package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Redis      RedisConfig
	Compliance ComplianceConfig
	JWT        JWTConfig
	Autosave   AutosaveConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// StorageConfig holds local draft storage configuration
type StorageConfig struct {
	// SQLitePath is the path of the durable draft database. ":memory:" is
	// accepted for tests.
	SQLitePath string
}

// DSN returns the SQLite connection string
func (c StorageConfig) DSN() string {
	return "file:" + c.SQLitePath + "?_busy_timeout=5000"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// ComplianceConfig holds the remote compliance service configuration
type ComplianceConfig struct {
	BaseURL string
	Timeout time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// AutosaveConfig holds the draft autosave debounce configuration
type AutosaveConfig struct {
	Delay time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Storage: StorageConfig{
			SQLitePath: getEnv("DRAFT_DB_PATH", "onboarding.db"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		Compliance: ComplianceConfig{
			BaseURL: getEnv("COMPLIANCE_API_URL", "http://localhost:9090"),
			Timeout: getEnvAsDuration("COMPLIANCE_API_TIMEOUT", 30*time.Second),
		},
		JWT: JWTConfig{
			Secret:       getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		},
		Autosave: AutosaveConfig{
			Delay: getEnvAsDuration("AUTOSAVE_DELAY", 400*time.Millisecond),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
