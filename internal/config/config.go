package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Logging
	LogFile string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// AdminAPIKey guards the system-wide admin routes. Empty disables them.
	AdminAPIKey string

	// Cache
	CacheDriver   string // none | memory | redis
	CacheTTL      time.Duration
	CacheSize     int
	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// Export
	ExportPath string

	// Ledger behaviour switches. The defaults keep the historical behaviour.
	ReconcileOnEdit         bool
	ApplySearchDateFilter   bool
	ApplySearchAmountFilter bool
	ApplyStatisticsInterval bool
	CurrencyLimitMode       string // amount | limit
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:    getEnv("PORT", "8080"),
		Env:     getEnv("ENV", "development"),
		LogFile: getEnv("LOG_FILE", ""),

		JWTSecret:   getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),

		CacheDriver:   getEnv("CACHE_DRIVER", "memory"),
		CacheSize:     getEnvInt("CACHE_SIZE", 1024),
		RedisAddress:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		ExportPath: getEnv("EXPORT_PATH", "exports/transactions.txt"),

		ReconcileOnEdit:         getEnvBool("RECONCILE_ON_EDIT", false),
		ApplySearchDateFilter:   getEnvBool("SEARCH_APPLY_DATE_FILTER", false),
		ApplySearchAmountFilter: getEnvBool("SEARCH_APPLY_AMOUNT_FILTER", false),
		ApplyStatisticsInterval: getEnvBool("STATS_APPLY_INTERVAL", false),
		CurrencyLimitMode:       getEnv("CURRENCY_LIMIT_MODE", "amount"),
	}

	config.JWTExpirationDur = getEnvDuration("JWT_EXPIRES_IN", 24*time.Hour)
	config.CacheTTL = getEnvDuration("CACHE_TTL", 10*time.Minute)

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getEnvBool(key string, defaultValue bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %t\n", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return v
}
