// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Row limit defaults. The row limit caps how many records a single table
// renders; results at or above the cap are reported as possibly truncated.
const (
	DefaultRowLimitValue = 10
	MaxRowLimitValue     = 200
)

// Config holds all configuration for the graphtable MCP server.
type Config struct {
	DataAPIBaseURL    string        // GRAPHTABLE_BASE_URL, default "http://localhost:8080"
	HTTPClientTimeout time.Duration // HTTP_CLIENT_TIMEOUT_MS, default 10000ms (10s)

	DefaultRowLimit     int // DEFAULT_ROW_LIMIT, default 10
	MaxRowLimit         int // MAX_ROW_LIMIT, default 200
	ResultCacheMaxItems int // RESULT_CACHE_MAX_ITEMS, default 128

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		DataAPIBaseURL:    getEnvString("GRAPHTABLE_BASE_URL", "http://localhost:8080"),
		HTTPClientTimeout: getEnvDurationMs("HTTP_CLIENT_TIMEOUT_MS", 10000),

		DefaultRowLimit:     getEnvInt("DEFAULT_ROW_LIMIT", DefaultRowLimitValue),
		MaxRowLimit:         getEnvInt("MAX_ROW_LIMIT", MaxRowLimitValue),
		ResultCacheMaxItems: getEnvInt("RESULT_CACHE_MAX_ITEMS", 128),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// ClampRowLimit resolves a requested row limit against the configured
// default and maximum.
func (c *Config) ClampRowLimit(requested int) int {
	if requested <= 0 {
		return c.DefaultRowLimit
	}
	if requested > c.MaxRowLimit {
		return c.MaxRowLimit
	}
	return requested
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
