// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// JWTConfig provides JWT validation settings for middleware.
// An empty secret leaves the API unauthenticated.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// RateLimitConfig provides the per-IP request budget.
type RateLimitConfig interface {
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// MetadataConfig selects the numbering plan source.
type MetadataConfig interface {
	// GetMetadataFile is a YAML metadata file; empty means the bundled upstream plans.
	GetMetadataFile() string
}

// NumbersConfig provides settings for the numbers module.
type NumbersConfig interface {
	GetDefaultRegion() string
	GetBatchMaxItems() int
	GetBatchConcurrency() int
}

// CacheConfig provides settings for the inspection result cache.
type CacheConfig interface {
	GetRedisURL() string
	GetCacheTTL() time.Duration
	IsCacheEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env              string
	HTTPAddr         string
	JWTAccessSecret  string
	CORSAllowAll     bool
	CORSOrigins      []string
	CORSAllowCreds   bool
	RateLimitRPS     float64
	RateLimitBurst   int
	MetadataFile     string
	DefaultRegion    string
	BatchMaxItems    int
	BatchConcurrency int
	RedisURL         string
	CacheTTL         time.Duration
}

// =============================================================================
// Interface Implementations
// =============================================================================

// JWTConfig
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// RateLimitConfig
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// MetadataConfig
func (c *Config) GetMetadataFile() string { return c.MetadataFile }

// NumbersConfig
func (c *Config) GetDefaultRegion() string { return c.DefaultRegion }
func (c *Config) GetBatchMaxItems() int    { return c.BatchMaxItems }
func (c *Config) GetBatchConcurrency() int { return c.BatchConcurrency }

// CacheConfig
func (c *Config) GetRedisURL() string        { return c.RedisURL }
func (c *Config) GetCacheTTL() time.Duration { return c.CacheTTL }
func (c *Config) IsCacheEnabled() bool       { return c.RedisURL != "" }

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		JWTAccessSecret:  getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:     corsAllowAll,
		CORSOrigins:      corsOrigins,
		CORSAllowCreds:   strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		RateLimitRPS:     mustFloat(getEnv("RATE_LIMIT_RPS", "20")),
		RateLimitBurst:   mustInt(getEnv("RATE_LIMIT_BURST", "40")),
		MetadataFile:     getEnv("METADATA_FILE", ""),
		DefaultRegion:    strings.ToUpper(strings.TrimSpace(getEnv("DEFAULT_REGION", ""))),
		BatchMaxItems:    mustInt(getEnv("BATCH_MAX_ITEMS", "1000")),
		BatchConcurrency: mustInt(getEnv("BATCH_CONCURRENCY", "8")),
		RedisURL:         getEnv("REDIS_URL", ""),
		CacheTTL:         mustDuration(getEnv("CACHE_TTL", "24h")),
	}

	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if cfg.BatchMaxItems <= 0 || cfg.BatchConcurrency <= 0 {
		return nil, fmt.Errorf("BATCH_MAX_ITEMS and BATCH_CONCURRENCY must be positive")
	}
	if cfg.IsCacheEnabled() && cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("CACHE_TTL must be a positive duration when REDIS_URL is set")
	}
	if cfg.DefaultRegion != "" && len(cfg.DefaultRegion) != 2 {
		return nil, fmt.Errorf("DEFAULT_REGION must be a two-letter region code")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
