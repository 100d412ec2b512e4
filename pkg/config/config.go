// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, and Bluesky defaults

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Bluesky contains environment-level defaults for feed fetching
	Bluesky BlueskyConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the cache database file path
	Path string
}

// BlueskyConfig holds environment-level defaults for feed fetching.
// Each field can be overridden per call; see bluesky.Options.
type BlueskyConfig struct {
	// Handle is the default account to fetch
	Handle string

	// Limit is the default number of items to return
	Limit int

	// Cache enables result memoization by default
	Cache bool

	// Replies includes reply entries by default
	Replies bool

	// Images includes attached images by default
	Images bool

	// External includes link-preview cards by default
	External bool

	// OnlyPosts restricts output to plain posts by default
	OnlyPosts bool

	// Boost widens the upstream over-fetch window for heavily
	// filtered feeds
	Boost bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8000"),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("SQLITE_CACHE_PATH", "cache.db"),
			},
		},
		Bluesky: BlueskyConfig{
			Handle:    getEnvOrDefault("BLUESKY_HANDLE", "bsky.app"),
			Limit:     getEnvAsIntOrDefault("BLUESKY_LIMIT", 7),
			Cache:     getEnvAsBoolOrDefault("BLUESKY_CACHE", false),
			Replies:   getEnvAsBoolOrDefault("BLUESKY_REPLIES", true),
			Images:    getEnvAsBoolOrDefault("BLUESKY_IMAGES", true),
			External:  getEnvAsBoolOrDefault("BLUESKY_EXTERNAL", true),
			OnlyPosts: getEnvAsBoolOrDefault("BLUESKY_ONLY_POSTS", false),
			Boost:     getEnvAsBoolOrDefault("BLUESKY_BOOST", false),
		},
	}

	return cfg, nil
}

// ParseBool interprets a boolean string permissively: "true", "1",
// "yes" and "on" are true, anything else (including empty and
// unrecognized values) is false. The same interpretation applies to
// environment values and call-time parameters.
func ParseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue >= 0 {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault returns the environment variable parsed with
// ParseBool, or a default when the variable is unset
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		return ParseBool(value)
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	switch c.Cache.Type {
	case "memory", "redis", "sqlite":
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Bluesky.Handle == "" {
		return errors.New("bluesky handle cannot be empty")
	}

	if c.Bluesky.Limit < 0 {
		return errors.New("bluesky limit cannot be negative")
	}

	return nil
}
