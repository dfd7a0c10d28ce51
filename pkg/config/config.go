// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defaults, then an optional YAML file named by CONFIG_FILE, then environment overrides

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"readerview/pkg/utils/duration"
	"readerview/pkg/utils/parse"

	yaml "gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `yaml:"server"`

	// Fetch contains server-side extraction settings
	Fetch FetchConfig `yaml:"fetch"`

	// Engine contains the in-page engine script settings
	Engine EngineConfig `yaml:"engine"`

	// Cache contains cache configuration
	Cache CacheConfig `yaml:"cache"`

	// RateLimit contains API rate limiting settings
	RateLimit RateLimitConfig `yaml:"rateLimit"`

	// Log contains logging settings
	Log LogConfig `yaml:"log"`

	// CORSOrigins lists allowed origins; empty allows all
	CORSOrigins []string `yaml:"corsOrigins"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `yaml:"port"`

	// ViewerURL is the public address of the viewer page. Empty means
	// http://localhost:<port>/reader.
	ViewerURL string `yaml:"viewerURL"`

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// FetchConfig holds server-side extraction settings
type FetchConfig struct {
	// Timeout bounds each outbound article fetch
	Timeout time.Duration `yaml:"timeout"`

	// Engine is readability, trafilatura or chain
	Engine string `yaml:"engine"`

	// Concurrency bounds parallel fetches in a batch
	Concurrency int `yaml:"concurrency"`
}

// EngineConfig holds the in-page engine script settings
type EngineConfig struct {
	// Sources are CDN addresses of the engine script, tried in order
	Sources []string `yaml:"sources"`

	// CacheTTL is how long a fetched script is reused
	CacheTTL time.Duration `yaml:"cacheTTL"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string `yaml:"type"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig `yaml:"redis"`

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Memory contains in-memory cache configuration
	Memory MemoryConfig `yaml:"memory"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `yaml:"address"`

	// Password is the Redis authentication password
	Password string `yaml:"password"`

	// DB is the Redis database number
	DB int `yaml:"db"`
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string `yaml:"path"`
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries
	DefaultExpiration time.Duration `yaml:"defaultExpiration"`
}

// RateLimitConfig holds API rate limiting settings
type RateLimitConfig struct {
	// Limit is the number of requests allowed per window; 0 disables limiting
	Limit int `yaml:"limit"`

	// Window is the rate limit window
	Window time.Duration `yaml:"window"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`

	// File, when set, receives a rotated copy of the log
	File string `yaml:"file"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			ShutdownTimeout: 30 * time.Second,
		},
		Fetch: FetchConfig{
			Timeout:     8 * time.Second,
			Engine:      "readability",
			Concurrency: 4,
		},
		Engine: EngineConfig{
			Sources: []string{
				"https://cdn.jsdelivr.net/npm/@mozilla/readability@0.5.0/Readability.min.js",
				"https://unpkg.com/@mozilla/readability@0.5.0/Readability.js",
			},
			CacheTTL: 24 * time.Hour,
		},
		Cache: CacheConfig{
			Type: "memory",
			Redis: RedisConfig{
				Address: "localhost:6379",
			},
			SQLite: SQLiteConfig{
				Path: "readerview-cache.db",
			},
			Memory: MemoryConfig{
				DefaultExpiration: time.Hour,
			},
		},
		RateLimit: RateLimitConfig{
			Limit:  60,
			Window: time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadFromEnv loads configuration from defaults, the file named by
// CONFIG_FILE if any, and environment variables, in that order
func LoadFromEnv() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if cfg.Server.ViewerURL == "" {
		cfg.Server.ViewerURL = "http://localhost:" + cfg.Server.Port + "/reader"
	}

	return cfg, nil
}

// LoadFile overlays the YAML document at path onto c. Keys absent from the
// file keep their current values.
func (c *Config) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnvOrDefault("PORT", c.Server.Port)
	c.Server.ViewerURL = getEnvOrDefault("VIEWER_URL", c.Server.ViewerURL)
	c.Server.ShutdownTimeout = getEnvAsDurationOrDefault("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Fetch.Timeout = getEnvAsDurationOrDefault("FETCH_TIMEOUT", c.Fetch.Timeout)
	c.Fetch.Engine = getEnvOrDefault("ENGINE", c.Fetch.Engine)
	c.Fetch.Concurrency = getEnvAsIntOrDefault("FETCH_CONCURRENCY", c.Fetch.Concurrency)

	c.Engine.Sources = getEnvAsListOrDefault("ENGINE_SOURCES", c.Engine.Sources)
	c.Engine.CacheTTL = getEnvAsDurationOrDefault("ENGINE_CACHE_TTL", c.Engine.CacheTTL)

	c.Cache.Type = getEnvOrDefault("CACHE_TYPE", c.Cache.Type)
	c.Cache.Redis.Address = getEnvOrDefault("REDIS_ADDRESS", c.Cache.Redis.Address)
	c.Cache.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", c.Cache.Redis.Password)
	c.Cache.Redis.DB = getEnvAsIntOrDefault("REDIS_DB", c.Cache.Redis.DB)
	c.Cache.SQLite.Path = getEnvOrDefault("SQLITE_PATH", c.Cache.SQLite.Path)
	c.Cache.Memory.DefaultExpiration = getEnvAsDurationOrDefault("MEMORY_CACHE_EXPIRATION", c.Cache.Memory.DefaultExpiration)

	c.RateLimit.Limit = getEnvAsIntOrDefault("RATE_LIMIT", c.RateLimit.Limit)
	c.RateLimit.Window = getEnvAsDurationOrDefault("RATE_WINDOW", c.RateLimit.Window)

	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvOrDefault("LOG_FORMAT", c.Log.Format)
	c.Log.File = getEnvOrDefault("LOG_FILE", c.Log.File)

	c.CORSOrigins = getEnvAsListOrDefault("CORS_ORIGINS", c.CORSOrigins)
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
	return parse.IntOrDefault(os.Getenv(key), defaultValue)
}

// getEnvAsDurationOrDefault accepts Go durations ("8s"), bare seconds or MM:SS
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if d, ok := duration.Parse(os.Getenv(key)); ok {
		return d
	}
	return defaultValue
}

// getEnvAsListOrDefault splits a comma separated variable
func getEnvAsListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if u, err := url.Parse(c.Server.ViewerURL); err != nil || !u.IsAbs() || u.Host == "" {
		return errors.New("viewer URL must be an absolute URL")
	}

	if c.Fetch.Timeout <= 0 {
		return errors.New("fetch timeout must be positive")
	}

	switch c.Fetch.Engine {
	case "readability", "trafilatura", "chain":
	default:
		return errors.New("engine must be 'readability', 'trafilatura' or 'chain'")
	}

	if len(c.Engine.Sources) == 0 {
		return errors.New("at least one engine source is required")
	}

	switch c.Cache.Type {
	case "memory":
	case "redis":
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	case "sqlite":
		if c.Cache.SQLite.Path == "" {
			return errors.New("sqlite path cannot be empty when using sqlite cache")
		}
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.RateLimit.Limit < 0 {
		return errors.New("rate limit cannot be negative")
	}
	if c.RateLimit.Limit > 0 && c.RateLimit.Window <= 0 {
		return errors.New("rate window must be positive when rate limiting is enabled")
	}

	return nil
}
