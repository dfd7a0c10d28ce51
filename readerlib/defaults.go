// ABOUTME: Default implementations for library dependencies
// ABOUTME: Provides factory functions for creating default service implementations

package readerlib

import (
	"os"

	"readerview/core/interfaces"
	"readerview/infrastructure/cache/memory"
	"readerview/infrastructure/cache/sqlite"
	"readerview/infrastructure/engine/readability"
	httpInfra "readerview/infrastructure/http/standard"
	"readerview/infrastructure/logger/logrus"
)

// DefaultHTTPClient creates a browser-like HTTP client; deadlines come from the request context
func DefaultHTTPClient() interfaces.HTTPClient {
	return httpInfra.NewStandardHTTPClient(0)
}

// DefaultMemoryCache creates a default in-memory cache
func DefaultMemoryCache() interfaces.Cache {
	return memory.NewMemoryCache(0)
}

// DefaultSQLiteCache creates a SQLite cache with the given file path
func DefaultSQLiteCache(filePath string, logger interfaces.Logger) (interfaces.Cache, error) {
	return sqlite.NewSQLiteCache(filePath, logger)
}

// DefaultLogger creates a text logger writing warnings and errors to stderr
func DefaultLogger() interfaces.Logger {
	return logrus.New(logrus.Options{
		Level:  "warn",
		Format: "text",
		Output: os.Stderr,
	})
}

// QuietLogger creates a logger that discards all output
func QuietLogger() interfaces.Logger {
	return &quietLogger{}
}

type quietLogger struct{}

func (q *quietLogger) Debug(msg string, fields map[string]interface{}) {}
func (q *quietLogger) Info(msg string, fields map[string]interface{})  {}
func (q *quietLogger) Warn(msg string, fields map[string]interface{})  {}
func (q *quietLogger) Error(msg string, fields map[string]interface{}) {}

// CacheType represents the type of cache
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeSQLite CacheType = "sqlite"
)

// CacheOption represents cache configuration options
type CacheOption struct {
	Type     CacheType
	FilePath string // For SQLite cache
}

// WithCacheOption creates a cache based on the provided options
func WithCacheOption(opt CacheOption) Option {
	return func(c *Config) error {
		switch opt.Type {
		case CacheTypeMemory:
			c.Cache = DefaultMemoryCache()
		case CacheTypeSQLite:
			if opt.FilePath == "" {
				opt.FilePath = "readerview_cache.db"
			}
			logger := c.Logger
			if logger == nil {
				logger = DefaultLogger()
			}
			cache, err := DefaultSQLiteCache(opt.FilePath, logger)
			if err != nil {
				return NewError(ErrorTypeConfiguration, "failed to open sqlite cache").WithCause(err)
			}
			c.Cache = cache
		default:
			return NewError(ErrorTypeConfiguration, "invalid cache type").
				WithContext("type", string(opt.Type))
		}
		return nil
	}
}

// WithQuietMode configures the client to suppress all log output
func WithQuietMode() Option {
	return func(c *Config) error {
		c.Logger = QuietLogger()
		return nil
	}
}

func fillDefaults(c *Config) error {
	if c.Logger == nil {
		c.Logger = DefaultLogger()
	}
	if c.HTTPClient == nil {
		c.HTTPClient = DefaultHTTPClient()
	}
	if c.Cache == nil {
		c.Cache = DefaultMemoryCache()
	}
	if c.Engine == nil {
		c.Engine = readability.NewEngine()
	}
	return nil
}
