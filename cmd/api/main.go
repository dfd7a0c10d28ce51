// ABOUTME: Main entry point for the Reader View API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"readerview/api"
	"readerview/api/handlers"
	"readerview/api/middleware"
	"readerview/core/capability"
	"readerview/core/interfaces"
	"readerview/core/reader"
	"readerview/infrastructure/cache/memory"
	"readerview/infrastructure/cache/redis"
	"readerview/infrastructure/cache/sqlite"
	"readerview/infrastructure/engine"
	stdhttp "readerview/infrastructure/http/standard"
	"readerview/infrastructure/logger/logrus"
	"readerview/pkg/config"
	"readerview/pkg/featureflags"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger := logrus.New(logrus.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	defer logger.Close()

	logger.Info("Starting Reader View API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"engine":     cfg.Fetch.Engine,
		"viewer_url": cfg.Server.ViewerURL,
	})

	cache := newCache(cfg.Cache, logger)
	if closer, ok := cache.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	// Outbound fetches are bounded by the reader's own timeout
	httpClient := stdhttp.NewStandardHTTPClient(0,
		stdhttp.WithTransport(&middleware.LoggingRoundTripper{Logger: logger}),
	)

	extractionEngine, err := engine.New(cfg.Fetch.Engine)
	if err != nil {
		log.Fatalf("Invalid engine: %v", err)
	}

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Engine:     extractionEngine,
		Logger:     logger,
	}

	// Create services
	readerService := reader.NewService(deps,
		reader.WithTimeout(cfg.Fetch.Timeout),
		reader.WithConcurrency(cfg.Fetch.Concurrency),
	)
	capabilityService := capability.NewService(deps, cfg.Engine.Sources, cfg.Engine.CacheTTL,
		capability.WithSourceTimeout(cfg.Fetch.Timeout),
	)
	flags := featureflags.NewEnvManager("")

	// Create API with middleware
	humaAPI, router, stopLimiter := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:      logger,
		Flags:       flags,
		RateLimit:   cfg.RateLimit.Limit,
		RateWindow:  cfg.RateLimit.Window,
		CORSOrigins: cfg.CORSOrigins,
	})
	defer stopLimiter()

	// Create and register handlers
	handlers.NewExtractHandler(readerService, flags).RegisterRoutes(humaAPI)

	viewerHandler, err := handlers.NewViewerHandler(capabilityService, flags, logger, handlers.ViewerConfig{
		ViewerURL:     cfg.Server.ViewerURL,
		EngineSources: cfg.Engine.Sources,
	})
	if err != nil {
		log.Fatalf("Invalid viewer configuration: %v", err)
	}
	viewerHandler.RegisterRoutes(router)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	logger.Info("Server stopped", nil)
}

// newCache builds the configured backend. A Redis or SQLite cache that cannot
// be reached falls back to memory.
func newCache(cfg config.CacheConfig, logger interfaces.Logger) interfaces.Cache {
	switch cfg.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			break
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Redis.Address,
		})
		return redisCache
	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.SQLite.Path, logger)
		if err != nil {
			logger.Error("Failed to open SQLite cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			break
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.SQLite.Path,
		})
		return sqliteCache
	}

	logger.Info("Using memory cache", nil)
	return memory.NewMemoryCache(cfg.Memory.DefaultExpiration)
}

func init() {
	fmt.Println(`
    ____                 __             _    ___
   / __ \___  ____ _____/ /__  _____   | |  / (_)__ _      __
  / /_/ / _ \/ __ '/ __  / _ \/ ___/   | | / / / _ \ | /| / /
 / _, _/  __/ /_/ / /_/ /  __/ /       | |/ / /  __/ |/ |/ /
/_/ |_|\___/\__,_/\__,_/\___/_/        |___/_/\___/|__/|__/
	`)
}
