// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation, CORS, request logging and rate limiting

package api

import (
	"context"
	"net/http"
	"time"

	"readerview/api/middleware"
	"readerview/core/interfaces"
	"readerview/pkg/featureflags"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

const (
	// Title is the OpenAPI title of the service
	Title = "Reader View API"

	// Version is the OpenAPI version of the service
	Version = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger      interfaces.Logger
	Flags       featureflags.Manager
	RateLimit   int           // requests per window
	RateWindow  time.Duration // rate limit window
	CORSOrigins []string
}

// NewAPI creates and configures a new Huma API instance without middleware
func NewAPI() (huma.API, chi.Router) {
	router := chi.NewRouter()
	router.Use(corsHandler(nil))

	return humachi.New(router, humaConfig()), router
}

// NewAPIWithMiddleware creates a new API with middleware configured. The
// returned stop function releases the rate limiter's background cleanup.
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router, func()) {
	router := chi.NewRouter()

	// CORS first so preflight requests are never rate limited
	router.Use(corsHandler(cfg.CORSOrigins))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	stop := func() {}
	flags := cfg.Flags
	if flags == nil {
		flags = featureflags.NewEnvManager("")
	}
	if cfg.RateLimit > 0 && cfg.RateWindow > 0 && flags.IsEnabled(context.Background(), featureflags.RateLimit) {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(middleware.RateLimitMiddleware(limiter))
		stop = limiter.Stop
	}

	return humachi.New(router, humaConfig()), router, stop
}

func humaConfig() huma.Config {
	config := huma.DefaultConfig(Title, Version)
	config.Info.Description = "Extracts the readable body of web articles and serves the bookmarklet and viewer that deliver them"

	// Bodies stay exactly {success, data} or {error}, without a $schema link.
	config.CreateHooks = nil

	return config
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
		MaxAge:         300,
	})
}
