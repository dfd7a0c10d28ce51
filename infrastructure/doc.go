// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
//   - cache/memory: in-memory cache on patrickmn/go-cache
//   - cache/redis: Redis cache on redis/go-redis
//   - cache/sqlite: file-backed cache on mattn/go-sqlite3
//   - http/standard: net/http client with redirect cap and charset-aware bodies
//   - engine/readability, engine/trafilatura: extraction engines, and a chain of both
//   - browser/rod: live pages and viewer tabs driven through go-rod
//   - markdown: article to Markdown rendering
//   - logger/logrus: structured logger with optional rotated file output
//
// # Cache
//
//	cache := memory.NewMemoryCache(time.Hour)
//	err := cache.Set(ctx, "key", []byte("value"), time.Hour)
//	value, err := cache.Get(ctx, "key")
//
// # HTTP Client
//
//	client := standard.NewStandardHTTPClient(0, standard.WithMaxRedirects(5))
//	resp, err := client.Get(ctx, "https://example.com")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger := logrus.New(logrus.Options{Level: "info", Format: "json"})
//	logger.Info("Article extracted", map[string]interface{}{
//	    "url":    "https://example.com/story",
//	    "length": 812,
//	})
package infrastructure
