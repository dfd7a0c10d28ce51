// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts the API handlers and the library client depend on

package interfaces

import (
	"context"

	"readerview/core/domain"
)

// ReaderService extracts articles from remote URLs.
type ReaderService interface {
	// Extract fetches url and returns its article or a classified error.
	Extract(ctx context.Context, url string) (*domain.Article, error)

	// ExtractMany runs Extract for every URL with bounded concurrency.
	// Results are returned in input order.
	ExtractMany(ctx context.Context, urls []string) []domain.BatchResult
}

// CapabilityService provides the extraction engine script loaded by injected pages.
type CapabilityService interface {
	// Script returns the engine source from the first source that serves it.
	Script(ctx context.Context) (*domain.Script, error)
}
