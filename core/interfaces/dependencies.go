// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the core business logic

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache stores fetched capability scripts
	Cache Cache

	// HTTPClient provides outbound HTTP requests
	HTTPClient HTTPClient

	// Engine extracts articles from parsed documents
	Engine ExtractionEngine

	// Logger provides structured logging
	Logger Logger
}
