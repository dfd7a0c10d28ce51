// Package core contains the business logic of the reader service.
// It does not depend on the HTTP framework or on any concrete browser,
// cache or logger.
//
// The core package is organized into several sub-packages:
//
//   - domain: Article, Envelope, BatchResult and the other value types
//   - reader: Fetch-Extractor, the server-side fetch and extract pipeline
//   - inpage: In-Page Extractor, run against a live page through the Page seam
//   - sanitize: removal of presentation attributes from extracted HTML
//   - article: assembly of an Article from an engine extraction
//   - delivery: Delivery Channel, repeated posts of one article to a viewer
//   - receiver: Receiver, the viewer-side state machine with first-valid-wins
//   - capability: fetches and caches the engine script for injected pages
//   - errors: the classified ExtractionError taxonomy
//   - interfaces: contracts for external dependencies (cache, HTTP, engine, logger)
//
// # Usage Example
//
//	import (
//	    "readerview/core/interfaces"
//	    "readerview/core/reader"
//	)
//
//	deps := interfaces.Dependencies{
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Engine:     myEngine,     // implements interfaces.ExtractionEngine
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	svc := reader.NewService(deps, reader.WithTimeout(8*time.Second))
//	article, err := svc.Extract(ctx, "https://example.com/story")
package core
