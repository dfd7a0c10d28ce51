// ABOUTME: Extraction engine contract shared by the fetch and in-page extractors
// ABOUTME: The readability algorithm stays opaque behind a single method

package interfaces

import (
	"net/url"

	"readerview/core/domain"

	"golang.org/x/net/html"
)

// ExtractionEngine turns a document tree into an article.
//
// Extract returns (nil, nil) when the document holds no article. An error is
// reserved for failures of the engine itself. Implementations may mutate doc,
// so callers pass a tree they own.
type ExtractionEngine interface {
	Extract(doc *html.Node, pageURL *url.URL) (*domain.Extraction, error)
}
