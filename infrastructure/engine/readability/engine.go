// ABOUTME: Extraction engine backed by go-shiori/go-readability
// ABOUTME: The primary engine for both the fetch path and Go-side in-page extraction

package readability

import (
	"net/url"
	"strings"

	"readerview/core/domain"
	"readerview/core/interfaces"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// Ensure Engine implements interfaces.ExtractionEngine at compile time.
var _ interfaces.ExtractionEngine = (*Engine)(nil)

// Engine wraps go-readability.
type Engine struct{}

// NewEngine creates a new Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Extract runs readability over doc. Readability reports "no article" as an
// error or as an empty result; both become a nil extraction.
func (e *Engine) Extract(doc *html.Node, pageURL *url.URL) (*domain.Extraction, error) {
	if doc == nil {
		return nil, nil
	}

	article, err := readability.FromDocument(doc, pageURL)
	if err != nil {
		return nil, nil
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, nil
	}

	return &domain.Extraction{
		Title:       article.Title,
		Byline:      article.Byline,
		Content:     article.Content,
		TextContent: article.TextContent,
		Excerpt:     article.Excerpt,
		SiteName:    article.SiteName,
	}, nil
}
