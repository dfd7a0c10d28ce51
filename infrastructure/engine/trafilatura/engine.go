// ABOUTME: Extraction engine backed by markusmobius/go-trafilatura
// ABOUTME: Used on its own or as the second link of the engine chain

package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"readerview/core/domain"
	"readerview/core/interfaces"

	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Engine implements interfaces.ExtractionEngine at compile time.
var _ interfaces.ExtractionEngine = (*Engine)(nil)

// Engine wraps go-trafilatura to extract the main content of a document.
type Engine struct{}

// NewEngine creates a new Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Extract renders doc back to markup and runs trafilatura over it.
func (e *Engine) Extract(doc *html.Node, pageURL *url.URL) (*domain.Extraction, error) {
	if doc == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, err
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		OriginalURL:    pageURL,
	}

	result, err := trafilatura.Extract(&buf, opts)
	if err != nil || result == nil || result.ContentNode == nil {
		return nil, nil
	}
	if strings.TrimSpace(result.ContentText) == "" {
		return nil, nil
	}

	var content bytes.Buffer
	if err := html.Render(&content, result.ContentNode); err != nil {
		return nil, err
	}

	return &domain.Extraction{
		Title:       result.Metadata.Title,
		Byline:      result.Metadata.Author,
		Content:     content.String(),
		TextContent: result.ContentText,
		Excerpt:     result.Metadata.Description,
		SiteName:    result.Metadata.Sitename,
	}, nil
}
