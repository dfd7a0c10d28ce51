// ABOUTME: Loads the Readability engine into a live page and runs it there
// ABOUTME: The engine sees a DOMParser copy of the cloned document, never the live DOM

package rod

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"readerview/core/domain"
	"readerview/core/inpage"
	"readerview/core/interfaces"

	"github.com/go-rod/rod"
	"golang.org/x/net/html"
)

// CharThreshold is the minimum article length the in-page engine accepts.
const CharThreshold = 500

// Ensure Loader implements inpage.Loader at compile time.
var _ inpage.Loader = (*Loader)(nil)

// Loader injects engine scripts into a page.
type Loader struct {
	page *rod.Page
}

// Loaded reports whether the page already defines the engine.
func (l *Loader) Loaded(ctx context.Context) (interfaces.ExtractionEngine, bool) {
	res, err := l.page.Context(ctx).Eval(`() => typeof window.Readability === 'function'`)
	if err != nil || !res.Value.Bool() {
		return nil, false
	}
	return &jsEngine{page: l.page.Context(ctx)}, true
}

// Load adds a script tag for source and waits for it to execute.
func (l *Loader) Load(ctx context.Context, source string) (interfaces.ExtractionEngine, error) {
	if err := l.page.Context(ctx).AddScriptTag(source, ""); err != nil {
		return nil, err
	}
	engine, ok := l.Loaded(ctx)
	if !ok {
		return nil, errors.New("script loaded but did not define Readability")
	}
	return engine, nil
}

// jsEngine runs Readability inside the page.
type jsEngine struct {
	page *rod.Page
}

type jsArticle struct {
	Title       string `json:"title"`
	Byline      string `json:"byline"`
	Content     string `json:"content"`
	TextContent string `json:"textContent"`
	Excerpt     string `json:"excerpt"`
	SiteName    string `json:"siteName"`
}

func (e *jsEngine) Extract(doc *html.Node, _ *url.URL) (*domain.Extraction, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, err
	}

	res, err := e.page.Eval(`(src, threshold) => {
		const doc = new DOMParser().parseFromString(src, 'text/html');
		const a = new window.Readability(doc, { charThreshold: threshold }).parse();
		if (!a) return null;
		return {
			title: a.title || '',
			byline: a.byline || '',
			content: a.content || '',
			textContent: a.textContent || '',
			excerpt: a.excerpt || '',
			siteName: a.siteName || '',
		};
	}`, buf.String(), CharThreshold)
	if err != nil {
		return nil, err
	}
	if res.Value.Nil() {
		return nil, nil
	}

	var a jsArticle
	if err := json.Unmarshal([]byte(res.Value.JSON("", "")), &a); err != nil {
		return nil, err
	}

	return &domain.Extraction{
		Title:       a.Title,
		Byline:      a.Byline,
		Content:     a.Content,
		TextContent: a.TextContent,
		Excerpt:     a.Excerpt,
		SiteName:    a.SiteName,
	}, nil
}
