package reader

import (
	"context"
	"io"
	"net/url"
	"strings"
	"sync/atomic"

	"readerview/core/domain"
	"readerview/core/interfaces"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// mockLogger discards everything
type mockLogger struct{}

func (mockLogger) Debug(string, map[string]interface{}) {}
func (mockLogger) Info(string, map[string]interface{})  {}
func (mockLogger) Warn(string, map[string]interface{})  {}
func (mockLogger) Error(string, map[string]interface{}) {}

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	calls   int32
	getFunc func(ctx context.Context, url string) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	atomic.AddInt32(&m.calls, 1)
	if m.getFunc != nil {
		return m.getFunc(ctx, url)
	}
	return nil, nil
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
	url        *url.URL
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

func (m *mockResponse) URL() *url.URL {
	return m.url
}

// articleEngine treats the first <article> element as the readable body.
type articleEngine struct{}

func (articleEngine) Extract(doc *html.Node, _ *url.URL) (*domain.Extraction, error) {
	sel := goquery.NewDocumentFromNode(doc).Find("article").First()
	if sel.Length() == 0 {
		return nil, nil
	}
	content, err := goquery.OuterHtml(sel)
	if err != nil {
		return nil, err
	}
	return &domain.Extraction{
		Title:       strings.TrimSpace(sel.Find("h1").First().Text()),
		Byline:      strings.TrimSpace(sel.Find(".byline").First().Text()),
		Content:     content,
		TextContent: strings.TrimSpace(sel.Text()),
	}, nil
}

// nilEngine never finds an article.
type nilEngine struct{}

func (nilEngine) Extract(*html.Node, *url.URL) (*domain.Extraction, error) {
	return nil, nil
}
