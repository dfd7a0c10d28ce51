// ABOUTME: Fetch-Extractor: fetches an article URL server-side and extracts its readable body
// ABOUTME: Validates input, bounds the fetch, classifies failures and assembles the Article

package reader

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"strings"
	"time"

	"readerview/core/article"
	"readerview/core/domain"
	coreerrors "readerview/core/errors"
	"readerview/core/interfaces"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultFetchTimeout bounds the outbound request, body included.
	DefaultFetchTimeout = 8 * time.Second

	// DefaultBatchConcurrency limits parallel fetches in ExtractMany.
	DefaultBatchConcurrency = 4

	maxBodyBytes = 10 << 20
)

// Ensure Service implements interfaces.ReaderService at compile time.
var _ interfaces.ReaderService = (*Service)(nil)

type Service struct {
	httpClient  interfaces.HTTPClient
	engine      interfaces.ExtractionEngine
	logger      interfaces.Logger
	timeout     time.Duration
	concurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout overrides DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// WithConcurrency overrides DefaultBatchConcurrency.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		s.concurrency = n
	}
}

func NewService(deps interfaces.Dependencies, opts ...Option) *Service {
	s := &Service{
		httpClient:  deps.HTTPClient,
		engine:      deps.Engine,
		logger:      deps.Logger,
		timeout:     DefaultFetchTimeout,
		concurrency: DefaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateURL accepts only absolute http and https URLs.
func ValidateURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, coreerrors.InvalidInput("URL is required")
	}

	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, coreerrors.InvalidInput("Invalid URL format")
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u, nil
	default:
		return nil, coreerrors.InvalidInput("Invalid URL format")
	}
}

// Extract fetches rawURL and returns its article. Every failure is an
// *errors.ExtractionError except unexpected internal ones.
func (s *Service) Extract(ctx context.Context, rawURL string) (*domain.Article, error) {
	pageURL, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc, finalURL, err := s.fetch(fetchCtx, pageURL)
	if err != nil {
		return nil, s.classify(ctx, fetchCtx, pageURL, err)
	}

	page := domain.PageInfo{
		Title:    documentTitle(doc),
		Hostname: finalURL.Hostname(),
	}

	ext, err := s.engine.Extract(doc, finalURL)
	if err != nil {
		s.logger.Error("Extraction engine failed", map[string]interface{}{
			"url":   pageURL.String(),
			"error": err.Error(),
		})
		return nil, coreerrors.WrapError(err, "extraction engine")
	}
	result, err := article.Assemble(ext, page)
	if err != nil {
		return nil, coreerrors.WrapError(err, "assembling article")
	}
	if result == nil {
		s.logger.Info("No article found", map[string]interface{}{
			"url": pageURL.String(),
		})
		return nil, coreerrors.NotExtractable()
	}

	s.logger.Debug("Article extracted", map[string]interface{}{
		"url":    pageURL.String(),
		"title":  result.Title,
		"length": result.Length,
	})

	return result, nil
}

// ExtractMany extracts every URL, at most s.concurrency at a time.
func (s *Service) ExtractMany(ctx context.Context, urls []string) []domain.BatchResult {
	results := make([]domain.BatchResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}

	for i, u := range urls {
		g.Go(func() error {
			results[i] = s.batchResult(gctx, u)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *Service) batchResult(ctx context.Context, u string) domain.BatchResult {
	a, err := s.Extract(ctx, u)
	if err != nil {
		status, message := coreerrors.StatusFor(err)
		return domain.BatchResult{URL: u, Error: message, Status: status}
	}
	return domain.BatchResult{URL: u, Success: true, Data: a, Status: 200}
}

// fetch performs the GET and parses the body. The response's final URL is
// returned so relative links resolve against the page that was actually served.
func (s *Service) fetch(ctx context.Context, pageURL *url.URL) (*html.Node, *url.URL, error) {
	resp, err := s.httpClient.Get(ctx, pageURL.String())
	if err != nil {
		return nil, nil, err
	}
	body := resp.Body()
	defer body.Close()

	if status := resp.StatusCode(); status < 200 || status > 299 {
		return nil, nil, coreerrors.FromStatus(status)
	}

	reader, err := charset.NewReader(io.LimitReader(body, maxBodyBytes), resp.Header("Content-Type"))
	if err != nil {
		return nil, nil, err
	}

	doc, err := html.Parse(reader)
	if err != nil {
		return nil, nil, err
	}

	finalURL := resp.URL()
	if finalURL == nil {
		finalURL = pageURL
	}
	return doc, finalURL, nil
}

// classify maps a fetch error onto the taxonomy. A deadline on the fetch
// context is a Timeout; a cancelled caller context is passed through as is.
func (s *Service) classify(ctx, fetchCtx context.Context, pageURL *url.URL, err error) error {
	if coreerrors.As(err) != nil {
		s.logger.Warn("Upstream returned error status", map[string]interface{}{
			"url":   pageURL.String(),
			"error": err.Error(),
		})
		return err
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	var netErr net.Error
	if errors.Is(fetchCtx.Err(), context.DeadlineExceeded) ||
		errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		s.logger.Warn("Fetch timed out", map[string]interface{}{
			"url":     pageURL.String(),
			"timeout": s.timeout.String(),
		})
		return coreerrors.Timeout(err)
	}

	s.logger.Warn("Fetch failed", map[string]interface{}{
		"url":   pageURL.String(),
		"error": err.Error(),
	})
	return coreerrors.Unreachable(err)
}

func documentTitle(doc *html.Node) string {
	return strings.TrimSpace(goquery.NewDocumentFromNode(doc).Find("title").First().Text())
}
