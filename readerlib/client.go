// ABOUTME: Main client for the readerview library providing article extraction
// ABOUTME: Offers the core services without the HTTP server, for CLIs and embedding

package readerlib

import (
	"context"
	"time"

	"readerview/core/capability"
	"readerview/core/delivery"
	"readerview/core/domain"
	"readerview/core/interfaces"
	"readerview/core/reader"
	"readerview/infrastructure/markdown"
)

// Article is an extracted, sanitized article
type Article = domain.Article

// BatchResult is the outcome of one URL passed to ExtractMany
type BatchResult = domain.BatchResult

// Client is the main entry point for the library
type Client struct {
	reader     *reader.Service
	capability *capability.Service
	converter  *markdown.Converter

	deps   interfaces.Dependencies
	config Config
}

// Config holds the configuration for the client
type Config struct {
	Cache      interfaces.Cache
	HTTPClient interfaces.HTTPClient
	Logger     interfaces.Logger

	// Engine extracts articles from fetched documents
	Engine interfaces.ExtractionEngine

	// FetchTimeout bounds each server-side fetch
	FetchTimeout time.Duration

	// Concurrency bounds ExtractMany
	Concurrency int

	// EngineSources are CDN copies of the in-page engine, tried in order
	EngineSources  []string
	EngineCacheTTL time.Duration

	// Cadence and ReceiveTimeout drive live delivery into a viewer
	Cadence        delivery.Cadence
	ReceiveTimeout time.Duration

	// Headless and BrowserControlURL select the browser used by Live
	Headless          bool
	BrowserControlURL string
}

// NewClient creates a new client with the given options
func NewClient(options ...Option) (*Client, error) {
	config := defaultConfig()

	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	if err := fillDefaults(&config); err != nil {
		return nil, err
	}

	deps := interfaces.Dependencies{
		Cache:      config.Cache,
		HTTPClient: config.HTTPClient,
		Engine:     config.Engine,
		Logger:     config.Logger,
	}

	return &Client{
		reader: reader.NewService(deps,
			reader.WithTimeout(config.FetchTimeout),
			reader.WithConcurrency(config.Concurrency),
		),
		capability: capability.NewService(deps, config.EngineSources, config.EngineCacheTTL,
			capability.WithSourceTimeout(config.FetchTimeout),
		),
		converter:  markdown.NewConverter(),
		deps:       deps,
		config:     config,
	}, nil
}

// Close releases the client's cache if it holds resources
func (c *Client) Close() error {
	if closer, ok := c.deps.Cache.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// Extract fetches url and returns its article
func (c *Client) Extract(ctx context.Context, url string) (*Article, error) {
	return c.reader.Extract(ctx, url)
}

// ExtractMany extracts every URL; results are in input order
func (c *Client) ExtractMany(ctx context.Context, urls []string) []BatchResult {
	return c.reader.ExtractMany(ctx, urls)
}

// Markdown extracts url and renders the article as Markdown
func (c *Client) Markdown(ctx context.Context, url string) (string, error) {
	article, err := c.reader.Extract(ctx, url)
	if err != nil {
		return "", err
	}
	return c.RenderMarkdown(article)
}

// RenderMarkdown renders an already extracted article as Markdown
func (c *Client) RenderMarkdown(article *Article) (string, error) {
	return c.converter.Article(article)
}

// EngineScript returns the in-page engine script from the first source that serves it
func (c *Client) EngineScript(ctx context.Context) (*domain.Script, error) {
	return c.capability.Script(ctx)
}
