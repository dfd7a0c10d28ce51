// ABOUTME: Configuration options for the readerview library client
// ABOUTME: Provides functional options pattern for flexible client configuration

package readerlib

import (
	"time"

	"readerview/core/capability"
	"readerview/core/delivery"
	"readerview/core/interfaces"
	"readerview/core/reader"
	"readerview/core/receiver"
	"readerview/infrastructure/engine"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

func defaultConfig() Config {
	return Config{
		FetchTimeout:   reader.DefaultFetchTimeout,
		Concurrency:    reader.DefaultBatchConcurrency,
		EngineSources:  capability.DefaultSources,
		EngineCacheTTL: capability.DefaultTTL,
		Cadence:        delivery.DefaultCadence,
		ReceiveTimeout: receiver.DefaultTimeout,
		Headless:       true,
	}
}

// WithCache sets a custom cache implementation
func WithCache(cache interfaces.Cache) Option {
	return func(c *Config) error {
		c.Cache = cache
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithEngine sets the extraction engine directly
func WithEngine(e interfaces.ExtractionEngine) Option {
	return func(c *Config) error {
		c.Engine = e
		return nil
	}
}

// WithEngineName selects a built-in engine: readability, trafilatura or chain
func WithEngineName(name string) Option {
	return func(c *Config) error {
		e, err := engine.New(name)
		if err != nil {
			return NewError(ErrorTypeConfiguration, "invalid engine").WithCause(err)
		}
		c.Engine = e
		return nil
	}
}

// WithFetchTimeout bounds each server-side fetch
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Config) error {
		if d <= 0 {
			return NewError(ErrorTypeConfiguration, "fetch timeout must be positive")
		}
		c.FetchTimeout = d
		return nil
	}
}

// WithConcurrency bounds parallel fetches in ExtractMany
func WithConcurrency(n int) Option {
	return func(c *Config) error {
		c.Concurrency = n
		return nil
	}
}

// WithEngineSources sets the CDN sources of the in-page engine
func WithEngineSources(sources ...string) Option {
	return func(c *Config) error {
		if len(sources) == 0 {
			return NewError(ErrorTypeConfiguration, "at least one engine source is required")
		}
		c.EngineSources = sources
		return nil
	}
}

// WithCadence sets the live delivery cadence
func WithCadence(cadence delivery.Cadence) Option {
	return func(c *Config) error {
		c.Cadence = cadence
		return nil
	}
}

// WithBrowser selects the browser used by Live. An empty controlURL
// launches a local Chrome.
func WithBrowser(controlURL string, headless bool) Option {
	return func(c *Config) error {
		c.BrowserControlURL = controlURL
		c.Headless = headless
		return nil
	}
}
