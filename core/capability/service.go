// ABOUTME: Capability service: fetches the in-page extraction engine script for injected pages
// ABOUTME: Tries each configured source in order and caches the first script that loads

package capability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"readerview/core/domain"
	coreerrors "readerview/core/errors"
	"readerview/core/interfaces"
)

const (
	// DefaultTTL is how long a fetched script is served from cache.
	DefaultTTL = 24 * time.Hour

	// DefaultSourceTimeout bounds each source attempt, body included.
	DefaultSourceTimeout = 8 * time.Second

	cacheKey       = "capability:readability"
	maxScriptBytes = 2 << 20
)

// DefaultSources are public CDN copies of the Readability engine, primary first.
var DefaultSources = []string{
	"https://cdn.jsdelivr.net/npm/@mozilla/readability@0.5.0/Readability.min.js",
	"https://unpkg.com/@mozilla/readability@0.5.0/Readability.js",
}

// Ensure Service implements interfaces.CapabilityService at compile time.
var _ interfaces.CapabilityService = (*Service)(nil)

type Service struct {
	cache      interfaces.Cache
	httpClient interfaces.HTTPClient
	logger     interfaces.Logger
	sources    []string
	ttl        time.Duration
	timeout    time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithSourceTimeout overrides DefaultSourceTimeout. A source that has not
// answered in time counts as failed and the next one is tried.
func WithSourceTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewService creates a capability service reading from sources. An empty list
// falls back to DefaultSources.
func NewService(deps interfaces.Dependencies, sources []string, ttl time.Duration, opts ...Option) *Service {
	if len(sources) == 0 {
		sources = DefaultSources
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Service{
		cache:      deps.Cache,
		httpClient: deps.HTTPClient,
		logger:     deps.Logger,
		sources:    sources,
		ttl:        ttl,
		timeout:    DefaultSourceTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sources returns the configured sources in the order they are tried.
func (s *Service) Sources() []string {
	return append([]string(nil), s.sources...)
}

// Script returns the engine script, from cache when possible.
func (s *Service) Script(ctx context.Context) (*domain.Script, error) {
	if script := s.cached(ctx); script != nil {
		return script, nil
	}

	var errs []error
	for _, source := range s.sources {
		script, err := s.fetch(ctx, source)
		if err != nil {
			s.logger.Warn("Engine source unavailable", map[string]interface{}{
				"source": source,
				"error":  err.Error(),
			})
			errs = append(errs, fmt.Errorf("%s: %w", source, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}

		s.store(ctx, script)
		return script, nil
	}

	return nil, coreerrors.CapabilityLoadFailed(errors.Join(errs...))
}

func (s *Service) fetch(ctx context.Context, source string) (*domain.Script, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.httpClient.Get(ctx, source)
	if err != nil {
		return nil, err
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("status %d", resp.StatusCode())
	}

	data, err := io.ReadAll(io.LimitReader(body, maxScriptBytes))
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("empty script")
	}

	contentType := resp.Header("Content-Type")
	if contentType == "" || strings.HasPrefix(contentType, "text/plain") {
		contentType = "application/javascript; charset=utf-8"
	}

	return &domain.Script{Source: source, Body: data, ContentType: contentType}, nil
}

func (s *Service) cached(ctx context.Context) *domain.Script {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, cacheKey)
	if err != nil || len(data) == 0 {
		return nil
	}

	var script domain.Script
	if err := json.Unmarshal(data, &script); err != nil {
		s.logger.Warn("Discarding unreadable cached script", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return &script
}

func (s *Service) store(ctx context.Context, script *domain.Script) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(script)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey, data, s.ttl); err != nil {
		s.logger.Warn("Failed to cache engine script", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
