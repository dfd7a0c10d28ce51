// ABOUTME: Load tests for the /api/extract endpoints
// ABOUTME: Measures latency under concurrent load and checks the rate limiter holds its budget

package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"readerview/api"
	"readerview/api/dto/requests"
	"readerview/api/handlers"
	"readerview/core/domain"
	"readerview/pkg/featureflags"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

// slowReader answers every URL with a fixed article after delay
type slowReader struct {
	delay time.Duration
}

func (s *slowReader) Extract(ctx context.Context, url string) (*domain.Article, error) {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &domain.Article{
		Title:       "Article at " + url,
		Content:     "<p>Body</p>",
		TextContent: "Body",
		Length:      1,
	}, nil
}

func (s *slowReader) ExtractMany(ctx context.Context, urls []string) []domain.BatchResult {
	results := make([]domain.BatchResult, len(urls))
	for i, u := range urls {
		a, _ := s.Extract(ctx, u)
		results[i] = domain.BatchResult{URL: u, Success: true, Data: a, Status: http.StatusOK}
	}
	return results
}

// LoadTestMetrics tracks performance metrics
type LoadTestMetrics struct {
	TotalRequests  int64
	SuccessfulReqs int64
	FailedReqs     int64
	TotalDuration  time.Duration
	MinLatency     time.Duration
	MaxLatency     time.Duration
	AvgLatency     time.Duration
	P95Latency     time.Duration
	P99Latency     time.Duration
	RequestsPerSec float64
}

type recorder struct {
	mu        sync.Mutex
	latencies []time.Duration
	success   int64
	fail      int64
}

func (r *recorder) post(client *http.Client, url string, body interface{}) int {
	b, _ := json.Marshal(body)

	start := time.Now()
	resp, err := client.Post(url, "application/json", bytes.NewReader(b))
	latency := time.Since(start)

	r.mu.Lock()
	r.latencies = append(r.latencies, latency)
	r.mu.Unlock()

	if err != nil {
		atomic.AddInt64(&r.fail, 1)
		return 0
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		atomic.AddInt64(&r.success, 1)
	} else {
		atomic.AddInt64(&r.fail, 1)
	}
	return resp.StatusCode
}

func (r *recorder) metrics(total time.Duration) LoadTestMetrics {
	m := calculateMetrics(r.latencies, total)
	m.SuccessfulReqs = r.success
	m.FailedReqs = r.fail
	return m
}

func newServer(t *testing.T, cfg api.APIConfig, delay time.Duration) *httptest.Server {
	t.Helper()
	humaAPI, router, stop := api.NewAPIWithMiddleware(cfg)
	t.Cleanup(stop)
	handlers.NewExtractHandler(&slowReader{delay: delay}, cfg.Flags).RegisterRoutes(humaAPI)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestExtractEndpoint_100ConcurrentRequests(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping load test in short mode")
	}

	server := newServer(t, api.APIConfig{
		Logger: nopLogger{},
		Flags:  featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{featureflags.RateLimit: false}),
	}, 10*time.Millisecond)

	concurrency := 100
	requestsPerWorker := 10
	rec := &recorder{}
	client := &http.Client{Timeout: 30 * time.Second}

	start := time.Now()
	var g errgroup.Group
	for i := 0; i < concurrency; i++ {
		worker := i
		g.Go(func() error {
			for j := 0; j < requestsPerWorker; j++ {
				rec.post(client, server.URL+"/api/extract", requests.ExtractRequest{
					URL: fmt.Sprintf("https://example.com/%d/%d", worker, j),
				})
			}
			return nil
		})
	}
	_ = g.Wait()
	metrics := rec.metrics(time.Since(start))

	t.Logf("Load Test Results - 100 Concurrent Requests")
	t.Logf("Total Requests: %d", metrics.TotalRequests)
	t.Logf("Successful: %d", metrics.SuccessfulReqs)
	t.Logf("Requests/sec: %.2f", metrics.RequestsPerSec)
	t.Logf("Min/Avg/Max Latency: %v / %v / %v", metrics.MinLatency, metrics.AvgLatency, metrics.MaxLatency)
	t.Logf("P95/P99 Latency: %v / %v", metrics.P95Latency, metrics.P99Latency)

	assert.Equal(t, int64(concurrency*requestsPerWorker), metrics.TotalRequests)
	assert.Zero(t, metrics.FailedReqs)
	assert.Less(t, metrics.P95Latency, time.Second)
}

func TestBatchEndpoint_ConcurrentRequests(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping load test in short mode")
	}

	server := newServer(t, api.APIConfig{
		Logger: nopLogger{},
		Flags:  featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{featureflags.BatchExtract: true}),
	}, time.Millisecond)

	rec := &recorder{}
	client := &http.Client{Timeout: 30 * time.Second}

	start := time.Now()
	var g errgroup.Group
	for i := 0; i < 50; i++ {
		worker := i
		g.Go(func() error {
			rec.post(client, server.URL+"/api/extract/batch", requests.BatchExtractRequest{
				URLs: []string{
					fmt.Sprintf("https://example.com/%d/a", worker),
					fmt.Sprintf("https://example.com/%d/b", worker),
				},
			})
			return nil
		})
	}
	_ = g.Wait()
	metrics := rec.metrics(time.Since(start))

	t.Logf("Batch Load Test: %d requests, %.2f req/s, P95 %v", metrics.TotalRequests, metrics.RequestsPerSec, metrics.P95Latency)

	assert.Zero(t, metrics.FailedReqs)
}

func TestExtractEndpoint_RateLimitHoldsUnderLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping load test in short mode")
	}

	limit := 25
	server := newServer(t, api.APIConfig{
		Logger:     nopLogger{},
		Flags:      featureflags.AllEnabled(),
		RateLimit:  limit,
		RateWindow: time.Hour,
	}, time.Millisecond)

	rec := &recorder{}
	client := &http.Client{Timeout: 10 * time.Second}
	var limited int64

	var g errgroup.Group
	for i := 0; i < 100; i++ {
		g.Go(func() error {
			status := rec.post(client, server.URL+"/api/extract", requests.ExtractRequest{URL: "https://example.com/a"})
			if status == http.StatusTooManyRequests {
				atomic.AddInt64(&limited, 1)
			}
			return nil
		})
	}
	_ = g.Wait()

	assert.Equal(t, int64(limit), rec.success)
	assert.Equal(t, int64(100-limit), limited)
}

// calculateMetrics computes performance metrics from latency data
func calculateMetrics(latencies []time.Duration, totalDuration time.Duration) LoadTestMetrics {
	if len(latencies) == 0 {
		return LoadTestMetrics{}
	}

	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum time.Duration
	for _, l := range sorted {
		sum += l
	}

	return LoadTestMetrics{
		TotalRequests:  int64(len(sorted)),
		TotalDuration:  totalDuration,
		MinLatency:     sorted[0],
		MaxLatency:     sorted[len(sorted)-1],
		AvgLatency:     sum / time.Duration(len(sorted)),
		P95Latency:     sorted[int(float64(len(sorted))*0.95)],
		P99Latency:     sorted[int(float64(len(sorted))*0.99)],
		RequestsPerSec: float64(len(sorted)) / totalDuration.Seconds(),
	}
}
