package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractionError_Error(t *testing.T) {
	err := InvalidInput("URL is required")

	assert.Equal(t, "invalid_input: URL is required", err.Error())
}

func TestExtractionError_ErrorWithCause(t *testing.T) {
	err := Timeout(context.DeadlineExceeded)

	assert.Contains(t, err.Error(), "timeout")
	assert.Contains(t, err.Error(), "context deadline exceeded")
}

func TestExtractionError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unreachable(cause)

	assert.True(t, errors.Is(err, cause))
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		expectedKind  Kind
		expectedInMsg string
	}{
		{
			name:          "403 is forbidden",
			status:        http.StatusForbidden,
			expectedKind:  KindForbidden,
			expectedInMsg: "blocking",
		},
		{
			name:          "429 is rate limited",
			status:        http.StatusTooManyRequests,
			expectedKind:  KindRateLimited,
			expectedInMsg: "Too many requests",
		},
		{
			name:          "404 is generic http error",
			status:        http.StatusNotFound,
			expectedKind:  KindHTTPError,
			expectedInMsg: "Not Found",
		},
		{
			name:          "unknown status keeps the number",
			status:        599,
			expectedKind:  KindHTTPError,
			expectedInMsg: "status 599",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromStatus(tt.status)

			assert.Equal(t, tt.expectedKind, err.Kind)
			assert.Equal(t, tt.status, err.Status)
			assert.Contains(t, err.Message, tt.expectedInMsg)
		})
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("fetching article: %w", NotExtractable())

	kind, ok := KindOf(err)

	assert.True(t, ok)
	assert.Equal(t, KindNotExtractable, kind)
	assert.True(t, IsKind(err, KindNotExtractable))
	assert.False(t, IsKind(err, KindTimeout))
}

func TestKindOf_Unclassified(t *testing.T) {
	_, ok := KindOf(errors.New("boom"))

	assert.False(t, ok)
	assert.Nil(t, As(errors.New("boom")))
}

func TestMessages_MatchUserAdvice(t *testing.T) {
	assert.Contains(t, Timeout(nil).Message, "timeout")
	assert.Contains(t, NotExtractable().Message, "extract")
	assert.Contains(t, PopupBlocked(nil).Message, "Popup blocked")
	assert.Contains(t, CapabilityLoadFailed(nil).Message, "extraction library")
	assert.Contains(t, DeliveryTimeout().Message, "No article data")
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, "context"))

	err := WrapError(Unreachable(nil), "fetch")
	assert.Contains(t, err.Error(), "fetch: unreachable")
	assert.True(t, IsKind(err, KindUnreachable))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name           string
		input          error
		expectedStatus int
	}{
		{"invalid input", InvalidInput("URL is required"), http.StatusBadRequest},
		{"timeout", Timeout(nil), http.StatusGatewayTimeout},
		{"unreachable", Unreachable(nil), http.StatusBadGateway},
		{"forbidden", FromStatus(403), http.StatusForbidden},
		{"rate limited", FromStatus(429), http.StatusTooManyRequests},
		{"not extractable", NotExtractable(), http.StatusUnprocessableEntity},
		{"http error keeps upstream status", FromStatus(404), http.StatusNotFound},
		{"upstream 503 passes through", FromStatus(503), http.StatusServiceUnavailable},
		{"non-error upstream status becomes 502", &ExtractionError{Kind: KindHTTPError, Status: 304}, http.StatusBadGateway},
		{"wrapped classification", fmt.Errorf("ctx: %w", Timeout(nil)), http.StatusGatewayTimeout},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
		{"delivery kinds are server errors here", PopupBlocked(nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := StatusFor(tt.input)

			assert.Equal(t, tt.expectedStatus, status)
			assert.NotEmpty(t, message)
		})
	}
}
