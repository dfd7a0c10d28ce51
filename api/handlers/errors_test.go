package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"readerview/api/dto/responses"
	coreerrors "readerview/core/errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTTPError(t *testing.T) {
	tests := []struct {
		name           string
		input          error
		expectedStatus int
		expectedInMsg  string
	}{
		{
			name:           "invalid input returns 400",
			input:          coreerrors.InvalidInput("URL is required"),
			expectedStatus: http.StatusBadRequest,
			expectedInMsg:  "URL is required",
		},
		{
			name:           "timeout returns 504",
			input:          coreerrors.Timeout(nil),
			expectedStatus: http.StatusGatewayTimeout,
			expectedInMsg:  "Request timeout",
		},
		{
			name:           "unreachable returns 502",
			input:          coreerrors.Unreachable(errors.New("dial tcp")),
			expectedStatus: http.StatusBadGateway,
			expectedInMsg:  "Cannot connect",
		},
		{
			name:           "forbidden returns 403",
			input:          coreerrors.FromStatus(403),
			expectedStatus: http.StatusForbidden,
			expectedInMsg:  "Access forbidden",
		},
		{
			name:           "rate limited returns 429",
			input:          coreerrors.FromStatus(429),
			expectedStatus: http.StatusTooManyRequests,
			expectedInMsg:  "Too many requests",
		},
		{
			name:           "not extractable returns 422",
			input:          coreerrors.NotExtractable(),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedInMsg:  "Could not extract",
		},
		{
			name:           "http error keeps upstream status",
			input:          fmt.Errorf("wrapped: %w", coreerrors.FromStatus(404)),
			expectedStatus: http.StatusNotFound,
			expectedInMsg:  "Not Found",
		},
		{
			name:           "unknown error returns 500",
			input:          errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedInMsg:  "An error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := toHTTPError(tt.input)

			var resp *responses.ErrorResponse
			require.True(t, errors.As(err, &resp))
			assert.Equal(t, tt.expectedStatus, resp.GetStatus())
			assert.Contains(t, resp.Message, tt.expectedInMsg)
		})
	}
}

func TestToHTTPError_Nil(t *testing.T) {
	assert.Nil(t, toHTTPError(nil))
}

func TestNewErrorOverride(t *testing.T) {
	err := huma.NewError(http.StatusBadRequest, "")

	assert.Equal(t, http.StatusBadRequest, err.GetStatus())
	assert.Equal(t, "Bad Request", err.Error())
	_, ok := err.(*responses.ErrorResponse)
	assert.True(t, ok)
}

func TestNewErrorOverride_ValidationIsBadRequest(t *testing.T) {
	tests := []struct {
		name    string
		errs    []error
		wantMsg string
	}{
		{
			name:    "url field",
			errs:    []error{&huma.ErrorDetail{Message: "expected string", Location: "body.url", Value: 123}},
			wantMsg: "Invalid URL format",
		},
		{
			name:    "other field",
			errs:    []error{&huma.ErrorDetail{Message: "expected array", Location: "body.urls", Value: "x"}},
			wantMsg: "validation failed: expected array (body.urls: x)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := huma.NewError(http.StatusUnprocessableEntity, "validation failed", tt.errs...)

			assert.Equal(t, http.StatusBadRequest, err.GetStatus())
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}
