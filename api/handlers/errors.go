// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts classified extraction errors into {"error": "..."} HTTP responses

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"readerview/api/dto/responses"
	coreerrors "readerview/core/errors"

	"github.com/danielgtaylor/huma/v2"
)

func init() {
	// Framework errors such as malformed JSON share the extraction error shape.
	huma.NewError = newError
}

// newError builds framework errors. Request validation failures are invalid
// input and answer 400; 422 stays reserved for pages with no article.
func newError(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
		if invalidField(errs, "body.url") {
			return &responses.ErrorResponse{Status: status, Message: coreerrors.InvalidInput("Invalid URL format").Message}
		}
	}

	if msg == "" {
		msg = http.StatusText(status)
	}
	if len(errs) > 0 && errs[0] != nil {
		msg += ": " + errs[0].Error()
	}
	return &responses.ErrorResponse{Status: status, Message: msg}
}

// invalidField reports whether any validation error is located at field.
func invalidField(errs []error, field string) bool {
	for _, err := range errs {
		var detail *huma.ErrorDetail
		if errors.As(err, &detail) && (detail.Location == field || strings.HasPrefix(detail.Location, field+".")) {
			return true
		}
	}
	return false
}

// toHTTPError converts extraction errors to API errors
func toHTTPError(err error) error {
	if err == nil {
		return nil
	}

	status, message := coreerrors.StatusFor(err)
	return &responses.ErrorResponse{Status: status, Message: message}
}
