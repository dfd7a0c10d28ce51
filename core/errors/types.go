// ABOUTME: Error taxonomy for the extraction and delivery pipeline
// ABOUTME: Every failure is classified into a Kind that callers map to HTTP statuses or notifications

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a pipeline failure.
type Kind string

const (
	KindInvalidInput         Kind = "invalid_input"
	KindTimeout              Kind = "timeout"
	KindUnreachable          Kind = "unreachable"
	KindForbidden            Kind = "forbidden"
	KindRateLimited          Kind = "rate_limited"
	KindHTTPError            Kind = "http_error"
	KindNotExtractable       Kind = "not_extractable"
	KindPopupBlocked         Kind = "popup_blocked"
	KindCapabilityLoadFailed Kind = "capability_load_failed"
	KindDeliveryTimeout      Kind = "delivery_timeout"
)

// ExtractionError is a classified failure carrying a user-facing message.
type ExtractionError struct {
	Kind Kind

	// Status is the upstream HTTP status for Forbidden, RateLimited and HTTPError.
	Status int

	// Message is advice suitable for showing to the end user.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// InvalidInput reports a missing or malformed extraction request.
func InvalidInput(message string) *ExtractionError {
	return &ExtractionError{Kind: KindInvalidInput, Message: message}
}

// Timeout reports that the remote site did not answer within the fetch budget.
func Timeout(err error) *ExtractionError {
	return &ExtractionError{
		Kind:    KindTimeout,
		Message: "Request timeout. The website took too long to respond. Try a different article or website.",
		Err:     err,
	}
}

// Unreachable reports a transport failure such as DNS, TLS or a refused connection.
func Unreachable(err error) *ExtractionError {
	return &ExtractionError{
		Kind:    KindUnreachable,
		Message: "Cannot connect to this website. It may be blocking automated requests or using anti-bot protection. Try a different article.",
		Err:     err,
	}
}

// FromStatus classifies a non-success upstream status.
func FromStatus(status int) *ExtractionError {
	switch status {
	case http.StatusForbidden:
		return &ExtractionError{
			Kind:    KindForbidden,
			Status:  status,
			Message: "Access forbidden. The website may be blocking automated requests. Try a different article or website.",
		}
	case http.StatusTooManyRequests:
		return &ExtractionError{
			Kind:    KindRateLimited,
			Status:  status,
			Message: "Too many requests. Please wait a moment and try again.",
		}
	default:
		text := http.StatusText(status)
		if text == "" {
			text = fmt.Sprintf("status %d", status)
		}
		return &ExtractionError{
			Kind:    KindHTTPError,
			Status:  status,
			Message: "Failed to fetch article: " + text,
		}
	}
}

// NotExtractable reports that the engine found no article in the document.
func NotExtractable() *ExtractionError {
	return &ExtractionError{
		Kind:    KindNotExtractable,
		Message: "Could not extract article content. The page may not be an article or is not accessible.",
	}
}

// PopupBlocked reports that the viewer context could not be opened.
func PopupBlocked(err error) *ExtractionError {
	return &ExtractionError{
		Kind:    KindPopupBlocked,
		Message: "Popup blocked! Please allow popups for this site and try again.",
		Err:     err,
	}
}

// CapabilityLoadFailed reports that no source could provide the extraction engine.
func CapabilityLoadFailed(err error) *ExtractionError {
	return &ExtractionError{
		Kind:    KindCapabilityLoadFailed,
		Message: "Failed to load the extraction library. Please check your internet connection.",
		Err:     err,
	}
}

// DeliveryTimeout reports that a viewer received no article in time.
func DeliveryTimeout() *ExtractionError {
	return &ExtractionError{
		Kind:    KindDeliveryTimeout,
		Message: "No article data received. Please try using the bookmarklet again.",
	}
}

// KindOf returns the classification of err, if it carries one.
func KindOf(err error) (Kind, bool) {
	var extractionErr *ExtractionError
	if errors.As(err, &extractionErr) {
		return extractionErr.Kind, true
	}
	return "", false
}

// IsKind checks whether err is classified as kind
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// As returns the ExtractionError in err's chain, or nil.
func As(err error) *ExtractionError {
	var extractionErr *ExtractionError
	if errors.As(err, &extractionErr) {
		return extractionErr
	}
	return nil
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// StatusFor maps err onto the HTTP status and message returned to API callers.
// Unclassified errors become a generic 500.
func StatusFor(err error) (int, string) {
	e := As(err)
	if e == nil {
		return http.StatusInternalServerError, "An error occurred while extracting the article"
	}

	switch e.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest, e.Message
	case KindTimeout:
		return http.StatusGatewayTimeout, e.Message
	case KindUnreachable:
		return http.StatusBadGateway, e.Message
	case KindForbidden:
		return http.StatusForbidden, e.Message
	case KindRateLimited:
		return http.StatusTooManyRequests, e.Message
	case KindNotExtractable:
		return http.StatusUnprocessableEntity, e.Message
	case KindHTTPError:
		if e.Status >= 400 && e.Status <= 599 {
			return e.Status, e.Message
		}
		return http.StatusBadGateway, e.Message
	default:
		return http.StatusInternalServerError, e.Message
	}
}
