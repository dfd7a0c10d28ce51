// ABOUTME: Error types and handling for the readerview library
// ABOUTME: Configuration errors are library-specific; extraction errors keep their core classification

package readerlib

import (
	"errors"
	"fmt"

	coreerrors "readerview/core/errors"
)

// ErrorType represents the type of library error
type ErrorType string

const (
	// ErrorTypeConfiguration indicates an invalid client option
	ErrorTypeConfiguration ErrorType = "configuration"

	// ErrorTypeBrowser indicates the live browser could not be started or driven
	ErrorTypeBrowser ErrorType = "browser"
)

// Error represents a structured error from the library
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// WithCause adds a cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == ErrorTypeConfiguration
}

// IsBrowserError reports whether err came from starting or driving the browser
func IsBrowserError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == ErrorTypeBrowser
}

// Kind returns the extraction classification of err, if it has one
func Kind(err error) (coreerrors.Kind, bool) {
	return coreerrors.KindOf(err)
}

// ErrorMessage returns the advice to show a user for err
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := coreerrors.As(err); e != nil {
		return e.Message
	}
	var libErr *Error
	if errors.As(err, &libErr) {
		return libErr.Message
	}
	return err.Error()
}
