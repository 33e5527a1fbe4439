package chatmbti

import (
	"errors"
	"fmt"
)

// Validation failures.
var (
	ErrNoName  = errors.New("user name is required")
	ErrNoFiles = errors.New("at least one file is required")
)

// ValidationError reports input that was rejected before any network call.
type ValidationError struct {
	Err     error  // ErrNoName or ErrNoFiles
	Message string // Localized, user-facing
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap returns the underlying sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// TransportError reports a network failure or a non-2xx response.
type TransportError struct {
	StatusCode int    // 0 when no response was received
	Body       string // Server-supplied error text, verbatim
	Err        error  // Underlying network error, if any
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Body)
	}
	if e.Err != nil {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	return "request failed"
}

// Unwrap returns the underlying network error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError reports a 2xx response whose body could not be parsed.
type MalformedResponseError struct {
	Err error
}

// Error implements the error interface.
func (e *MalformedResponseError) Error() string {
	if e.Err == nil {
		return "malformed response"
	}
	return fmt.Sprintf("malformed response: %v", e.Err)
}

// Unwrap returns the parse error.
func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
