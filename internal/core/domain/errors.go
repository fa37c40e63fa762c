package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates a search was requested with a blank query.
	ErrEmptyQuery = errors.New("empty query")

	// ErrNotConfigured indicates the site URL has not been configured.
	ErrNotConfigured = errors.New("site not configured")

	// ErrAuthRequired indicates no access token is available.
	ErrAuthRequired = errors.New("authentication required")

	// ErrRateLimited indicates the search endpoint asked us to back off.
	ErrRateLimited = errors.New("rate limited")
)

// SearchAPIError is returned when the search endpoint answers with a
// non-success HTTP status.
type SearchAPIError struct {
	Category   Category
	StatusCode int
	URL        string
}

func (e *SearchAPIError) Error() string {
	return fmt.Sprintf("search API returned %d for %s query", e.StatusCode, e.Category)
}

// TransportError is returned when the request itself could not be completed
// or its body could not be read.
type TransportError struct {
	Category Category
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s search transport: %v", e.Category, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *SearchAPIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized || errors.Is(err, ErrAuthRequired)
}

// IsForbidden checks if the error indicates missing permissions.
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// IsThrottled checks if the error indicates the endpoint is throttling us.
func IsThrottled(err error) bool {
	code := StatusCode(err)
	return code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable ||
		errors.Is(err, ErrRateLimited)
}

// IsTransport checks if the error happened below the HTTP status level.
func IsTransport(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}
