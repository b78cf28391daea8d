package teamleader

import (
	"errors"
	"fmt"
)

// Error kinds returned by the client. Use errors.Is to classify.
var (
	// ErrInvalidInput indicates an argument failed local validation.
	// No request was made.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates bad or expired API credentials (HTTP 401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimitExceeded indicates the API is throttling requests.
	// Teamleader signals this with HTTP 505.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrBadRequest indicates the API rejected the request (HTTP 400).
	ErrBadRequest = errors.New("bad request")

	// ErrUnknownAPI indicates a response status outside the documented
	// contract.
	ErrUnknownAPI = errors.New("unknown API error")
)

// APIError is a classified remote failure. It unwraps to one of the
// sentinel error kinds and keeps the server reason plus the raw
// response body for diagnostics.
type APIError struct {
	kind       error
	StatusCode int
	Message    string
	Body       []byte
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("teamleader: %s: status %d: %s", e.kind, e.StatusCode, e.Message)
}

// Unwrap returns the sentinel error kind for errors.Is matching.
func (e *APIError) Unwrap() error {
	return e.kind
}

// IsRateLimited reports whether the API throttled the request.
func (e *APIError) IsRateLimited() bool {
	return e.kind == ErrRateLimitExceeded
}

// IsUnauthorized reports whether the credentials were rejected.
func (e *APIError) IsUnauthorized() bool {
	return e.kind == ErrUnauthorized
}

// InvalidInputError is a local validation failure. It unwraps to
// ErrInvalidInput.
type InvalidInputError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("teamleader: invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("teamleader: invalid contents of argument %s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidInput for errors.Is matching.
func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

func invalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}
