package modaps

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBaseURL is returned when a base URL option is invalid.
	ErrInvalidBaseURL = errors.New("modaps: invalid base URL")
	// ErrNilHTTPClient indicates a nil HTTP client was provided.
	ErrNilHTTPClient = errors.New("modaps: http client cannot be nil")
)

// APIError represents an HTTP failure from the MODAPS service.
type APIError struct {
	Status   int
	Endpoint string
	Detail   string
	Raw      []byte
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Detail == "" {
		return fmt.Sprintf("modaps: %s: status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("modaps: %s: status %d: %s", e.Endpoint, e.Status, e.Detail)
}

// Temporary reports whether the error may be retried.
func (e *APIError) Temporary() bool {
	if e == nil {
		return false
	}
	return e.Status >= 500 && e.Status < 600
}
