package driven

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// DocumentTransport retrieves a source document over the network.
type DocumentTransport interface {
	// Get fetches the document at url.
	// Returns ErrNoContent when the source answered but has nothing published,
	// and a *TransportError for network or server failures.
	Get(ctx context.Context, url string) ([]byte, error)
}

// ErrNoContent indicates a well-formed response with no document (e.g. 204 or 404).
// It is not retried.
var ErrNoContent = errors.New("transport: no content")

// TransportError is a network or HTTP-level failure.
type TransportError struct {
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// URL is the requested URL.
	URL string

	// Err is the underlying error, if any.
	Err error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("transport: %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("transport: %s: HTTP %d", e.URL, e.StatusCode)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is worth another attempt:
// connection-level errors, 5xx responses and 429.
func (e *TransportError) Retryable() bool {
	if e.StatusCode == 0 {
		return true
	}
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// IsRetryable checks whether err is a retryable transport failure.
func IsRetryable(err error) bool {
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr.Retryable()
	}
	return false
}
