package ingestion

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

// APIError represents a non-2xx response from the ingestion API.
// It unwraps to domain.ErrTransport.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("ingestion API error %d (URL: %s)", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("ingestion API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Unwrap lets callers match the error with errors.Is(err, domain.ErrTransport).
func (e *APIError) Unwrap() error {
	return domain.ErrTransport
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized) || hasStatus(err, http.StatusForbidden)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}
	return false
}

// transportError wraps a network or decoding failure.
func transportError(operation string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrTransport, operation, err)
}
