package client

import (
	"errors"
	"fmt"
)

// ErrAuthFailed is returned when a 401 could not be recovered by a token
// refresh. The shared session store has been cleared by the time callers
// see it.
var ErrAuthFailed = errors.New("authentication failed")

// APIError represents a non-2xx HTTP response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("API error: HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an APIError with the
// given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// retryable reports whether an attempt that produced this status is worth
// repeating. Client errors never succeed on retry; 401 is handled separately
// through the refresh path.
func retryable(status int) bool {
	return status == 0 || status >= 500
}
