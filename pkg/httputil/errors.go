package httputil

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of a failed response body is kept on a StatusError.
const maxErrorBody = 64 << 10

// ErrNoAttempts is returned by [Execute] when the retry loop ends without
// either a result or a recorded failure. It only happens with a strategy
// whose MaxRetries is negative.
var ErrNoAttempts = errors.New("retry: operation finished without a result or a failure")

// TransportError reports that no HTTP response was received: connection
// refused, DNS failure, TLS failure, or a timeout before the response headers.
// Transport errors are always retryable.
type TransportError struct{ Err error }

func (e *TransportError) Error() string { return "transport: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a received HTTP response whose status is 400 or above.
type StatusError struct {
	StatusCode int
	Status     string // e.g. "503 Service Unavailable"
	Body       []byte // possibly truncated response body
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, body)
}

// Retryable reports whether the status is a server error or a rate limit.
func (e *StatusError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

// RetryableError marks an arbitrary error as transient so that [Execute]
// retries it. Use it for failures that are neither transport nor status
// errors but are known to be temporary.
type RetryableError struct{ Err error }

// Retryable wraps an error as a RetryableError. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// CheckResponse returns nil for responses below 400. Otherwise it drains and
// closes the body and returns a *StatusError carrying the status and body.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
	}
}
