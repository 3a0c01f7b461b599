package entity

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for domain layer operations.
var (
	// ErrUpstreamUnavailable indicates that the news API could not be reached
	// or answered with a server-side failure.
	ErrUpstreamUnavailable = errors.New("news service unavailable")

	// ErrRateLimited indicates that the news API rejected the request because
	// the account exhausted its request quota.
	ErrRateLimited = errors.New("news service rate limit exceeded")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NetworkError reports a transport-level failure talking to the news API:
// DNS or connection errors, timeouts, 5xx answers, or an open circuit breaker.
type NetworkError struct {
	Op  string
	Err error
}

// Error returns the failed operation and its cause.
func (e *NetworkError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("network error: %s", e.Op)
	}
	return fmt.Sprintf("network error: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is makes every NetworkError match ErrUpstreamUnavailable.
func (e *NetworkError) Is(target error) bool {
	return target == ErrUpstreamUnavailable
}

// ClientError reports that the news API understood the request and refused it,
// for example an unknown country code, a bad API key or an exhausted quota.
type ClientError struct {
	StatusCode int
	Code       string
	Message    string
}

// Error returns the upstream message along with the HTTP status.
func (e *ClientError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Code != "" {
		return fmt.Sprintf("news API rejected the request (HTTP %d, %s): %s", e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("news API rejected the request (HTTP %d): %s", e.StatusCode, msg)
}

// RateLimited reports whether the rejection was caused by the request quota.
func (e *ClientError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.Code == "RateLimitExceeded"
}

// Is makes rate limit rejections match ErrRateLimited.
func (e *ClientError) Is(target error) bool {
	return target == ErrRateLimited && e.RateLimited()
}
