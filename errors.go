package scrapegraph

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Error type labels carried by APIError.Type.
const (
	ErrorTypeValidation  = "Validation"
	ErrorTypeAuth        = "Authentication"
	ErrorTypeBadRequest  = "BadRequest"
	ErrorTypeRateLimit   = "RateLimit"
	ErrorTypeServer      = "Server"
	ErrorTypeNetwork     = "Network"
	ErrorTypeTimeout     = "Timeout"
	ErrorTypeCircuitOpen = "CircuitBreaker"
	ErrorTypeJob         = "Job"
)

// Sentinel errors for common failure scenarios.
var (
	// ErrMissingAPIKey is returned when a client is constructed without a key.
	ErrMissingAPIKey = errors.New("scrapegraph: missing API key")

	// ErrInvalidAPIKey is returned when the API key does not have the
	// sgai-<uuid> shape.
	ErrInvalidAPIKey = errors.New("scrapegraph: invalid API key format")

	// ErrRateLimited is returned when the local rate limiter denies a request.
	ErrRateLimited = errors.New("scrapegraph: rate limited")

	// ErrCircuitOpen is returned when the circuit breaker is in open state.
	ErrCircuitOpen = errors.New("scrapegraph: circuit open")
)

// APIError is the error type returned for failed requests. Type classifies
// the failure, StatusCode is the HTTP status when one was received, and
// Cause holds the underlying transport error, if any.
type APIError struct {
	Type       string
	Message    string
	StatusCode int
	RequestID  string
	Method     string
	Endpoint   string
	Attempt    int
	MaxRetries int
	Timestamp  time.Time
	Cause      error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.RequestID != "" {
		msg = fmt.Sprintf("[%s] %s", e.RequestID, msg)
	}
	if e.Attempt > 0 {
		msg = fmt.Sprintf("%s (attempt %d/%d)", msg, e.Attempt, e.MaxRetries)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error types so errors.Is can match on a prototype APIError.
func (e *APIError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*APIError); ok {
		return e.Type == t.Type
	}
	return false
}

// IsTransient reports whether err represents a failure that might succeed on
// retry: network errors, timeouts, 5xx responses and rate limiting.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrCircuitOpen) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Type {
		case ErrorTypeNetwork, ErrorTypeTimeout, ErrorTypeServer, ErrorTypeRateLimit, ErrorTypeCircuitOpen:
			return true
		case ErrorTypeBadRequest:
			return apiErr.StatusCode == http.StatusTooManyRequests
		}
	}
	return false
}

// errorTypeForStatus maps an HTTP status code to an error type label.
func errorTypeForStatus(status int) string {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrorTypeAuth
	case status == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return ErrorTypeTimeout
	case status >= 500:
		return ErrorTypeServer
	default:
		return ErrorTypeBadRequest
	}
}

// validationError builds a Validation APIError for a request model field.
func validationError(format string, args ...any) *APIError {
	return &APIError{
		Type:      ErrorTypeValidation,
		Message:   fmt.Sprintf(format, args...),
		Timestamp: time.Now(),
	}
}
