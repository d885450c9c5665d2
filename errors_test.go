package scrapegraph

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAPIErrorFormatting(t *testing.T) {
	err := &APIError{
		Type:       ErrorTypeServer,
		Message:    "internal error",
		StatusCode: 500,
		RequestID:  "req-1",
		Attempt:    2,
		MaxRetries: 3,
	}

	msg := err.Error()
	for _, want := range []string{"Server", "internal error", "status 500", "[req-1]", "attempt 2/3"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestAPIErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &APIError{Type: ErrorTypeNetwork, Message: "request failed", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to find the cause")
	}
	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestAPIErrorIsMatchesType(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &APIError{Type: ErrorTypeRateLimit, Message: "slow down"})

	if !errors.Is(err, &APIError{Type: ErrorTypeRateLimit}) {
		t.Error("Expected errors.Is to match on error type")
	}
	if errors.Is(err, &APIError{Type: ErrorTypeAuth}) {
		t.Error("Expected errors.Is not to match a different type")
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"network", &APIError{Type: ErrorTypeNetwork}, true},
		{"timeout", &APIError{Type: ErrorTypeTimeout}, true},
		{"server", &APIError{Type: ErrorTypeServer, StatusCode: 502}, true},
		{"rate limit", &APIError{Type: ErrorTypeRateLimit, StatusCode: 429}, true},
		{"auth", &APIError{Type: ErrorTypeAuth, StatusCode: 401}, false},
		{"bad request", &APIError{Type: ErrorTypeBadRequest, StatusCode: 400}, false},
		{"validation", &APIError{Type: ErrorTypeValidation}, false},
		{"sentinel rate limited", ErrRateLimited, true},
		{"sentinel circuit open", ErrCircuitOpen, true},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestErrorTypeForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusUnauthorized, ErrorTypeAuth},
		{http.StatusForbidden, ErrorTypeAuth},
		{http.StatusTooManyRequests, ErrorTypeRateLimit},
		{http.StatusRequestTimeout, ErrorTypeTimeout},
		{http.StatusGatewayTimeout, ErrorTypeTimeout},
		{http.StatusInternalServerError, ErrorTypeServer},
		{http.StatusBadGateway, ErrorTypeServer},
		{http.StatusBadRequest, ErrorTypeBadRequest},
		{http.StatusNotFound, ErrorTypeBadRequest},
	}

	for _, tt := range tests {
		if got := errorTypeForStatus(tt.status); got != tt.want {
			t.Errorf("errorTypeForStatus(%d) = %s, want %s", tt.status, got, tt.want)
		}
	}
}
