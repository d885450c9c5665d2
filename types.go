package scrapegraph

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// RetryCondition decides whether a response/error pair is retryable.
type RetryCondition func(resp *http.Response, err error) bool

// RetryPolicy decides whether to retry and how long to wait before the next
// attempt. Implementations own both the eligibility check and the backoff.
type RetryPolicy interface {
	ShouldRetry(resp *http.Response, err error, attempt int) (time.Duration, bool)
}

// Middleware wraps request execution for cross-cutting concerns such as
// custom headers, tracing or request capture.
type Middleware func(req *http.Request, next RoundTripper) (*http.Response, error)

// RoundTripper is the transport interface seen by middleware.
type RoundTripper interface {
	RoundTrip(*http.Request) (*http.Response, error)
}

// RoundTripperFunc adapts a function to the RoundTripper interface.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Job status values reported by the asynchronous endpoints.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// terminalStatus reports whether a job has finished, successfully or not.
func terminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusFailed
}
