package scrapegraph

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ScrapeGraphAI/scrapegraph-sdk/internal/backoff"
)

// BackoffStrategy selects the algorithm used to space retries.
type BackoffStrategy int

const (
	// ExponentialJitter grows the delay exponentially with uniform jitter.
	ExponentialJitter BackoffStrategy = iota
	// DecorrelatedJitter uses AWS-style decorrelated jitter.
	DecorrelatedJitter
)

// DefaultRetryPolicy retries transport errors, 429 and 5xx responses up to
// maxRetries times, honoring Retry-After headers and spacing attempts with
// the configured backoff strategy.
type DefaultRetryPolicy struct {
	maxRetries        int
	initialBackoff    time.Duration
	maxBackoff        time.Duration
	backoffMultiplier float64
	jitter            float64
	condition         RetryCondition
	calculator        *backoff.Calculator
}

// NewDefaultRetryPolicy creates the policy used by the client when no custom
// policy is configured.
func NewDefaultRetryPolicy(maxRetries int, initialBackoff, maxBackoff time.Duration, multiplier, jitter float64) *DefaultRetryPolicy {
	return newDefaultRetryPolicyWithCondition(maxRetries, initialBackoff, maxBackoff, multiplier, jitter, DefaultRetryCondition)
}

func newDefaultRetryPolicyWithCondition(maxRetries int, initialBackoff, maxBackoff time.Duration, multiplier, jitter float64, condition RetryCondition) *DefaultRetryPolicy {
	if condition == nil {
		condition = DefaultRetryCondition
	}
	return &DefaultRetryPolicy{
		maxRetries:        maxRetries,
		initialBackoff:    initialBackoff,
		maxBackoff:        maxBackoff,
		backoffMultiplier: multiplier,
		jitter:            jitter,
		condition:         condition,
		calculator:        backoff.NewExponentialJitterCalculator(),
	}
}

func (p *DefaultRetryPolicy) setStrategy(strategy BackoffStrategy) {
	switch strategy {
	case DecorrelatedJitter:
		p.calculator = backoff.NewDecorrelatedJitterCalculator()
	default:
		p.calculator = backoff.NewExponentialJitterCalculator()
	}
}

// ShouldRetry implements the RetryPolicy interface.
func (p *DefaultRetryPolicy) ShouldRetry(resp *http.Response, err error, attempt int) (time.Duration, bool) {
	if attempt >= p.maxRetries {
		return 0, false
	}
	if !p.condition(resp, err) {
		return 0, false
	}

	// A 429 or 503 may carry an explicit Retry-After.
	var delay time.Duration
	if resp != nil {
		delay = parseRetryAfter(resp.Header.Get("Retry-After"))
	}
	if delay == 0 {
		delay = p.calculator.Calculate(attempt, p.initialBackoff, p.maxBackoff, p.backoffMultiplier, p.jitter)
	}
	return delay, true
}

// parseRetryAfter parses a Retry-After header value in either delay-seconds
// or HTTP-date form. Delays are capped at one hour; unparseable values
// yield zero.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		if seconds > 0 {
			delay := time.Duration(seconds) * time.Second
			if delay > time.Hour {
				delay = time.Hour
			}
			return delay
		}
		return 0
	}

	if t, err := http.ParseTime(value); err == nil {
		delay := time.Until(t)
		if delay > 0 && delay <= time.Hour {
			return delay
		}
	}

	return 0
}
