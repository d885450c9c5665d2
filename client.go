package scrapegraph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/ScrapeGraphAI/scrapegraph-sdk/internal/singleflight"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.scrapegraphai.com/v1"

// apiKeyHeader carries the API key on every request.
const apiKeyHeader = "SGAI-APIKEY"

// envAPIKey is the environment variable read by NewClientFromEnv.
const envAPIKey = "SGAI_API_KEY"

// Client is the synchronous ScrapeGraphAI client. It owns the request
// lifecycle: validation, auth headers, retries with backoff, optional rate
// limiting and circuit breaking, error classification and JSON decoding.
// It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string

	maxRetries        int
	initialBackoff    time.Duration
	maxBackoff        time.Duration
	backoffMultiplier float64
	jitter            float64
	timeout           time.Duration

	retryCondition RetryCondition
	retryPolicy    RetryPolicy
	circuitBreaker *CircuitBreaker
	rateLimiter    *RateLimiter
	middleware     []Middleware
	metrics        *MetricsCollector
	logger         Logger
	debug          *DebugConfig

	pollGroup    *singleflight.Group
	pollInterval time.Duration
}

// NewClient constructs a Client for the given API key. The key must have the
// sgai-<uuid> shape issued by the dashboard. Options configure retries,
// transport, logging and metrics; the defaults match the hosted service
// (120s timeout, 3 retries, 1s initial / 30s max backoff).
func NewClient(apiKey string, options ...Option) (*Client, error) {
	if err := validateAPIKey(apiKey); err != nil {
		return nil, err
	}

	c := &Client{
		httpClient:        &http.Client{Timeout: 120 * time.Second},
		baseURL:           DefaultBaseURL,
		apiKey:            apiKey,
		userAgent:         defaultUserAgent(),
		maxRetries:        3,
		initialBackoff:    time.Second,
		maxBackoff:        30 * time.Second,
		backoffMultiplier: 2.0,
		jitter:            0.1,
		timeout:           120 * time.Second,
		retryCondition:    DefaultRetryCondition,
		debug:             DefaultDebugConfig(),
		pollInterval:      5 * time.Second,
	}

	for _, option := range options {
		option(c)
	}

	if c.retryPolicy == nil {
		c.retryPolicy = newDefaultRetryPolicyWithCondition(
			c.maxRetries, c.initialBackoff, c.maxBackoff,
			c.backoffMultiplier, c.jitter, c.retryCondition)
	}

	if err := c.validateConfiguration(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewClientFromEnv constructs a Client using the SGAI_API_KEY environment
// variable, loading a .env file first when one is present.
func NewClientFromEnv(options ...Option) (*Client, error) {
	_ = godotenv.Load()
	apiKey := os.Getenv(envAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("scrapegraph: %s environment variable not set", envAPIKey)
	}
	return NewClient(apiKey, options...)
}

func validateAPIKey(apiKey string) error {
	if apiKey == "" {
		return ErrMissingAPIKey
	}
	rest, ok := strings.CutPrefix(apiKey, "sgai-")
	if !ok {
		return ErrInvalidAPIKey
	}
	if _, err := uuid.Parse(rest); err != nil {
		return ErrInvalidAPIKey
	}
	return nil
}

// getJSON issues a GET against path and decodes the response into out.
// Concurrent calls for the same path are coalesced when poll deduplication
// is enabled.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if c.pollGroup != nil {
		body, err := c.pollGroup.Do(path, func() ([]byte, error) {
			return c.execute(ctx, http.MethodGet, path, nil)
		})
		if err != nil {
			return err
		}
		return json.Unmarshal(body, out)
	}

	body, err := c.execute(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// postJSON serializes payload, issues a POST against path and decodes the
// response into out.
func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("scrapegraph: encode request: %w", err)
	}
	body, err := c.execute(ctx, http.MethodPost, path, data)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

// execute runs the full request lifecycle for one logical call: rate-limiter
// and circuit-breaker gates, the middleware chain, the HTTP round trip, and
// retries with backoff until the policy gives up. It returns the response
// body of the first successful attempt.
func (c *Client) execute(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	endpoint := metricsEndpoint(path)
	start := time.Now()

	var requestID string
	if c.debugEnabled() && c.debug.RequestIDGen != nil {
		requestID = c.debug.RequestIDGen()
	}
	if c.debugEnabled() && c.debug.LogRequests && c.logger != nil {
		c.logger.Debug("starting request", "requestID", requestID, "method", method, "path", path)
	}

	c.metrics.RecordRequestStart(method, endpoint)
	defer c.metrics.RecordRequestEnd(method, endpoint)

	for attempt := 0; ; attempt++ {
		if c.rateLimiter != nil {
			if !c.rateLimiter.Allow() {
				if c.debugEnabled() && c.debug.LogRateLimit && c.logger != nil {
					c.logger.Warn("rate limit exceeded", "requestID", requestID, "endpoint", endpoint)
				}
				c.metrics.RecordError(ErrorTypeRateLimit, method, endpoint)
				return nil, c.newRequestError(ErrorTypeRateLimit, "rate limit exceeded", ErrRateLimited, method, path, attempt)
			}
			c.metrics.RecordRateLimiterTokens("default", c.rateLimiter.Tokens())
		}

		if c.circuitBreaker != nil && !c.circuitBreaker.Allow() {
			if c.debugEnabled() && c.debug.LogCircuit && c.logger != nil {
				c.logger.Warn("circuit breaker open", "requestID", requestID, "endpoint", endpoint)
			}
			c.metrics.RecordError(ErrorTypeCircuitOpen, method, endpoint)
			return nil, c.newRequestError(ErrorTypeCircuitOpen, "circuit breaker is open", ErrCircuitOpen, method, path, attempt)
		}

		if attempt > 0 {
			if c.debugEnabled() && c.debug.LogRetries && c.logger != nil {
				c.logger.Info("retry attempt", "requestID", requestID, "attempt", attempt, "maxRetries", c.maxRetries, "endpoint", endpoint)
			}
			c.metrics.RecordRetry(method, endpoint, attempt)
		}

		resp, err := c.attempt(ctx, method, path, payload)

		if c.circuitBreaker != nil {
			if err != nil || resp.StatusCode >= 500 {
				c.circuitBreaker.RecordFailure()
			} else {
				c.circuitBreaker.RecordSuccess()
			}
			c.metrics.RecordCircuitBreakerState("default", c.circuitBreaker.State())
		}

		if err == nil && resp.StatusCode < 400 {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				c.metrics.RecordError(ErrorTypeNetwork, method, endpoint)
				return nil, c.newRequestError(ErrorTypeNetwork, "read response body", readErr, method, path, attempt)
			}
			c.metrics.RecordRequest(method, endpoint, resp.StatusCode, time.Since(start))
			return body, nil
		}

		delay, retry := c.retryPolicy.ShouldRetry(resp, err, attempt)
		if !retry {
			if err != nil {
				errType := ErrorTypeNetwork
				if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
					errType = ErrorTypeTimeout
				}
				c.metrics.RecordError(errType, method, endpoint)
				c.metrics.RecordRequest(method, endpoint, 0, time.Since(start))
				return nil, c.newRequestError(errType, "request failed", err, method, path, attempt)
			}
			apiErr := c.apiErrorFromResponse(resp, method, path, attempt)
			c.metrics.RecordError(apiErr.Type, method, endpoint)
			c.metrics.RecordRequest(method, endpoint, resp.StatusCode, time.Since(start))
			return nil, apiErr
		}

		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			c.metrics.RecordError(ErrorTypeServer, method, endpoint)
		} else {
			c.metrics.RecordError(ErrorTypeNetwork, method, endpoint)
		}

		if c.debugEnabled() && c.debug.LogRetries && c.logger != nil {
			c.logger.Info("scheduling retry", "requestID", requestID, "attempt", attempt+1, "backoff", delay, "endpoint", endpoint)
		}
		if sleepErr := sleepContext(ctx, delay); sleepErr != nil {
			c.metrics.RecordError(ErrorTypeTimeout, method, endpoint)
			return nil, c.newRequestError(ErrorTypeTimeout, "canceled while waiting to retry", sleepErr, method, path, attempt)
		}
	}
}

// attempt builds and executes a single HTTP request through the middleware
// chain. The request is rebuilt per attempt so the body can be replayed.
func (c *Client) attempt(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	fullURL := c.baseURL + "/" + strings.TrimPrefix(path, "/")

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.executeMiddleware(req)
}

func (c *Client) executeMiddleware(req *http.Request) (*http.Response, error) {
	if len(c.middleware) == 0 {
		return c.httpClient.Do(req)
	}

	current := RoundTripperFunc(c.httpClient.Do)

	for i := len(c.middleware) - 1; i >= 0; i-- {
		middleware := c.middleware[i]
		next := current
		current = RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			return middleware(r, next)
		})
	}

	return current.RoundTrip(req)
}

// apiErrorFromResponse classifies a non-2xx response, extracting the error
// message and request ID from the JSON body when present.
func (c *Client) apiErrorFromResponse(resp *http.Response, method, path string, attempt int) *APIError {
	defer resp.Body.Close()
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	message := http.StatusText(resp.StatusCode)
	var wire struct {
		Error     string `json:"error"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	}
	if json.Unmarshal(data, &wire) == nil {
		if wire.Error != "" {
			message = wire.Error
		} else if wire.Message != "" {
			message = wire.Message
		}
	}

	return &APIError{
		Type:       errorTypeForStatus(resp.StatusCode),
		Message:    message,
		StatusCode: resp.StatusCode,
		RequestID:  wire.RequestID,
		Method:     method,
		Endpoint:   path,
		Attempt:    attempt + 1,
		MaxRetries: c.maxRetries,
		Timestamp:  time.Now(),
	}
}

func (c *Client) newRequestError(errType, message string, cause error, method, path string, attempt int) *APIError {
	return &APIError{
		Type:       errType,
		Message:    message,
		Cause:      cause,
		Method:     method,
		Endpoint:   path,
		Attempt:    attempt + 1,
		MaxRetries: c.maxRetries,
		Timestamp:  time.Now(),
	}
}

func (c *Client) debugEnabled() bool {
	return c.debug != nil && c.debug.Enabled
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// DefaultRetryCondition retries on transport errors, 429 and 5xx responses.
func DefaultRetryCondition(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}
	return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
}

// metricsEndpoint reduces a request path to its first segment so metric
// labels stay low-cardinality (status lookups embed request IDs).
func metricsEndpoint(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}

// sleepContext sleeps for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// validateConfiguration checks that options compose into a usable client.
func (c *Client) validateConfiguration() error {
	var problems []string

	if c.maxRetries < 0 {
		problems = append(problems, "maxRetries must be non-negative")
	}
	if c.initialBackoff <= 0 {
		problems = append(problems, "initialBackoff must be positive")
	}
	if c.maxBackoff < c.initialBackoff {
		problems = append(problems, "maxBackoff must be greater than or equal to initialBackoff")
	}
	if c.backoffMultiplier <= 0 {
		problems = append(problems, "backoffMultiplier must be positive")
	}
	if c.jitter < 0 || c.jitter > 1 {
		problems = append(problems, "jitter must be between 0 and 1")
	}
	if c.timeout <= 0 {
		problems = append(problems, "timeout must be positive")
	}
	if c.httpClient == nil {
		problems = append(problems, "HTTP client cannot be nil")
	}
	if c.pollInterval <= 0 {
		problems = append(problems, "pollInterval must be positive")
	}
	if _, err := url.Parse(c.baseURL); err != nil || c.baseURL == "" {
		problems = append(problems, "baseURL must be a valid URL")
	}
	for i, m := range c.middleware {
		if m == nil {
			problems = append(problems, fmt.Sprintf("middleware[%d] cannot be nil", i))
		}
	}
	if c.rateLimiter != nil {
		if c.rateLimiter.maxTokens <= 0 {
			problems = append(problems, "rateLimiter maxTokens must be positive")
		}
		if c.rateLimiter.refillRate <= 0 {
			problems = append(problems, "rateLimiter refillRate must be positive")
		}
	}
	if c.circuitBreaker != nil {
		if c.circuitBreaker.config.FailureThreshold <= 0 {
			problems = append(problems, "circuitBreaker FailureThreshold must be positive")
		}
		if c.circuitBreaker.config.RecoveryTimeout <= 0 {
			problems = append(problems, "circuitBreaker RecoveryTimeout must be positive")
		}
		if c.circuitBreaker.config.SuccessThreshold <= 0 {
			problems = append(problems, "circuitBreaker SuccessThreshold must be positive")
		}
	}
	if c.debugEnabled() && c.logger == nil {
		problems = append(problems, "logger must be set when debug is enabled")
	}

	if len(problems) > 0 {
		return &APIError{
			Type:    ErrorTypeValidation,
			Message: "configuration validation failed",
			Cause:   fmt.Errorf("validation errors: %v", problems),
		}
	}
	return nil
}
