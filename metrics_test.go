package scrapegraph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsCollectorRecordsRequests(t *testing.T) {
	registry := prometheus.NewRegistry()
	mc := NewMetricsCollectorWithRegistry(registry)

	mc.RecordRequest("GET", "credits", 200, 50*time.Millisecond)
	mc.RecordRequest("GET", "credits", 200, 10*time.Millisecond)
	mc.RecordRequest("POST", "smartscraper", 500, time.Second)

	if got := testutil.ToFloat64(mc.requestsTotal.WithLabelValues("GET", "200", "credits")); got != 2 {
		t.Errorf("Expected 2 GET credits requests, got %v", got)
	}
	if got := testutil.ToFloat64(mc.requestsTotal.WithLabelValues("POST", "500", "smartscraper")); got != 1 {
		t.Errorf("Expected 1 POST smartscraper request, got %v", got)
	}
}

func TestMetricsCollectorRecordsRetriesAndErrors(t *testing.T) {
	registry := prometheus.NewRegistry()
	mc := NewMetricsCollectorWithRegistry(registry)

	mc.RecordRetry("GET", "credits", 1)
	mc.RecordRetry("GET", "credits", 2)
	mc.RecordError(ErrorTypeServer, "GET", "credits")

	if got := testutil.ToFloat64(mc.retriesTotal.WithLabelValues("GET", "credits", "1")); got != 1 {
		t.Errorf("Expected 1 first retry, got %v", got)
	}
	if got := testutil.ToFloat64(mc.errorsTotal.WithLabelValues(ErrorTypeServer, "GET", "credits")); got != 1 {
		t.Errorf("Expected 1 server error, got %v", got)
	}
}

func TestMetricsCollectorGauges(t *testing.T) {
	registry := prometheus.NewRegistry()
	mc := NewMetricsCollectorWithRegistry(registry)

	mc.RecordRequestStart("GET", "credits")
	if got := testutil.ToFloat64(mc.requestsInFlight.WithLabelValues("GET", "credits")); got != 1 {
		t.Errorf("Expected 1 in-flight request, got %v", got)
	}
	mc.RecordRequestEnd("GET", "credits")
	if got := testutil.ToFloat64(mc.requestsInFlight.WithLabelValues("GET", "credits")); got != 0 {
		t.Errorf("Expected 0 in-flight requests, got %v", got)
	}

	mc.RecordCircuitBreakerState("default", StateOpen)
	if got := testutil.ToFloat64(mc.circuitBreakerState.WithLabelValues("default")); got != float64(StateOpen) {
		t.Errorf("Expected circuit state %d, got %v", StateOpen, got)
	}

	mc.RecordRateLimiterTokens("default", 7)
	if got := testutil.ToFloat64(mc.rateLimiterTokens.WithLabelValues("default")); got != 7 {
		t.Errorf("Expected 7 tokens, got %v", got)
	}
}

func TestNilMetricsCollectorIsSafe(t *testing.T) {
	var mc *MetricsCollector

	mc.RecordRequestStart("GET", "credits")
	mc.RecordRequestEnd("GET", "credits")
	mc.RecordRequest("GET", "credits", 200, time.Millisecond)
	mc.RecordRetry("GET", "credits", 1)
	mc.RecordError(ErrorTypeNetwork, "GET", "credits")
	mc.RecordCircuitBreakerState("default", StateClosed)
	mc.RecordRateLimiterTokens("default", 1)
}

func TestClientRecordsMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	mc := NewMetricsCollectorWithRegistry(registry)

	var first = true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if first {
			first = false
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(statusBody))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithMetricsCollector(mc))
	if _, err := client.Credits(context.Background()); err != nil {
		t.Fatalf("Credits() returned error: %v", err)
	}

	if got := testutil.ToFloat64(mc.requestsTotal.WithLabelValues("GET", "200", "credits")); got != 1 {
		t.Errorf("Expected 1 successful request recorded, got %v", got)
	}
	if got := testutil.ToFloat64(mc.retriesTotal.WithLabelValues("GET", "credits", "1")); got != 1 {
		t.Errorf("Expected 1 retry recorded, got %v", got)
	}
}
