package scrapegraph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchScraperRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     SearchScraperRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  SearchScraperRequest{UserPrompt: "Latest AI news"},
		},
		{
			name: "valid with num results",
			req:  SearchScraperRequest{UserPrompt: "Latest AI news", NumResults: 10},
		},
		{
			name:    "empty prompt",
			req:     SearchScraperRequest{UserPrompt: ""},
			wantErr: "user_prompt cannot be empty",
		},
		{
			name:    "too few results",
			req:     SearchScraperRequest{UserPrompt: "news", NumResults: 2},
			wantErr: "num_results must be between 3 and 20",
		},
		{
			name:    "too many results",
			req:     SearchScraperRequest{UserPrompt: "news", NumResults: 21},
			wantErr: "num_results must be between 3 and 20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSearchScraperDecodesReferenceURLs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/searchscraper", r.URL.Path)
		w.Write([]byte(`{
			"request_id": "b5f7e3a0-1234-4c9a-9f00-2d54e086b6ce",
			"status": "completed",
			"result": {"answer": "42"},
			"reference_urls": ["https://a.example", "https://b.example"]
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	resp, err := client.SearchScraper(context.Background(), SearchScraperRequest{
		UserPrompt: "What is the answer",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, resp.Status)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, resp.ReferenceURLs)
}

func TestGetSearchScraperValidatesRequestID(t *testing.T) {
	client, err := NewClient(testAPIKey)
	require.NoError(t, err)

	_, err = client.GetSearchScraper(context.Background(), "nope")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorTypeValidation, apiErr.Type)
}
