package scrapegraph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownifyRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     MarkdownifyRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  MarkdownifyRequest{WebsiteURL: "https://example.com"},
		},
		{
			name:    "empty url",
			req:     MarkdownifyRequest{},
			wantErr: "website_url cannot be empty",
		},
		{
			name:    "bad scheme",
			req:     MarkdownifyRequest{WebsiteURL: "example.com"},
			wantErr: "must start with http:// or https://",
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

func TestMarkdownifyDecodesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/markdownify", r.URL.Path)
		w.Write([]byte(`{
			"request_id": "b5f7e3a0-1234-4c9a-9f00-2d54e086b6ce",
			"status": "completed",
			"result": "# Example Domain\n\nSome text."
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	resp, err := client.Markdownify(context.Background(), MarkdownifyRequest{
		WebsiteURL: "https://example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, resp.Status)
	assert.Contains(t, resp.Result, "# Example Domain")
}

func TestGetMarkdownifyValidatesRequestID(t *testing.T) {
	client, err := NewClient(testAPIKey)
	require.NoError(t, err)

	_, err = client.GetMarkdownify(context.Background(), "nope")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorTypeValidation, apiErr.Type)
}
