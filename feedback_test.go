package scrapegraph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     FeedbackRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  FeedbackRequest{RequestID: "b5f7e3a0-1234-4c9a-9f00-2d54e086b6ce", Rating: 5},
		},
		{
			name: "valid without text",
			req:  FeedbackRequest{RequestID: "b5f7e3a0-1234-4c9a-9f00-2d54e086b6ce", Rating: 0},
		},
		{
			name:    "empty request id",
			req:     FeedbackRequest{Rating: 3},
			wantErr: "request ID cannot be empty",
		},
		{
			name:    "malformed request id",
			req:     FeedbackRequest{RequestID: "not-a-uuid", Rating: 3},
			wantErr: "request ID must be a valid UUID",
		},
		{
			name:    "rating too high",
			req:     FeedbackRequest{RequestID: "b5f7e3a0-1234-4c9a-9f00-2d54e086b6ce", Rating: 6},
			wantErr: "rating must be between 0 and 5",
		},
		{
			name:    "negative rating",
			req:     FeedbackRequest{RequestID: "b5f7e3a0-1234-4c9a-9f00-2d54e086b6ce", Rating: -1},
			wantErr: "rating must be between 0 and 5",
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
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, ErrorTypeValidation, apiErr.Type)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSubmitFeedback(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/feedback", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`{"request_id":"b5f7e3a0-1234-4c9a-9f00-2d54e086b6ce","message":"Feedback recorded"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	resp, err := client.SubmitFeedback(context.Background(), FeedbackRequest{
		RequestID:    "b5f7e3a0-1234-4c9a-9f00-2d54e086b6ce",
		Rating:       4,
		FeedbackText: "Accurate extraction",
	})
	require.NoError(t, err)
	assert.Equal(t, "Feedback recorded", resp.Message)
	assert.Equal(t, float64(4), payload["rating"])
	assert.Equal(t, "Accurate extraction", payload["feedback_text"])
}
