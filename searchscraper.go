package scrapegraph

import (
	"context"
	"encoding/json"
)

// SearchScraperRequest describes an extraction job that runs across web
// search results instead of a single page.
type SearchScraperRequest struct {
	UserPrompt string `json:"user_prompt"`
	// NumResults is how many search results to visit, 3 to 20. Zero means
	// the server default of 3.
	NumResults   int               `json:"num_results,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	OutputSchema map[string]any    `json:"output_schema,omitempty"`
}

// Validate checks the request against the rules the API enforces.
func (r *SearchScraperRequest) Validate() error {
	if err := validatePrompt("user_prompt", r.UserPrompt); err != nil {
		return err
	}
	if r.NumResults != 0 && (r.NumResults < 3 || r.NumResults > 20) {
		return validationError("num_results must be between 3 and 20")
	}
	return nil
}

// SearchScraperResponse is the job envelope returned by the searchscraper
// endpoints.
type SearchScraperResponse struct {
	RequestID     string          `json:"request_id"`
	Status        string          `json:"status"`
	UserPrompt    string          `json:"user_prompt,omitempty"`
	Result        json.RawMessage `json:"result,omitempty"`
	ReferenceURLs []string        `json:"reference_urls,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// SearchScraper submits a search-based extraction job.
func (c *Client) SearchScraper(ctx context.Context, req SearchScraperRequest) (*SearchScraperResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp SearchScraperResponse
	if err := c.postJSON(ctx, "searchscraper", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSearchScraper fetches the status and result of a previous searchscraper
// request.
func (c *Client) GetSearchScraper(ctx context.Context, requestID string) (*SearchScraperResponse, error) {
	if err := validateRequestID(requestID); err != nil {
		return nil, err
	}
	var resp SearchScraperResponse
	if err := c.getJSON(ctx, "searchscraper/"+requestID, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
