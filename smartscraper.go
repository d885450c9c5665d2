package scrapegraph

import (
	"context"
	"encoding/json"
)

// maxWebsiteHTMLSize is the largest raw HTML payload the API accepts.
const maxWebsiteHTMLSize = 2 * 1024 * 1024

// SmartScraperRequest describes an extraction job. Exactly one of WebsiteURL
// or WebsiteHTML must be set.
type SmartScraperRequest struct {
	WebsiteURL  string            `json:"website_url,omitempty"`
	WebsiteHTML string            `json:"website_html,omitempty"`
	UserPrompt  string            `json:"user_prompt"`
	Headers     map[string]string `json:"headers,omitempty"`
	Cookies     map[string]string `json:"cookies,omitempty"`
	// OutputSchema is a JSON schema constraining the shape of the result.
	OutputSchema    map[string]any `json:"output_schema,omitempty"`
	NumberOfScrolls int            `json:"number_of_scrolls,omitempty"`
	TotalPages      int            `json:"total_pages,omitempty"`
}

// Validate checks the request against the rules the API enforces.
func (r *SmartScraperRequest) Validate() error {
	if err := validatePrompt("user_prompt", r.UserPrompt); err != nil {
		return err
	}
	if r.WebsiteURL == "" && r.WebsiteHTML == "" {
		return validationError("either website_url or website_html must be provided")
	}
	if r.WebsiteURL != "" && r.WebsiteHTML != "" {
		return validationError("only one of website_url or website_html can be provided")
	}
	if r.WebsiteHTML != "" && len(r.WebsiteHTML) > maxWebsiteHTMLSize {
		return validationError("website_html content exceeds maximum size of 2MB")
	}
	if r.WebsiteURL != "" {
		if err := validateWebsiteURL("website_url", r.WebsiteURL); err != nil {
			return err
		}
	}
	if r.NumberOfScrolls < 0 || r.NumberOfScrolls > 100 {
		return validationError("number_of_scrolls must be between 0 and 100")
	}
	if r.TotalPages != 0 && (r.TotalPages < 1 || r.TotalPages > 10) {
		return validationError("total_pages must be between 1 and 10")
	}
	return nil
}

// SmartScraperResponse is the job envelope returned by the smartscraper
// endpoints. Result is left raw for the caller to decode against their own
// schema.
type SmartScraperResponse struct {
	RequestID  string          `json:"request_id"`
	Status     string          `json:"status"`
	WebsiteURL string          `json:"website_url,omitempty"`
	UserPrompt string          `json:"user_prompt,omitempty"`
	Result     json.RawMessage `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// SmartScraper submits an extraction job. The response carries the request
// ID and, when the server answers synchronously, the completed result.
func (c *Client) SmartScraper(ctx context.Context, req SmartScraperRequest) (*SmartScraperResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp SmartScraperResponse
	if err := c.postJSON(ctx, "smartscraper", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSmartScraper fetches the status and result of a previous smartscraper
// request.
func (c *Client) GetSmartScraper(ctx context.Context, requestID string) (*SmartScraperResponse, error) {
	if err := validateRequestID(requestID); err != nil {
		return nil, err
	}
	var resp SmartScraperResponse
	if err := c.getJSON(ctx, "smartscraper/"+requestID, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
