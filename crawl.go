package scrapegraph

import (
	"context"
	"encoding/json"
)

// CrawlRequest describes a multi-page crawl job with schema-driven
// extraction.
type CrawlRequest struct {
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
	// DataSchema is a JSON schema the extracted data must conform to.
	DataSchema     map[string]any `json:"data_schema,omitempty"`
	CacheWebsite   bool           `json:"cache_website,omitempty"`
	Depth          int            `json:"depth,omitempty"`
	MaxPages       int            `json:"max_pages,omitempty"`
	SameDomainOnly bool           `json:"same_domain_only,omitempty"`
	BatchSize      int            `json:"batch_size,omitempty"`
	Sitemap        bool           `json:"sitemap,omitempty"`
}

// Validate checks the request against the rules the API enforces.
func (r *CrawlRequest) Validate() error {
	if err := validateWebsiteURL("url", r.URL); err != nil {
		return err
	}
	if err := validatePrompt("prompt", r.Prompt); err != nil {
		return err
	}
	if r.Depth != 0 && (r.Depth < 1 || r.Depth > 10) {
		return validationError("depth must be between 1 and 10")
	}
	if r.MaxPages != 0 && (r.MaxPages < 1 || r.MaxPages > 100) {
		return validationError("max_pages must be between 1 and 100")
	}
	if r.BatchSize != 0 && (r.BatchSize < 1 || r.BatchSize > 10) {
		return validationError("batch_size must be between 1 and 10")
	}
	return nil
}

// CrawlResponse acknowledges a submitted crawl job. The job runs in the
// background; poll GetCrawl with the returned ID.
type CrawlResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// CrawlStatusResponse is the status envelope for a crawl job. Result is left
// raw; its shape depends on the submitted schema.
type CrawlStatusResponse struct {
	CrawlID string          `json:"crawl_id,omitempty"`
	Status  string          `json:"status"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Crawl submits a crawl job.
func (c *Client) Crawl(ctx context.Context, req CrawlRequest) (*CrawlResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp CrawlResponse
	if err := c.postJSON(ctx, "crawl", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCrawl fetches the status and result of a crawl job. Crawl IDs are
// opaque task identifiers, not UUIDs, so only presence is checked.
func (c *Client) GetCrawl(ctx context.Context, crawlID string) (*CrawlStatusResponse, error) {
	if crawlID == "" {
		return nil, validationError("crawl ID cannot be empty")
	}
	var resp CrawlStatusResponse
	if err := c.getJSON(ctx, "crawl/"+crawlID, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
