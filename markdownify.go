package scrapegraph

import "context"

// MarkdownifyRequest asks the API to convert a page to markdown.
type MarkdownifyRequest struct {
	WebsiteURL string            `json:"website_url"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Validate checks the request against the rules the API enforces.
func (r *MarkdownifyRequest) Validate() error {
	return validateWebsiteURL("website_url", r.WebsiteURL)
}

// MarkdownifyResponse is the job envelope returned by the markdownify
// endpoints. Result holds the markdown text once the job completes.
type MarkdownifyResponse struct {
	RequestID  string `json:"request_id"`
	Status     string `json:"status"`
	WebsiteURL string `json:"website_url,omitempty"`
	Result     string `json:"result,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Markdownify submits a markdown conversion job.
func (c *Client) Markdownify(ctx context.Context, req MarkdownifyRequest) (*MarkdownifyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp MarkdownifyResponse
	if err := c.postJSON(ctx, "markdownify", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetMarkdownify fetches the status and result of a previous markdownify
// request.
func (c *Client) GetMarkdownify(ctx context.Context, requestID string) (*MarkdownifyResponse, error) {
	if err := validateRequestID(requestID); err != nil {
		return nil, err
	}
	var resp MarkdownifyResponse
	if err := c.getJSON(ctx, "markdownify/"+requestID, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
