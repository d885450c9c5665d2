package scrapegraph

import "context"

// FeedbackRequest rates the result of a previous request, 0 to 5 stars.
type FeedbackRequest struct {
	RequestID    string `json:"request_id"`
	Rating       int    `json:"rating"`
	FeedbackText string `json:"feedback_text,omitempty"`
}

// Validate checks the request against the rules the API enforces.
func (r *FeedbackRequest) Validate() error {
	if err := validateRequestID(r.RequestID); err != nil {
		return err
	}
	if r.Rating < 0 || r.Rating > 5 {
		return validationError("rating must be between 0 and 5")
	}
	return nil
}

// FeedbackResponse acknowledges submitted feedback.
type FeedbackResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

// SubmitFeedback records feedback for a completed request.
func (c *Client) SubmitFeedback(ctx context.Context, req FeedbackRequest) (*FeedbackResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp FeedbackResponse
	if err := c.postJSON(ctx, "feedback", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
