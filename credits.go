package scrapegraph

import "context"

// CreditsResponse reports account credit usage.
type CreditsResponse struct {
	RemainingCredits int `json:"remaining_credits"`
	TotalCreditsUsed int `json:"total_credits_used"`
}

// Credits fetches the remaining credit balance for the account.
func (c *Client) Credits(ctx context.Context) (*CreditsResponse, error) {
	var resp CreditsResponse
	if err := c.getJSON(ctx, "credits", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
