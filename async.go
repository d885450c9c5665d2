package scrapegraph

import "context"

// Future holds the eventual result of an asynchronous call.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any](run func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		f.value, f.err = run()
		close(f.done)
	}()
	return f
}

// Done returns a channel closed when the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the result is available or ctx is done. The underlying
// call keeps running if ctx expires first; pass the same ctx to the call to
// cancel it as well.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-f.done:
		return f.value, f.err
	}
}

// AsyncClient is the asynchronous façade: every operation returns a Future
// resolved by a background goroutine, and Wait helpers poll the status
// endpoints until a job finishes.
type AsyncClient struct {
	client *Client
}

// NewAsyncClient constructs an AsyncClient with the same options as
// NewClient.
func NewAsyncClient(apiKey string, options ...Option) (*AsyncClient, error) {
	client, err := NewClient(apiKey, options...)
	if err != nil {
		return nil, err
	}
	return &AsyncClient{client: client}, nil
}

// NewAsyncClientFromEnv constructs an AsyncClient using SGAI_API_KEY.
func NewAsyncClientFromEnv(options ...Option) (*AsyncClient, error) {
	client, err := NewClientFromEnv(options...)
	if err != nil {
		return nil, err
	}
	return &AsyncClient{client: client}, nil
}

// Async returns an asynchronous façade sharing this client's configuration
// and connection pool.
func (c *Client) Async() *AsyncClient {
	return &AsyncClient{client: c}
}

// Client returns the underlying synchronous client.
func (a *AsyncClient) Client() *Client {
	return a.client
}

// SmartScraper submits an extraction job in the background.
func (a *AsyncClient) SmartScraper(ctx context.Context, req SmartScraperRequest) *Future[*SmartScraperResponse] {
	return newFuture(func() (*SmartScraperResponse, error) {
		return a.client.SmartScraper(ctx, req)
	})
}

// GetSmartScraper fetches a smartscraper status in the background.
func (a *AsyncClient) GetSmartScraper(ctx context.Context, requestID string) *Future[*SmartScraperResponse] {
	return newFuture(func() (*SmartScraperResponse, error) {
		return a.client.GetSmartScraper(ctx, requestID)
	})
}

// SearchScraper submits a search extraction job in the background.
func (a *AsyncClient) SearchScraper(ctx context.Context, req SearchScraperRequest) *Future[*SearchScraperResponse] {
	return newFuture(func() (*SearchScraperResponse, error) {
		return a.client.SearchScraper(ctx, req)
	})
}

// GetSearchScraper fetches a searchscraper status in the background.
func (a *AsyncClient) GetSearchScraper(ctx context.Context, requestID string) *Future[*SearchScraperResponse] {
	return newFuture(func() (*SearchScraperResponse, error) {
		return a.client.GetSearchScraper(ctx, requestID)
	})
}

// Markdownify submits a markdown conversion job in the background.
func (a *AsyncClient) Markdownify(ctx context.Context, req MarkdownifyRequest) *Future[*MarkdownifyResponse] {
	return newFuture(func() (*MarkdownifyResponse, error) {
		return a.client.Markdownify(ctx, req)
	})
}

// GetMarkdownify fetches a markdownify status in the background.
func (a *AsyncClient) GetMarkdownify(ctx context.Context, requestID string) *Future[*MarkdownifyResponse] {
	return newFuture(func() (*MarkdownifyResponse, error) {
		return a.client.GetMarkdownify(ctx, requestID)
	})
}

// Crawl submits a crawl job in the background.
func (a *AsyncClient) Crawl(ctx context.Context, req CrawlRequest) *Future[*CrawlResponse] {
	return newFuture(func() (*CrawlResponse, error) {
		return a.client.Crawl(ctx, req)
	})
}

// GetCrawl fetches a crawl status in the background.
func (a *AsyncClient) GetCrawl(ctx context.Context, crawlID string) *Future[*CrawlStatusResponse] {
	return newFuture(func() (*CrawlStatusResponse, error) {
		return a.client.GetCrawl(ctx, crawlID)
	})
}

// SubmitFeedback records feedback in the background.
func (a *AsyncClient) SubmitFeedback(ctx context.Context, req FeedbackRequest) *Future[*FeedbackResponse] {
	return newFuture(func() (*FeedbackResponse, error) {
		return a.client.SubmitFeedback(ctx, req)
	})
}

// Credits fetches the credit balance in the background.
func (a *AsyncClient) Credits(ctx context.Context) *Future[*CreditsResponse] {
	return newFuture(func() (*CreditsResponse, error) {
		return a.client.Credits(ctx)
	})
}

// WaitSmartScraper polls a smartscraper job until it finishes. A job that
// reports failed returns the final response alongside a Job error.
func (a *AsyncClient) WaitSmartScraper(ctx context.Context, requestID string) (*SmartScraperResponse, error) {
	for {
		resp, err := a.client.GetSmartScraper(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if terminalStatus(resp.Status) {
			if resp.Status == StatusFailed {
				return resp, jobFailedError("smartscraper", requestID, resp.Error)
			}
			return resp, nil
		}
		if err := sleepContext(ctx, a.client.pollInterval); err != nil {
			return nil, err
		}
	}
}

// WaitSearchScraper polls a searchscraper job until it finishes.
func (a *AsyncClient) WaitSearchScraper(ctx context.Context, requestID string) (*SearchScraperResponse, error) {
	for {
		resp, err := a.client.GetSearchScraper(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if terminalStatus(resp.Status) {
			if resp.Status == StatusFailed {
				return resp, jobFailedError("searchscraper", requestID, resp.Error)
			}
			return resp, nil
		}
		if err := sleepContext(ctx, a.client.pollInterval); err != nil {
			return nil, err
		}
	}
}

// WaitMarkdownify polls a markdownify job until it finishes.
func (a *AsyncClient) WaitMarkdownify(ctx context.Context, requestID string) (*MarkdownifyResponse, error) {
	for {
		resp, err := a.client.GetMarkdownify(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if terminalStatus(resp.Status) {
			if resp.Status == StatusFailed {
				return resp, jobFailedError("markdownify", requestID, resp.Error)
			}
			return resp, nil
		}
		if err := sleepContext(ctx, a.client.pollInterval); err != nil {
			return nil, err
		}
	}
}

// WaitCrawl polls a crawl job until it finishes. Crawl jobs report celery
// style states, so both completed/success and failed/failure are terminal.
func (a *AsyncClient) WaitCrawl(ctx context.Context, crawlID string) (*CrawlStatusResponse, error) {
	for {
		resp, err := a.client.GetCrawl(ctx, crawlID)
		if err != nil {
			return nil, err
		}
		switch resp.Status {
		case StatusCompleted, "success":
			return resp, nil
		case StatusFailed, "failure":
			return resp, jobFailedError("crawl", crawlID, resp.Error)
		}
		if err := sleepContext(ctx, a.client.pollInterval); err != nil {
			return nil, err
		}
	}
}

func jobFailedError(operation, requestID, message string) *APIError {
	if message == "" {
		message = operation + " job failed"
	}
	return &APIError{
		Type:      ErrorTypeJob,
		Message:   message,
		RequestID: requestID,
		Endpoint:  operation,
	}
}
