// Package scrapegraph is the Go client for the ScrapeGraphAI API, wrapping the
// hosted scraping endpoints behind typed requests and responses:
//
//   - SmartScraper: LLM extraction from a URL or raw HTML
//   - SearchScraper: LLM extraction across web search results
//   - Markdownify: page to markdown conversion
//   - Crawl: multi-page crawl jobs with schema-driven extraction
//   - Feedback and Credits bookkeeping
//
// All scraping happens server side; the client validates inputs, serializes
// payloads, and owns the request lifecycle: authentication headers, retries
// with exponential backoff, optional rate limiting and circuit breaking, and
// error classification.
//
// Typical usage:
//
//	client, err := scrapegraph.NewClient(apiKey,
//	    scrapegraph.WithMaxRetries(3),
//	    scrapegraph.WithRateLimiter(10, time.Second),
//	)
//	if err != nil { ... }
//	resp, err := client.SmartScraper(ctx, scrapegraph.SmartScraperRequest{
//	    WebsiteURL: "https://example.com",
//	    UserPrompt: "Extract the page title and description",
//	})
//
// Submission endpoints are asynchronous on the server: they return a request
// ID immediately and the job completes later. AsyncClient layers futures and
// status polling on top:
//
//	async, _ := scrapegraph.NewAsyncClient(apiKey)
//	fut := async.SmartScraper(ctx, req)
//	resp, err := fut.Wait(ctx)
//	final, err := async.WaitSmartScraper(ctx, resp.RequestID)
//
// A single *Client is safe for concurrent use. Functional options configure
// everything; the zero configuration talks to the production API with sane
// retry defaults.
package scrapegraph
