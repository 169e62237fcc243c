package enrich

import "context"

// PageFetcher loads one URL and returns the rendered HTML. The
// extraction logic is written against this seam so it can be tested
// with canned markup and so the headless browser can be swapped for a
// plain HTTP client where Chrome is unavailable.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}
