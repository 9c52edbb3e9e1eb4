package crawl

import "context"

// Page is the extracted content of one fetched URL.
type Page struct {
	URL        string
	Title      string
	Content    string
	Links      []string
	Properties map[string]any
}

// Fetcher retrieves and extracts a single web page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}
