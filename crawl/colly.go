// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package crawl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

const (
	defaultUserAgent      = "instructgen/1.0"
	defaultFetchTimeout   = 30 * time.Second
	defaultMaxBodySize    = 2 << 20 // 2 MiB
	skippableLinkPrefixes = "#,javascript:,mailto:,tel:"
)

// CollyFetcher fetches pages with a colly collector. The base collector holds
// shared settings; each Fetch runs on a clone so callbacks never leak between
// requests.
type CollyFetcher struct {
	base *colly.Collector
}

// FetcherOption configures a CollyFetcher.
type FetcherOption func(*CollyFetcher)

// WithUserAgent overrides the default user agent.
func WithUserAgent(agent string) FetcherOption {
	return func(f *CollyFetcher) {
		f.base.UserAgent = agent
	}
}

// WithFetchTimeout overrides the per-request timeout.
func WithFetchTimeout(timeout time.Duration) FetcherOption {
	return func(f *CollyFetcher) {
		f.base.SetRequestTimeout(timeout)
	}
}

// NewCollyFetcher creates a page fetcher.
func NewCollyFetcher(opts ...FetcherOption) *CollyFetcher {
	base := colly.NewCollector(
		colly.UserAgent(defaultUserAgent),
		colly.MaxBodySize(defaultMaxBodySize),
		colly.IgnoreRobotsTxt(),
	)
	base.SetRequestTimeout(defaultFetchTimeout)

	f := &CollyFetcher{base: base}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves one URL and extracts its title, body text, and outbound
// links. Non-HTML or empty pages return ErrNoContent.
func (f *CollyFetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page := &Page{URL: url, Properties: map[string]any{}}
	var fetchErr error

	c := f.base.Clone()
	c.OnHTML("title", func(e *colly.HTMLElement) {
		if page.Title == "" {
			page.Title = strings.TrimSpace(e.Text)
		}
	})
	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		link := e.Attr("href")
		if skipLink(link) {
			return
		}
		if abs := e.Request.AbsoluteURL(link); abs != "" {
			page.Links = append(page.Links, abs)
		}
	})
	c.OnHTML("body", func(e *colly.HTMLElement) {
		page.Content = strings.TrimSpace(e.Text)
	})
	c.OnResponse(func(r *colly.Response) {
		page.Properties["status_code"] = r.StatusCode
		page.Properties["content_type"] = r.Headers.Get("Content-Type")
	})
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("fetch %s: %w", url, err)
	})

	if err := c.Visit(url); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	c.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	if page.Content == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoContent, url)
	}
	return page, nil
}

func skipLink(link string) bool {
	if link == "" {
		return true
	}
	for _, prefix := range strings.Split(skippableLinkPrefixes, ",") {
		if strings.HasPrefix(link, prefix) {
			return true
		}
	}
	return false
}
