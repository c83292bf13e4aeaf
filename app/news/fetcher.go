package news

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

type Fetcher struct {
	httpClient *http.Client
	parser     *Parser
	baseURL    string
	userAgent  string
	timeout    time.Duration
}

func NewFetcher(httpClient *http.Client, parser *Parser, baseURL, userAgent string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: httpClient,
		parser:     parser,
		baseURL:    baseURL,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// SearchURL builds the feed search URL for a company.
func (f *Fetcher) SearchURL(company string) string {
	params := url.Values{}
	params.Set("q", company)
	params.Set("hl", "en-US")
	params.Set("gl", "US")
	params.Set("ceid", "US:en")
	return f.baseURL + "?" + params.Encode()
}

// Fetch returns up to count articles about company. An empty result is not
// an error.
func (f *Fetcher) Fetch(ctx context.Context, company string, count int) ([]RawArticle, error) {
	data, err := f.fetchFeed(ctx, f.SearchURL(company))
	if err != nil {
		return nil, err
	}

	articles, err := f.parser.Run(data, count)
	if err != nil {
		return nil, err
	}

	slog.Debug("News fetched", "company", company, "articles", len(articles))
	return articles, nil
}

func (f *Fetcher) fetchFeed(ctx context.Context, feedURL string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUpstreamFetch, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
