package news

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/temoto/robotstxt"
	"golang.org/x/net/html/charset"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

type ContentExtractor struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

func NewContentExtractor(httpClient *http.Client, userAgent string, timeout time.Duration) *ContentExtractor {
	return &ContentExtractor{
		httpClient: httpClient,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// Run extracts the readable text of an HTML page.
func (e *ContentExtractor) Run(data []byte, pageURL string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("HTML data is empty")
	}

	var parsedURL *url.URL
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return "", fmt.Errorf("invalid page URL: %w", err)
		}
		parsedURL = u
	}

	article, err := readability.FromReader(strings.NewReader(string(data)), parsedURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	if article.Content == "" {
		return "", fmt.Errorf("no content extracted from HTML data")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return "", fmt.Errorf("failed to read extracted content: %w", err)
	}

	text := strings.TrimSpace(whitespaceRe.ReplaceAllString(doc.Text(), " "))
	if text == "" {
		return "", fmt.Errorf("no content extracted from HTML data")
	}

	slog.Debug("Content extracted successfully",
		"title", article.Title,
		"content_length", len(text))

	return text, nil
}

// Enrich fills Content for every article whose page can be fetched and
// extracted. Failures are logged and leave the article untouched. The robots.txt
// cache lives only for this call.
func (e *ContentExtractor) Enrich(ctx context.Context, articles []RawArticle) {
	robots := make(map[string]*robotstxt.RobotsData)

	successCount := 0
	errorCount := 0

	for i := range articles {
		select {
		case <-ctx.Done():
			return
		default:
		}

		text, err := e.extractArticle(ctx, articles[i].Link, robots)
		if err != nil {
			slog.Debug("Failed to extract content for article", "url", articles[i].Link, "error", err)
			errorCount++
			continue
		}

		articles[i].Content = text
		successCount++
	}

	slog.Debug("Content enrichment completed", "success", successCount, "errors", errorCount)
}

func (e *ContentExtractor) extractArticle(ctx context.Context, link string, robots map[string]*robotstxt.RobotsData) (string, error) {
	if link == "" {
		return "", fmt.Errorf("article has no link")
	}

	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid article link: %s", link)
	}

	if !e.allowed(ctx, u, robots) {
		return "", fmt.Errorf("disallowed by robots.txt")
	}

	data, err := e.fetchPage(ctx, link)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article content: %w", err)
	}

	return e.Run(data, link)
}

func (e *ContentExtractor) allowed(ctx context.Context, u *url.URL, robots map[string]*robotstxt.RobotsData) bool {
	host := u.Scheme + "://" + u.Host

	data, ok := robots[host]
	if !ok {
		data = e.loadRobots(ctx, host)
		robots[host] = data
	}

	if data == nil {
		return true
	}
	return data.TestAgent(u.Path, e.userAgent)
}

func (e *ContentExtractor) loadRobots(ctx context.Context, host string) *robotstxt.RobotsData {
	timeoutCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", host+"/robots.txt", nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		slog.Debug("robots.txt unavailable", "host", host, "error", err)
		return nil
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		slog.Debug("robots.txt unparseable", "host", host, "error", err)
		return nil
	}
	return data
}

func (e *ContentExtractor) fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	body, err := charset.NewReader(resp.Body, contentType)
	if err != nil {
		body = resp.Body
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
