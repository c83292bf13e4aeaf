package news

import "errors"

// ErrUpstreamFetch is returned when the news feed is unavailable or answers
// with a non-success status.
var ErrUpstreamFetch = errors.New("failed to fetch news")

const NoSummary = "No summary available"

type RawArticle struct {
	Title         string
	Link          string
	PublishedDate string // pubDate exactly as the feed carries it
	Summary       string // description with markup stripped

	// Content holds readability-extracted article text when enrichment is on.
	Content string
}

// ScoringText returns the text the sentiment scorer should see.
func (a RawArticle) ScoringText() string {
	if a.Content != "" {
		return a.Content
	}
	return a.Summary
}
