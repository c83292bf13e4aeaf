package news

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses feed data and returns at most limit articles in feed order.
// A non-positive limit keeps every item.
func (p *Parser) Run(data []byte, limit int) ([]RawArticle, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := feed.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	articles := make([]RawArticle, 0, len(items))
	for _, item := range items {
		articles = append(articles, p.normalizeItem(item))
	}

	return articles, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) RawArticle {
	article := RawArticle{
		Title:         item.Title,
		Link:          item.Link,
		PublishedDate: item.Published,
		Summary:       NoSummary,
	}

	if strings.TrimSpace(item.Description) != "" {
		article.Summary = StripHTML(item.Description)
	}

	return article
}

// StripHTML returns the text content of an HTML fragment.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
