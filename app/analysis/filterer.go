package analysis

import (
	"strings"

	"github.com/lysyi3m/news-pulse/app/sentiment"
)

// Filter narrows the articles returned to a client. Empty fields match
// everything; within a field any value may match.
type Filter struct {
	Sentiment string
	Topics    []string
	Keywords  []string
}

func (f Filter) IsEmpty() bool {
	return f.Sentiment == "" && len(f.Topics) == 0 && len(f.Keywords) == 0
}

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

func (f *Filterer) Run(articles []Article, filter Filter) []Article {
	if filter.IsEmpty() {
		return articles
	}

	filtered := make([]Article, 0, len(articles))
	for _, article := range articles {
		if f.matches(article, filter) {
			filtered = append(filtered, article)
		}
	}

	return filtered
}

func (f *Filterer) matches(article Article, filter Filter) bool {
	if filter.Sentiment != "" && !strings.EqualFold(string(article.Sentiment), filter.Sentiment) {
		return false
	}

	if len(filter.Topics) > 0 && !f.hasTopic(article.Topics, filter.Topics) {
		return false
	}

	if len(filter.Keywords) > 0 {
		matched := false
		for _, keyword := range filter.Keywords {
			if f.matchesFilter(article.Summary, keyword) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

func (f *Filterer) hasTopic(topics, wanted []string) bool {
	for _, topic := range topics {
		for _, w := range wanted {
			if strings.EqualFold(topic, w) {
				return true
			}
		}
	}
	return false
}

func (f *Filterer) matchesFilter(value, pattern string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}

// ParseSentiment resolves a client-supplied label case-insensitively.
func ParseSentiment(s string) (sentiment.Sentiment, bool) {
	for _, label := range sentiment.Labels {
		if strings.EqualFold(string(label), s) {
			return label, true
		}
	}
	return "", false
}
