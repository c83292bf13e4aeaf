package pipeline

import (
	"context"

	"github.com/lysyi3m/news-pulse/app/analysis"
	"github.com/lysyi3m/news-pulse/app/narrator"
	"github.com/lysyi3m/news-pulse/app/news"
	"github.com/lysyi3m/news-pulse/app/sentiment"
	"github.com/lysyi3m/news-pulse/app/topics"
)

type FetcherInterface interface {
	Fetch(ctx context.Context, company string, count int) ([]news.RawArticle, error)
}

type EnricherInterface interface {
	Enrich(ctx context.Context, articles []news.RawArticle)
}

type TopicExtractorInterface interface {
	Extract(docs []string, n int) [][]string
}

type NarratorInterface interface {
	Narrate(ctx context.Context, text, lang string) (string, error)
}

var (
	_ FetcherInterface        = (*news.Fetcher)(nil)
	_ EnricherInterface       = (*news.ContentExtractor)(nil)
	_ TopicExtractorInterface = (*topics.Extractor)(nil)
	_ NarratorInterface       = (*narrator.Narrator)(nil)
	_ sentiment.Scorer        = (*sentiment.VaderScorer)(nil)
	_ sentiment.Scorer        = (*sentiment.GeminiScorer)(nil)
)

type Options struct {
	ArticleCount  int
	TopicCount    int
	ScoreWorkers  int
	NarrationLang string
}

// Analysis is the scored batch for one company.
type Analysis struct {
	Company     string
	Articles    []analysis.Article
	Comparative analysis.ComparativeAnalysis
}

// Report is the response body of a news request.
type Report struct {
	Company             string                       `json:"company"`
	NewsData            []analysis.Article           `json:"news_data"`
	ComparativeAnalysis analysis.ComparativeAnalysis `json:"comparative_analysis"`
	TTSFile             string                       `json:"tts_file"`
}
