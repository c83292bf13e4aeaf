package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lysyi3m/news-pulse/app/analysis"
	"github.com/lysyi3m/news-pulse/app/news"
	"github.com/lysyi3m/news-pulse/app/sentiment"
)

// Pipeline turns a company name into a scored, compared and narrated report.
// A failing step aborts the whole request; nothing is retried.
type Pipeline struct {
	fetcher   FetcherInterface
	enricher  EnricherInterface
	scorer    sentiment.Scorer
	extractor TopicExtractorInterface
	narrator  NarratorInterface
	opts      Options
}

// New wires the collaborators. enricher may be nil to skip full-text
// extraction.
func New(fetcher FetcherInterface, enricher EnricherInterface, scorer sentiment.Scorer,
	extractor TopicExtractorInterface, narrator NarratorInterface, opts Options) *Pipeline {
	if opts.ScoreWorkers <= 0 {
		opts.ScoreWorkers = 1
	}
	return &Pipeline{
		fetcher:   fetcher,
		enricher:  enricher,
		scorer:    scorer,
		extractor: extractor,
		narrator:  narrator,
		opts:      opts,
	}
}

// Analyze fetches, scores and compares the news about company.
func (p *Pipeline) Analyze(ctx context.Context, company string) (*Analysis, error) {
	start := time.Now()

	raw, err := p.fetcher.Fetch(ctx, company, p.opts.ArticleCount)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news for %s: %w", company, err)
	}

	if p.enricher != nil {
		p.enricher.Enrich(ctx, raw)
	}

	summaries := make([]string, len(raw))
	for i, article := range raw {
		summaries[i] = article.Summary
	}
	articleTopics := p.extractor.Extract(summaries, p.opts.TopicCount)

	labels, err := p.score(ctx, raw)
	if err != nil {
		return nil, err
	}

	articles := make([]analysis.Article, len(raw))
	for i, article := range raw {
		topics := articleTopics[i]
		if topics == nil {
			topics = []string{}
		}
		articles[i] = analysis.Article{
			Title:         article.Title,
			Link:          article.Link,
			PublishedDate: article.PublishedDate,
			Summary:       article.Summary,
			Sentiment:     labels[i],
			Topics:        topics,
		}
	}

	result := &Analysis{
		Company:     company,
		Articles:    articles,
		Comparative: analysis.Analyze(articles),
	}

	slog.Info("News analyzed",
		"company", company,
		"articles", len(articles),
		"differences", len(result.Comparative.Differences),
		"duration", time.Since(start))

	return result, nil
}

// Report runs Analyze and narrates its completion in lang, or in the
// configured language when lang is empty.
func (p *Pipeline) Report(ctx context.Context, company, lang string) (*Report, error) {
	result, err := p.Analyze(ctx, company)
	if err != nil {
		return nil, err
	}

	if lang == "" {
		lang = p.opts.NarrationLang
	}

	ttsFile, err := p.narrator.Narrate(ctx, CompletionText(company), lang)
	if err != nil {
		return nil, fmt.Errorf("failed to narrate report for %s: %w", company, err)
	}

	return &Report{
		Company:             company,
		NewsData:            result.Articles,
		ComparativeAnalysis: result.Comparative,
		TTSFile:             ttsFile,
	}, nil
}

// Narrate speaks arbitrary text, such as concatenated summaries.
func (p *Pipeline) Narrate(ctx context.Context, text, lang string) (string, error) {
	if lang == "" {
		lang = p.opts.NarrationLang
	}
	return p.narrator.Narrate(ctx, text, lang)
}

func CompletionText(company string) string {
	return fmt.Sprintf("Sentiment analysis for %s completed.", company)
}

// score labels articles concurrently; labels keep the input order.
func (p *Pipeline) score(ctx context.Context, articles []news.RawArticle) ([]sentiment.Sentiment, error) {
	labels := make([]sentiment.Sentiment, len(articles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.ScoreWorkers)

	for i := range articles {
		g.Go(func() error {
			label, err := p.scorer.Score(gctx, articles[i].ScoringText())
			if err != nil {
				return fmt.Errorf("failed to score article %d: %w", i+1, err)
			}
			labels[i] = label
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return labels, nil
}
