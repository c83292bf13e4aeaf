package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/news-pulse/app/analysis"
	"github.com/lysyi3m/news-pulse/app/api"
	"github.com/lysyi3m/news-pulse/app/cfg"
	"github.com/lysyi3m/news-pulse/app/chart"
	"github.com/lysyi3m/news-pulse/app/narrator"
	"github.com/lysyi3m/news-pulse/app/news"
	"github.com/lysyi3m/news-pulse/app/pipeline"
	"github.com/lysyi3m/news-pulse/app/sentiment"
	"github.com/lysyi3m/news-pulse/app/topics"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	config, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if config == nil {
		// Help was shown
		return
	}

	if config.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	slog.Info("Starting News Pulse", "version", config.Version, "port", config.Port)

	ctx := context.Background()
	timeout := time.Duration(config.FetchTimeout) * time.Second
	httpClient := &http.Client{Timeout: timeout}

	scorer, closeScorer, err := newScorer(ctx, config)
	if err != nil {
		log.Fatalf("Failed to initialize sentiment scorer: %v", err)
	}
	defer closeScorer()

	extractor, err := topics.NewExtractor(config.MaxFeatures)
	if err != nil {
		log.Fatalf("Failed to initialize topic extractor: %v", err)
	}

	if _, err := narrator.ValidateLang(config.NarrationLang); err != nil {
		log.Fatalf("Invalid narration language: %v", err)
	}

	fetcher := news.NewFetcher(httpClient, news.NewParser(), config.FeedURL, config.UserAgent, timeout)

	var enricher pipeline.EnricherInterface
	if config.ExtractContent {
		enricher = news.NewContentExtractor(httpClient, config.UserAgent, timeout)
		slog.Info("Content extraction enabled")
	}

	speech := narrator.New(
		narrator.NewGoogleTranslator(httpClient, config.TranslateURL, config.UserAgent, timeout),
		narrator.NewGoogleSpeaker(httpClient, config.TTSURL, config.UserAgent, timeout),
		config.AudioDir, config.AudioFile, config.AudioPerRequest)

	newsPipeline := pipeline.New(fetcher, enricher, scorer, extractor, speech, pipeline.Options{
		ArticleCount:  config.ArticleCount,
		TopicCount:    config.TopicCount,
		ScoreWorkers:  config.ScoreWorkers,
		NarrationLang: config.NarrationLang,
	})

	if err := os.MkdirAll(config.AudioDir, 0755); err != nil {
		log.Fatalf("Failed to create audio directory: %v", err)
	}

	handler := api.NewHandler(newsPipeline, analysis.NewFilterer(),
		chart.NewPieRenderer("Sentiment Distribution"), config.DefaultCompany, config.Version)
	server := api.NewServer(handler, config.APIAccessKey, config.AudioDir)

	httpServer := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", httpServer.Addr, "scorer", config.Scorer, "narration_lang", config.NarrationLang)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig)
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("News Pulse shutdown complete")
}

func newScorer(ctx context.Context, config *cfg.Cfg) (sentiment.Scorer, func(), error) {
	switch config.Scorer {
	case "gemini":
		client, err := sentiment.NewGeminiClient(ctx, config.GeminiAPIKey, config.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		closeClient := func() {
			if err := client.Close(); err != nil {
				slog.Warn("Failed to close Gemini client", "error", err)
			}
		}
		return sentiment.NewGeminiScorer(client), closeClient, nil
	default:
		return sentiment.NewVaderScorer(), func() {}, nil
	}
}
