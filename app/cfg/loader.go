package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// HTTP server
	Port         string `long:"port" env:"PORT" default:"5000" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// News source
	FeedURL        string `long:"feed-url" env:"FEED_URL" default:"https://news.google.com/rss/search" description:"News search RSS endpoint"`
	DefaultCompany string `long:"default-company" env:"DEFAULT_COMPANY" default:"Tesla" description:"Company used when the request does not name one"`
	ArticleCount   int    `long:"article-count" env:"ARTICLE_COUNT" default:"10" description:"Number of articles to analyze per request"`
	FetchTimeout   int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"Upstream request timeout in seconds"`
	ExtractContent bool   `long:"extract-content" env:"EXTRACT_CONTENT" description:"Fetch full article text to improve sentiment scoring"`

	// Analysis
	TopicCount   int    `long:"topic-count" env:"TOPIC_COUNT" default:"5" description:"Number of topics extracted per article"`
	MaxFeatures  int    `long:"max-features" env:"MAX_FEATURES" default:"10" description:"Vocabulary size for topic extraction"`
	ScoreWorkers int    `long:"score-workers" env:"SCORE_WORKERS" default:"4" description:"Number of articles scored concurrently"`
	Scorer       string `long:"scorer" env:"SCORER" default:"vader" choice:"vader" choice:"gemini" description:"Sentiment scorer backend"`
	GeminiAPIKey string `long:"gemini-api-key" env:"GEMINI_API_KEY" description:"API key for the gemini scorer"`
	GeminiModel  string `long:"gemini-model" env:"GEMINI_MODEL" default:"gemini-1.5-flash" description:"Model used by the gemini scorer"`

	// Narration
	AudioDir        string `long:"audio-dir" env:"AUDIO_DIR" default:"summaries" description:"Directory for synthesized audio"`
	AudioFile       string `long:"audio-file" env:"AUDIO_FILE" default:"summary.mp3" description:"Default audio filename"`
	AudioPerRequest bool   `long:"audio-per-request" env:"AUDIO_PER_REQUEST" description:"Write one uniquely named audio file per request"`
	NarrationLang   string `long:"narration-lang" env:"NARRATION_LANG" default:"hi" description:"Target language of the narration"`
	TranslateURL    string `long:"translate-url" env:"TRANSLATE_URL" default:"https://translate.googleapis.com/translate_a/single" description:"Translation endpoint"`
	TTSURL          string `long:"tts-url" env:"TTS_URL" default:"https://translate.google.com/translate_tts" description:"Speech synthesis endpoint"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"News Pulse/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	return LoadArgs(nil)
}

// LoadArgs parses the given arguments instead of os.Args when args is non-nil.
func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:            raw.Port,
		APIAccessKey:    raw.APIAccessKey,
		FeedURL:         raw.FeedURL,
		DefaultCompany:  raw.DefaultCompany,
		ArticleCount:    raw.ArticleCount,
		FetchTimeout:    raw.FetchTimeout,
		ExtractContent:  raw.ExtractContent,
		TopicCount:      raw.TopicCount,
		MaxFeatures:     raw.MaxFeatures,
		ScoreWorkers:    raw.ScoreWorkers,
		Scorer:          raw.Scorer,
		GeminiAPIKey:    raw.GeminiAPIKey,
		GeminiModel:     raw.GeminiModel,
		AudioDir:        raw.AudioDir,
		AudioFile:       raw.AudioFile,
		AudioPerRequest: raw.AudioPerRequest,
		NarrationLang:   raw.NarrationLang,
		TranslateURL:    raw.TranslateURL,
		TTSURL:          raw.TTSURL,
		UserAgent:       raw.UserAgent,
		Timezone:        raw.Timezone,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func (c *Cfg) validate() error {
	positiveFields := map[string]int{
		"article count": c.ArticleCount,
		"topic count":   c.TopicCount,
		"max features":  c.MaxFeatures,
		"score workers": c.ScoreWorkers,
		"fetch timeout": c.FetchTimeout,
	}

	for fieldName, fieldValue := range positiveFields {
		if fieldValue <= 0 {
			return fmt.Errorf("%s must be positive", fieldName)
		}
	}

	if c.Scorer == "gemini" && c.GeminiAPIKey == "" {
		return fmt.Errorf("gemini scorer requires GEMINI_API_KEY")
	}

	return nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
