package cfg

type Cfg struct {
	// HTTP server
	Port         string
	APIAccessKey string

	// News source
	FeedURL        string
	DefaultCompany string
	ArticleCount   int
	FetchTimeout   int
	ExtractContent bool

	// Analysis
	TopicCount   int
	MaxFeatures  int
	ScoreWorkers int
	Scorer       string
	GeminiAPIKey string
	GeminiModel  string

	// Narration
	AudioDir        string
	AudioFile       string
	AudioPerRequest bool
	NarrationLang   string
	TranslateURL    string
	TTSURL          string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
