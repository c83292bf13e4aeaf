package api

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/news-pulse/app/analysis"
	"github.com/lysyi3m/news-pulse/app/chart"
	"github.com/lysyi3m/news-pulse/app/narrator"
	"github.com/lysyi3m/news-pulse/app/news"
)

func NewHandler(pipeline PipelineInterface, filterer *analysis.Filterer, chart ChartRendererInterface,
	defaultCompany, version string) *Handler {
	return &Handler{
		pipeline:       pipeline,
		filterer:       filterer,
		chart:          chart,
		defaultCompany: defaultCompany,
		version:        version,
	}
}

func (h *Handler) FetchNews(c *gin.Context) {
	company := c.DefaultQuery("company_name", h.defaultCompany)

	lang, ok := h.langParam(c)
	if !ok {
		return
	}

	filter := analysis.Filter{
		Sentiment: strings.TrimSpace(c.Query("sentiment")),
		Topics:    splitList(c.Query("topics")),
		Keywords:  splitList(c.Query("keywords")),
	}
	if filter.Sentiment != "" {
		if _, ok := analysis.ParseSentiment(filter.Sentiment); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown sentiment: " + filter.Sentiment})
			return
		}
	}

	report, err := h.pipeline.Report(c.Request.Context(), company, lang)
	if err != nil {
		logFailure("fetch_news", company, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Filters narrow the returned articles; the comparison always covers the
	// whole batch.
	report.NewsData = h.filterer.Run(report.NewsData, filter)

	c.Header("X-News-Articles", strconv.Itoa(len(report.NewsData)))
	c.JSON(http.StatusOK, report)
}

func (h *Handler) Narrate(c *gin.Context) {
	var req narrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must contain text"})
		return
	}

	if req.Lang != "" {
		if _, err := narrator.ValidateLang(req.Lang); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	path, err := h.pipeline.Narrate(c.Request.Context(), req.Text, req.Lang)
	if err != nil {
		slog.Error("Narration failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tts_file": path})
}

func (h *Handler) SentimentChart(c *gin.Context) {
	company := c.DefaultQuery("company_name", h.defaultCompany)

	result, err := h.pipeline.Analyze(c.Request.Context(), company)
	if err != nil {
		logFailure("sentiment_chart", company, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := h.chart.RenderPNG(&buf, chart.SentimentSlices(result.Comparative.Distribution)); err != nil {
		slog.Error("Chart rendering failed", "company", company, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	})
}

func (h *Handler) langParam(c *gin.Context) (string, bool) {
	lang := c.Query("lang")
	if lang == "" {
		return "", true
	}
	if _, err := narrator.ValidateLang(lang); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return lang, true
}

func logFailure(operation, company string, err error) {
	kind := "processing"
	if errors.Is(err, news.ErrUpstreamFetch) {
		kind = "upstream"
	}
	slog.Error("Request failed", "operation", operation, "company", company, "kind", kind, "error", err)
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
