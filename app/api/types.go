package api

import (
	"context"
	"io"

	"github.com/lysyi3m/news-pulse/app/analysis"
	"github.com/lysyi3m/news-pulse/app/chart"
	"github.com/lysyi3m/news-pulse/app/pipeline"
)

type PipelineInterface interface {
	Analyze(ctx context.Context, company string) (*pipeline.Analysis, error)
	Report(ctx context.Context, company, lang string) (*pipeline.Report, error)
	Narrate(ctx context.Context, text, lang string) (string, error)
}

type ChartRendererInterface interface {
	RenderPNG(w io.Writer, slices []chart.Slice) error
}

var (
	_ PipelineInterface      = (*pipeline.Pipeline)(nil)
	_ ChartRendererInterface = (*chart.PieRenderer)(nil)
)

type Handler struct {
	pipeline       PipelineInterface
	filterer       *analysis.Filterer
	chart          ChartRendererInterface
	defaultCompany string
	version        string
}

type narrateRequest struct {
	Text string `json:"text" binding:"required"`
	Lang string `json:"lang"`
}
