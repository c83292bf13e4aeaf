package sentiment

import (
	"context"

	"github.com/jonreiter/govader"
)

// VaderScorer labels text by the VADER compound polarity.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (s *VaderScorer) Score(ctx context.Context, text string) (Sentiment, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return FromCompound(s.Compound(text)), nil
}

// Compound returns the normalized polarity of text in [-1, 1].
func (s *VaderScorer) Compound(text string) float64 {
	return s.analyzer.PolarityScores(text).Compound
}
