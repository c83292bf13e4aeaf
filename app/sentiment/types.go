package sentiment

import "context"

type Sentiment string

const (
	Positive Sentiment = "Positive"
	Negative Sentiment = "Negative"
	Neutral  Sentiment = "Neutral"
)

// Labels lists every sentiment in display order.
var Labels = []Sentiment{Positive, Negative, Neutral}

const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Scorer classifies a piece of text. Identical input yields an identical
// label.
type Scorer interface {
	Score(ctx context.Context, text string) (Sentiment, error)
}

// FromCompound maps a compound polarity in [-1, 1] to a label.
func FromCompound(compound float64) Sentiment {
	switch {
	case compound >= positiveThreshold:
		return Positive
	case compound <= negativeThreshold:
		return Negative
	default:
		return Neutral
	}
}
