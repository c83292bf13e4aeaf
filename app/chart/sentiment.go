package chart

import (
	"github.com/lysyi3m/news-pulse/app/analysis"
	"github.com/lysyi3m/news-pulse/app/sentiment"
)

var sentimentColors = map[sentiment.Sentiment]string{
	sentiment.Positive: "#90ee90",
	sentiment.Negative: "#ff0000",
	sentiment.Neutral:  "#808080",
}

// SentimentSlices turns a distribution into one slice per label, zero
// counts included.
func SentimentSlices(distribution analysis.Distribution) []Slice {
	full := distribution.Full()
	slices := make([]Slice, 0, len(full))
	for _, lc := range full {
		slices = append(slices, Slice{
			Label: string(lc.Label),
			Value: lc.Count,
			Color: sentimentColors[lc.Label],
		})
	}
	return slices
}
