package analysis

import "fmt"

// Analyze counts sentiments and lists a coverage difference for every pair of
// articles whose labels differ, ordered by the first position and then the
// second. The impact sentence is a fixed template: it always credits the
// earlier article with the positive aspects, whatever the labels are.
func Analyze(articles []Article) ComparativeAnalysis {
	var distribution Distribution
	for _, article := range articles {
		distribution.add(article.Sentiment)
	}

	differences := make([]CoverageDifference, 0)
	for i := 0; i < len(articles); i++ {
		for j := i + 1; j < len(articles); j++ {
			a, b := articles[i], articles[j]
			if a.Sentiment == b.Sentiment {
				continue
			}

			differences = append(differences, CoverageDifference{
				I:          i + 1,
				J:          j + 1,
				SentimentI: a.Sentiment,
				SentimentJ: b.Sentiment,
				Comparison: fmt.Sprintf("Article %d (%s) vs Article %d (%s)", i+1, a.Sentiment, j+1, b.Sentiment),
				Impact:     fmt.Sprintf("Article %d focuses on positive aspects, while Article %d highlights challenges or risks.", i+1, j+1),
				TopicsI:    a.Topics,
				TopicsJ:    b.Topics,
			})
		}
	}

	return ComparativeAnalysis{
		Distribution: distribution,
		Differences:  differences,
	}
}
