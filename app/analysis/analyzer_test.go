package analysis

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/lysyi3m/news-pulse/app/sentiment"
)

func article(label sentiment.Sentiment, topics ...string) Article {
	return Article{Sentiment: label, Topics: topics}
}

func TestAnalyze_Empty(t *testing.T) {
	result := Analyze(nil)

	if len(result.Distribution.Labels()) != 0 {
		t.Errorf("Expected empty distribution, got %v", result.Distribution.Labels())
	}
	if result.Differences == nil || len(result.Differences) != 0 {
		t.Errorf("Expected empty non-nil differences, got %v", result.Differences)
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}
	expected := `{"Sentiment Distribution":{},"Coverage Differences":[]}`
	if string(data) != expected {
		t.Errorf("Expected %s, got %s", expected, data)
	}
}

func TestAnalyze_SingleArticle(t *testing.T) {
	result := Analyze([]Article{article(sentiment.Negative, "recall")})

	if len(result.Differences) != 0 {
		t.Errorf("Expected no differences, got %d", len(result.Differences))
	}
	if result.Distribution.Count(sentiment.Negative) != 1 {
		t.Errorf("Expected Negative count 1, got %d", result.Distribution.Count(sentiment.Negative))
	}
	if len(result.Distribution.Labels()) != 1 {
		t.Errorf("Expected a single label, got %v", result.Distribution.Labels())
	}
}

func TestAnalyze_MixedScenario(t *testing.T) {
	articles := []Article{
		article(sentiment.Positive, "ev", "growth"),
		article(sentiment.Negative, "recall", "risk"),
		article(sentiment.Positive, "stock", "rally"),
	}

	result := Analyze(articles)

	if result.Distribution.Count(sentiment.Positive) != 2 {
		t.Errorf("Expected Positive count 2, got %d", result.Distribution.Count(sentiment.Positive))
	}
	if result.Distribution.Count(sentiment.Negative) != 1 {
		t.Errorf("Expected Negative count 1, got %d", result.Distribution.Count(sentiment.Negative))
	}
	if _, ok := result.Distribution.counts[sentiment.Neutral]; ok {
		t.Error("Expected Neutral to be absent from the distribution")
	}

	if len(result.Differences) != 2 {
		t.Fatalf("Expected 2 differences, got %d", len(result.Differences))
	}

	first, second := result.Differences[0], result.Differences[1]
	if first.I != 1 || first.J != 2 || second.I != 2 || second.J != 3 {
		t.Errorf("Expected pairs (1,2) and (2,3), got (%d,%d) and (%d,%d)", first.I, first.J, second.I, second.J)
	}

	if first.Comparison != "Article 1 (Positive) vs Article 2 (Negative)" {
		t.Errorf("Unexpected comparison: %s", first.Comparison)
	}
	if second.Comparison != "Article 2 (Negative) vs Article 3 (Positive)" {
		t.Errorf("Unexpected comparison: %s", second.Comparison)
	}

	// The template credits the earlier article even when it is the negative one.
	expectedImpact := "Article 2 focuses on positive aspects, while Article 3 highlights challenges or risks."
	if second.Impact != expectedImpact {
		t.Errorf("Expected impact '%s', got '%s'", expectedImpact, second.Impact)
	}

	data, err := json.Marshal(second)
	if err != nil {
		t.Fatal(err)
	}
	expectedJSON := `{"Comparison":"Article 2 (Negative) vs Article 3 (Positive)",` +
		`"Impact":"Article 2 focuses on positive aspects, while Article 3 highlights challenges or risks.",` +
		`"Key Themes":{"Article 2 Topics":["recall","risk"],"Article 3 Topics":["stock","rally"]}}`
	if string(data) != expectedJSON {
		t.Errorf("Expected %s, got %s", expectedJSON, data)
	}
}

func TestAnalyze_UniformSentiment(t *testing.T) {
	articles := []Article{
		article(sentiment.Neutral, "a"),
		article(sentiment.Neutral, "b"),
		article(sentiment.Neutral, "c"),
	}

	result := Analyze(articles)

	if len(result.Differences) != 0 {
		t.Errorf("Expected no differences, got %d", len(result.Differences))
	}
	if labels := result.Distribution.Labels(); len(labels) != 1 || labels[0] != sentiment.Neutral {
		t.Errorf("Expected only Neutral, got %v", labels)
	}
}

func TestAnalyze_PairProperties(t *testing.T) {
	labels := []sentiment.Sentiment{
		sentiment.Positive, sentiment.Neutral, sentiment.Positive, sentiment.Negative,
		sentiment.Neutral, sentiment.Negative, sentiment.Positive,
	}

	articles := make([]Article, len(labels))
	for i, label := range labels {
		articles[i] = article(label)
	}

	result := Analyze(articles)

	if result.Distribution.Total() != len(articles) {
		t.Errorf("Expected distribution total %d, got %d", len(articles), result.Distribution.Total())
	}

	var expected [][2]int
	for i := 0; i < len(labels); i++ {
		for j := i + 1; j < len(labels); j++ {
			if labels[i] != labels[j] {
				expected = append(expected, [2]int{i + 1, j + 1})
			}
		}
	}

	got := make([][2]int, 0, len(result.Differences))
	for _, d := range result.Differences {
		if d.SentimentI == d.SentimentJ {
			t.Errorf("Pair (%d,%d) shares sentiment %s", d.I, d.J, d.SentimentI)
		}
		got = append(got, [2]int{d.I, d.J})
	}

	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected pairs %v, got %v", expected, got)
	}
}

func TestAnalyze_DistributionOrder(t *testing.T) {
	result := Analyze([]Article{
		article(sentiment.Neutral),
		article(sentiment.Negative),
		article(sentiment.Neutral),
		article(sentiment.Positive),
	})

	data, err := json.Marshal(result.Distribution)
	if err != nil {
		t.Fatal(err)
	}
	expected := `{"Neutral":2,"Negative":1,"Positive":1}`
	if string(data) != expected {
		t.Errorf("Expected %s, got %s", expected, data)
	}

	full := result.Distribution.Full()
	if len(full) != 3 || full[0].Label != sentiment.Positive || full[0].Count != 1 {
		t.Errorf("Expected full distribution in display order, got %v", full)
	}
}

func TestAnalyze_NilTopicsEncodeAsEmptyList(t *testing.T) {
	result := Analyze([]Article{article(sentiment.Positive), article(sentiment.Negative)})

	data, err := json.Marshal(result.Differences[0])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"Article 1 Topics":[]`)) {
		t.Errorf("Expected empty topic list, got %s", data)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	articles := []Article{
		article(sentiment.Positive, "ev", "growth"),
		article(sentiment.Negative, "recall", "risk"),
		article(sentiment.Neutral, "factory"),
	}

	first, err := json.Marshal(Analyze(articles))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(Analyze(articles))
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("Expected identical output, got %s and %s", first, second)
	}
}

func TestAnalyze_KeyThemesNumericOrder(t *testing.T) {
	articles := make([]Article, 10)
	for i := range articles {
		articles[i] = article(sentiment.Neutral, "steady")
	}
	articles[1] = article(sentiment.Positive, "growth")

	result := Analyze(articles)
	last := result.Differences[len(result.Differences)-1]

	data, err := json.Marshal(last)
	if err != nil {
		t.Fatal(err)
	}
	second := bytes.Index(data, []byte(`"Article 2 Topics"`))
	tenth := bytes.Index(data, []byte(`"Article 10 Topics"`))
	if second < 0 || tenth < 0 || second > tenth {
		t.Errorf("Expected Article 2 Topics before Article 10 Topics, got %s", data)
	}
}
