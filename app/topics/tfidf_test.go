package topics

import (
	"reflect"
	"testing"
)

func newTestExtractor(t *testing.T, maxFeatures int) *Extractor {
	t.Helper()
	extractor, err := NewExtractor(maxFeatures)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	return extractor
}

func TestExtractor_Extract_EmptyBatch(t *testing.T) {
	result := newTestExtractor(t, 10).Extract(nil, 5)
	if len(result) != 0 {
		t.Errorf("Expected empty result, got %v", result)
	}
}

func TestExtractor_Extract_OrderAndWeights(t *testing.T) {
	docs := []string{
		"Tesla battery battery growth",
		"Tesla recall risk",
		"Tesla stock rally",
	}

	result := newTestExtractor(t, 10).Extract(docs, 5)
	if len(result) != 3 {
		t.Fatalf("Expected 3 topic lists, got %d", len(result))
	}

	// "tesla" appears everywhere so it carries the lowest idf.
	expected := [][]string{
		{"battery", "growth", "tesla"},
		{"risk", "recall", "tesla"},
		{"stock", "rally", "tesla"},
	}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestExtractor_Extract_TopN(t *testing.T) {
	docs := []string{"alpha beta gamma delta epsilon zeta", "alpha"}

	result := newTestExtractor(t, 10).Extract(docs, 2)
	if len(result[0]) != 2 {
		t.Fatalf("Expected 2 topics, got %v", result[0])
	}
	// Equal weights: later vocabulary terms come first.
	expected := []string{"zeta", "gamma"}
	if !reflect.DeepEqual(result[0], expected) {
		t.Errorf("Expected %v, got %v", expected, result[0])
	}
	if !reflect.DeepEqual(result[1], []string{"alpha"}) {
		t.Errorf("Expected [alpha], got %v", result[1])
	}
}

func TestExtractor_Extract_SkipsAbsentTerms(t *testing.T) {
	docs := []string{"battery battery", "recall", "battery recall"}

	result := newTestExtractor(t, 10).Extract(docs, 5)
	expected := [][]string{{"battery"}, {"recall"}, {"recall", "battery"}}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestExtractor_Extract_StopWordsAndShortTokens(t *testing.T) {
	result := newTestExtractor(t, 10).Extract([]string{"The EV is a big deal, and it will go on"}, 10)

	expected := []string{"ev", "deal", "big"}
	if !reflect.DeepEqual(result[0], expected) {
		t.Errorf("Expected %v, got %v", expected, result[0])
	}
}

func TestExtractor_Extract_MaxFeatures(t *testing.T) {
	docs := []string{
		"factory factory factory output",
		"factory margin margin",
		"output margin zebra",
	}

	// Frequencies: factory 4, margin 3, output 2, zebra 1.
	result := newTestExtractor(t, 2).Extract(docs, 5)

	for i, topics := range result {
		for _, topic := range topics {
			if topic != "factory" && topic != "margin" {
				t.Errorf("Document %d: unexpected topic '%s' outside the vocabulary", i, topic)
			}
		}
	}
	if len(result[2]) != 1 || result[2][0] != "margin" {
		t.Errorf("Expected [margin] for third document, got %v", result[2])
	}
}

func TestExtractor_Extract_NoVocabulary(t *testing.T) {
	result := newTestExtractor(t, 10).Extract([]string{"", "a an the"}, 5)
	if len(result) != 2 {
		t.Fatalf("Expected 2 topic lists, got %d", len(result))
	}
	for i, topics := range result {
		if len(topics) != 0 {
			t.Errorf("Document %d: expected no topics, got %v", i, topics)
		}
	}
}

func TestExtractor_Extract_Deterministic(t *testing.T) {
	docs := []string{"Shares rally after earnings beat", "Regulators probe autopilot crash", "Earnings miss hits shares"}
	extractor := newTestExtractor(t, 10)

	first := extractor.Extract(docs, 3)
	second := extractor.Extract(docs, 3)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical output, got %v and %v", first, second)
	}
}
