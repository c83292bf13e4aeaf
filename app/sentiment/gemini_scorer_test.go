package sentiment

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeGenerator struct {
	answer  string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.answer, g.err
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		answer   string
		expected Sentiment
	}{
		{answer: "positive", expected: Positive},
		{answer: "Positive.", expected: Positive},
		{answer: "  NEGATIVE\n", expected: Negative},
		{answer: "-1", expected: Negative},
		{answer: "1", expected: Positive},
		{answer: "neutral", expected: Neutral},
		{answer: "I cannot tell", expected: Neutral},
		{answer: "", expected: Neutral},
	}

	for _, tt := range tests {
		if got := ParseLabel(tt.answer); got != tt.expected {
			t.Errorf("ParseLabel(%q): expected %s, got %s", tt.answer, tt.expected, got)
		}
	}
}

func TestGeminiScorer_Score(t *testing.T) {
	generator := &fakeGenerator{answer: "negative"}
	scorer := NewGeminiScorer(generator)

	got, err := scorer.Score(context.Background(), "Tesla recalls vehicles")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got != Negative {
		t.Errorf("Expected Negative, got %s", got)
	}

	if len(generator.prompts) != 1 {
		t.Fatalf("Expected 1 prompt, got %d", len(generator.prompts))
	}
	if !strings.HasSuffix(generator.prompts[0], "Tesla recalls vehicles") {
		t.Errorf("Expected prompt to end with the text, got %q", generator.prompts[0])
	}
}

func TestGeminiScorer_ScoreEmptyText(t *testing.T) {
	generator := &fakeGenerator{answer: "positive"}

	got, err := NewGeminiScorer(generator).Score(context.Background(), "  ")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got != Neutral {
		t.Errorf("Expected Neutral for blank text, got %s", got)
	}
	if len(generator.prompts) != 0 {
		t.Error("Expected blank text not to reach the model")
	}
}

func TestGeminiScorer_ScoreError(t *testing.T) {
	generator := &fakeGenerator{err: errors.New("quota exceeded")}

	_, err := NewGeminiScorer(generator).Score(context.Background(), "text")
	if err == nil {
		t.Fatal("Expected error from generator")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("Expected wrapped generator error, got: %v", err)
	}
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	if _, err := NewGeminiClient(context.Background(), "", "gemini-1.5-flash"); err == nil {
		t.Error("Expected error for missing API key")
	}
}
