package sentiment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const classificationPrompt = `Classify the sentiment of the following news text.
Answer with exactly one word: positive, negative or neutral.

Text:
`

// Generator produces a completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiScorer asks a generative model for the label. Unrecognized answers
// are treated as Neutral.
type GeminiScorer struct {
	generator Generator
}

func NewGeminiScorer(generator Generator) *GeminiScorer {
	return &GeminiScorer{generator: generator}
}

func (s *GeminiScorer) Score(ctx context.Context, text string) (Sentiment, error) {
	if strings.TrimSpace(text) == "" {
		return Neutral, nil
	}

	answer, err := s.generator.Generate(ctx, classificationPrompt+text)
	if err != nil {
		return "", fmt.Errorf("failed to classify sentiment: %w", err)
	}

	return ParseLabel(answer), nil
}

// ParseLabel maps a free-form model answer to a label.
func ParseLabel(answer string) Sentiment {
	answer = strings.ToLower(strings.TrimSpace(answer))
	answer = strings.Trim(answer, ".!\"'` ")

	switch answer {
	case "positive", "1", "+1":
		return Positive
	case "negative", "-1", "- 1":
		return Negative
	default:
		return Neutral
	}
}

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)
	model.SetCandidateCount(1)

	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return sb.String(), nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}
