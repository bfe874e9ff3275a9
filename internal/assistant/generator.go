package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const generatorModel = "models/gemini-1.5-flash"

// GeminiGenerator paraphrases the assistant's templated replies with the
// generative text service. Configured once at startup from the API key;
// the booking/query logic never depends on it.
type GeminiGenerator struct {
	model *genai.GenerativeModel
}

// NewGeminiGenerator builds the client. An empty key is a configuration
// error; callers decide whether to run without a generator instead.
func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiGenerator{model: client.GenerativeModel(generatorModel)}, nil
}

// Rephrase restates reply without changing any date, time or link in it.
func (g *GeminiGenerator) Rephrase(ctx context.Context, userText, reply string) (string, error) {
	prompt := fmt.Sprintf(
		"You are a scheduling assistant. The user said: %q\n"+
			"Restate the following reply in one friendly sentence, keeping every date, time and link exactly as written:\n%s",
		userText, reply)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String()), nil
}
