package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiCompleter completes prompts against a single Gemini model.
type GeminiCompleter struct {
	client *genai.Client
	model  string
}

// NewGeminiCompleter creates a completer for the given Gemini model.
func NewGeminiCompleter(ctx context.Context, apiKey, model string) (*GeminiCompleter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiCompleter{
		client: client,
		model:  model,
	}, nil
}

// Complete implements Completer.
func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](completionTemperature),
		MaxOutputTokens: completionMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", g.model, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini %s: %w", g.model, ErrEmptyCompletion)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("gemini %s: %w", g.model, ErrEmptyCompletion)
	}
	return text, nil
}

// Provider implements Completer.
func (g *GeminiCompleter) Provider() Provider {
	return ProviderGemini
}

// Model implements Completer.
func (g *GeminiCompleter) Model() string {
	return g.model
}

// Close implements Completer. The genai client holds no connections that
// need explicit teardown.
func (g *GeminiCompleter) Close() error {
	return nil
}
