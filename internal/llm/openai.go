package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// SystemPrompt frames every OpenAI-compatible completion. The full context
// lives in the user prompt, so the system message only pins the persona.
const systemPrompt = "You are Liam, the virtual assistant of the AIML department. " +
	"Answer using only the department information provided in the user message."

// OpenAICompleter completes prompts against an OpenAI-compatible endpoint.
// It is used for Groq, which exposes the OpenAI chat completions API.
type OpenAICompleter struct {
	client   openai.Client
	provider Provider
	model    string
}

// NewGroqCompleter creates a completer for the given Groq-hosted model.
func NewGroqCompleter(apiKey, model string) *OpenAICompleter {
	client := openai.NewClient(
		option.WithBaseURL(GroqEndpoint),
		option.WithAPIKey(apiKey),
	)

	return &OpenAICompleter{
		client:   client,
		provider: ProviderGroq,
		model:    model,
	}
}

// Complete implements Completer.
func (o *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(completionTemperature),
		MaxTokens:   openai.Int(completionMaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", o.provider, o.model, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s %s: %w", o.provider, o.model, ErrEmptyCompletion)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%s %s: %w", o.provider, o.model, ErrEmptyCompletion)
	}
	return text, nil
}

// Provider implements Completer.
func (o *OpenAICompleter) Provider() Provider {
	return o.provider
}

// Model implements Completer.
func (o *OpenAICompleter) Model() string {
	return o.model
}

// Close implements Completer.
func (o *OpenAICompleter) Close() error {
	return nil
}
