package outreach

import (
	"context"

	"github.com/sells-group/leadflow/pkg/anthropic"
	"github.com/sells-group/leadflow/pkg/gemini"
	"github.com/sells-group/leadflow/pkg/openai"
)

// OpenAICompleter adapts the chat completions API.
type OpenAICompleter struct {
	client    openai.Client
	maxTokens int
}

// NewOpenAICompleter wraps client.
func NewOpenAICompleter(client openai.Client, maxTokens int) *OpenAICompleter {
	return &OpenAICompleter{client: client, maxTokens: maxTokens}
}

// Provider implements Completer.
func (c *OpenAICompleter) Provider() string { return "openai" }

// Complete implements Completer.
func (c *OpenAICompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Messages: []openai.Message{{Role: "user", Content: prompt}},
	}
	if system != "" {
		req.Messages = append([]openai.Message{{Role: "system", Content: system}}, req.Messages...)
	}
	if c.maxTokens > 0 {
		req.MaxTokens = &c.maxTokens
	}

	resp, err := c.client.ChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// AnthropicCompleter adapts the Messages API.
type AnthropicCompleter struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropicCompleter wraps client.
func NewAnthropicCompleter(client anthropic.Client, model string, maxTokens int) *AnthropicCompleter {
	return &AnthropicCompleter{client: client, model: model, maxTokens: maxTokens}
}

// Provider implements Completer.
func (c *AnthropicCompleter) Provider() string { return "anthropic" }

// Complete implements Completer.
func (c *AnthropicCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     c.model,
		MaxTokens: int64(c.maxTokens),
		System:    system,
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// GeminiCompleter adapts the Gemini generateContent API.
type GeminiCompleter struct {
	client    gemini.Client
	maxTokens int
}

// NewGeminiCompleter wraps client.
func NewGeminiCompleter(client gemini.Client, maxTokens int) *GeminiCompleter {
	return &GeminiCompleter{client: client, maxTokens: maxTokens}
}

// Provider implements Completer.
func (c *GeminiCompleter) Provider() string { return "gemini" }

// Complete implements Completer.
func (c *GeminiCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	return c.client.GenerateText(ctx, gemini.TextRequest{
		System:          system,
		Prompt:          prompt,
		MaxOutputTokens: int32(c.maxTokens),
	})
}
