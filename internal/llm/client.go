package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"
)

// invocationTimeout bounds a single generation call. Expiry surfaces as a
// plain invocation error; callers classify it like any other upstream
// failure.
const invocationTimeout = 60 * time.Second

// GenerationConfig tunes sampling for one generation call. The zero value
// lets the service defaults apply.
type GenerationConfig struct {
	Temperature float32
	TopP        float32
	TopK        int // honored only by backends that expose top-k; the chat completions API does not
	MaxTokens   int
}

// Client wraps an OpenAI-compatible text generation endpoint
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a text generation client. baseURL overrides the
// default endpoint for OpenAI-compatible services; empty keeps the default.
func NewClient(apiKey, model, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Generate submits a prompt and returns the raw generated text. Single
// attempt, no retries; failures are returned to the caller to classify.
func (c *Client) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("LLM client not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, invocationTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}
	if cfg.Temperature > 0 {
		req.Temperature = cfg.Temperature
	}
	if cfg.TopP > 0 {
		req.TopP = cfg.TopP
	}
	if cfg.MaxTokens > 0 {
		req.MaxTokens = cfg.MaxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Printf("LLM API error: %v", err)
		return "", fmt.Errorf("LLM API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	text := resp.Choices[0].Message.Content
	log.Printf("Generated response with %d characters", len(text))

	return text, nil
}
