package aisearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/nikolamilosevic/TransferHub/internal/pkg/env"
	"github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a scouting assistant for an esports transfer marketplace. " +
	"Answer questions about players, roles and team fit concisely, in plain text."

// Client wraps the OpenAI API for the AI-assisted player lookup. Access is
// gated upstream by the ai_search entitlement.
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

type Config struct {
	APIKey      string
	Model       string  // default: gpt-4o-mini
	Temperature float32 // default: 0.7
	MaxTokens   int     // default: 600
}

func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 600
	}

	return &Client{
		client:      openai.NewClient(cfg.APIKey),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

func NewClientFromEnv() *Client {
	return NewClient(Config{
		APIKey: env.GetEnv("OPENAI_API_KEY", ""),
		Model:  env.GetEnv("OPENAI_MODEL", ""),
	})
}

// Lookup sends a free-form scouting query and returns the assistant's answer.
func (c *Client) Lookup(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("query is required")
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
	})
	if err != nil {
		return "", fmt.Errorf("ai lookup failed: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("ai lookup returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
