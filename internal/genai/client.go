// Package genai implements the generative-AI collaborators of the campaign
// engine: batch lead validation and per-lead draft generation. Responses are
// schema-checked at the boundary; the engine never trusts loosely-typed
// provider output.
package genai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"outreach-engine/internal/common/logger"
)

// Config for the AI provider client.
type Config struct {
	APIKey      string
	BaseURL     string // empty means provider default
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// Client wraps the OpenAI-compatible chat completion API.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	logger      logger.Logger
}

// NewClient creates a provider client. BaseURL overrides allow pointing at
// any OpenAI-compatible endpoint.
func NewClient(cfg Config, log logger.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1000
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:         openai.NewClientWithConfig(apiCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
		logger:      log.WithFields(map[string]interface{}{"component": "genai"}),
	}
}

// complete sends one system+user exchange and returns the raw completion text.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("chat completion failed", map[string]interface{}{
			"error":    err.Error(),
			"duration": duration.String(),
		})
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty choices")
	}

	c.logger.Debug("chat completion ok", map[string]interface{}{
		"duration":   duration.String(),
		"tokensUsed": resp.Usage.TotalTokens,
	})

	return resp.Choices[0].Message.Content, nil
}

// stripCodeFence removes a markdown code fence the model sometimes wraps
// around JSON output.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}
