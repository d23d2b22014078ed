package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/jenbot/jenbot/internal/config"
	"github.com/jenbot/jenbot/internal/resilience"
)

type openAIClient struct {
	client *openai.Client
	log    *slog.Logger
	model  string
	retry  resilience.RetryConfig
}

func newOpenAI(cfg config.AIConfig, log *slog.Logger) *openAIClient {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}

	logger := log.With("component", "openai_client")
	logger.Info("OpenAI client initialized", "model", cfg.Model, "base_url", oc.BaseURL)

	return &openAIClient{
		client: openai.NewClientWithConfig(oc),
		log:    logger,
		model:  cfg.Model,
		retry:  retryConfig(cfg, isRetryableOpenAI, logger),
	}
}

func (c *openAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	var resp openai.ChatCompletionResponse
	err := resilience.WithRetry(ctx, func(ctx context.Context) error {
		var err error
		resp, err = c.client.CreateChatCompletion(ctx, req)
		return err
	}, c.retry)
	if err != nil {
		c.log.ErrorContext(ctx, "OpenAI API call failed", "error", err)
		return "", fmt.Errorf("openai completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func isRetryableOpenAI(err error) bool {
	var code int
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		code = reqErr.HTTPStatusCode
	default:
		return false
	}
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
