// Package ai provides single-turn text generation backed by Gemini or any
// OpenAI-compatible chat completion API.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jenbot/jenbot/internal/config"
	"github.com/jenbot/jenbot/internal/resilience"
)

// Provider names accepted in ai.provider.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// ErrEmptyResponse is returned when the provider answers without any text.
var ErrEmptyResponse = errors.New("ai: empty response")

// Generator turns one prompt into one reply. No conversation history is kept
// between calls.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// New builds the generator selected by cfg.Provider. It returns a nil
// Generator and no error when no API key is configured, which disables the
// AI path.
func New(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (Generator, error) {
	if cfg.APIKey == "" {
		log.Warn("AI API key not configured, AI chat disabled")
		return nil, nil
	}

	switch cfg.Provider {
	case "", ProviderGemini:
		return newGemini(ctx, cfg, log)
	case ProviderOpenAI:
		return newOpenAI(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

func retryConfig(cfg config.AIConfig, retryable func(error) bool, log *slog.Logger) resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxAttempts:     cfg.MaxRetries + 1,
		InitialInterval: cfg.RetryDelay,
		MaxInterval:     cfg.RetryDelay,
		Multiplier:      1,
		Retryable:       retryable,
		Logger:          log,
	}
}
