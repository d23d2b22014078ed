package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/jenbot/jenbot/internal/config"
	"github.com/jenbot/jenbot/internal/resilience"
)

type geminiClient struct {
	client        *genai.Client
	log           *slog.Logger
	model         string
	contentConfig *genai.GenerateContentConfig
	retry         resilience.RetryConfig
}

func newGemini(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (*geminiClient, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	gi, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	logger := log.With("component", "gemini_client")
	logger.Info("Gemini client initialized", "model", cfg.Model)

	return &geminiClient{
		client: gi,
		log:    logger,
		model:  cfg.Model,
		contentConfig: &genai.GenerateContentConfig{
			SafetySettings: []*genai.SafetySetting{
				{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
				{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
				{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
				{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
			},
		},
		retry: retryConfig(cfg, isRetryableGemini, logger),
	}, nil
}

func (c *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	var resp *genai.GenerateContentResponse
	err := resilience.WithRetry(ctx, func(ctx context.Context) error {
		var err error
		resp, err = c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.contentConfig)
		return err
	}, c.retry)
	if err != nil {
		c.log.ErrorContext(ctx, "Gemini API call failed", "error", err)
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		reason := string(resp.PromptFeedback.BlockReason)
		if resp.PromptFeedback.BlockReasonMessage != "" {
			reason = resp.PromptFeedback.BlockReasonMessage
		}
		c.log.WarnContext(ctx, "Gemini request blocked", "reason", reason)
		return "", fmt.Errorf("gemini request blocked by safety filter: %s", reason)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// isRetryableGemini reports transient server-side failures.
func isRetryableGemini(err error) bool {
	var code int
	var apiErr *genai.APIError
	var apiErrValue genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrValue):
		code = apiErrValue.Code
	default:
		return false
	}
	return code == http.StatusInternalServerError || code == http.StatusServiceUnavailable
}
