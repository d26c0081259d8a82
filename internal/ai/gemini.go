package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/edgard/riffbot/internal/config"
)

// GeminiClient implements TextCompleter on Google's Gemini API.
type GeminiClient struct {
	genaiClient *genai.Client
	log         *slog.Logger
	model       string
	timeout     time.Duration
}

// NewGeminiClient creates a Gemini client for the configured model.
func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig, timeout time.Duration, log *slog.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	logger := log.With("component", "gemini_client")
	logger.Info("Gemini client initialized", "model", cfg.Model)
	return &GeminiClient{
		genaiClient: gi,
		log:         logger,
		model:       cfg.Model,
		timeout:     timeout,
	}, nil
}

// Complete sends one generation request and returns the trimmed text.
func (c *GeminiClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	temperature := req.Temperature
	contentConfig := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.SystemDirective != "" {
		contentConfig.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.SystemDirective}}}
	}

	callCtx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.genaiClient.Models.GenerateContent(callCtx, c.model, genai.Text(req.Prompt), contentConfig)
	if err != nil {
		c.log.ErrorContext(ctx, "Gemini generation failed", "error", err)
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	return c.extractText(ctx, resp)
}

func (c *GeminiClient) extractText(ctx context.Context, resp *genai.GenerateContentResponse) (string, error) {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		reasonMsg := fmt.Sprintf("%v", resp.PromptFeedback.BlockReason)
		if resp.PromptFeedback.BlockReasonMessage != "" {
			reasonMsg = resp.PromptFeedback.BlockReasonMessage
		}
		c.log.ErrorContext(ctx, "Gemini request blocked", "reason", reasonMsg)
		return "", fmt.Errorf("gemini request blocked by safety filter: %s", reasonMsg)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		finishReason := "unknown"
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != genai.FinishReasonUnspecified {
			finishReason = fmt.Sprintf("%v", resp.Candidates[0].FinishReason)
		}
		c.log.WarnContext(ctx, "Gemini response missing candidates or content", "finish_reason", finishReason)
		return "", fmt.Errorf("gemini returned no content, finish reason: %s", finishReason)
	}

	return strings.TrimSpace(resp.Text()), nil
}
