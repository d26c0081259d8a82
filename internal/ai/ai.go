// Package ai implements the gateways to generative-AI providers: text
// completion (OpenAI or Gemini) and image generation (OpenAI).
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edgard/riffbot/internal/config"
)

// CompletionRequest is a single text generation call.
type CompletionRequest struct {
	SystemDirective string
	Prompt          string
	MaxTokens       int
	Temperature     float32
}

// TextCompleter generates text for a prompt. Provider failures are returned
// to the caller.
type TextCompleter interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ImageGenerator generates an image for a prompt and returns its URL.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// SystemDirective builds the system instruction that makes the model play persona.
func SystemDirective(persona string) string {
	return fmt.Sprintf("Your role is %s. You will never explicitly state your role. "+
		"You will never start a sentence with As a or As an. "+
		"You will never admit to being an AI. You are convinced you are human. "+
		"You will never use a phrase like as a language model AI. ", persona)
}

// NewTextCompleter selects the text completion backend configured in
// cfg.AI.Provider. openaiClient is reused when the provider is OpenAI.
func NewTextCompleter(ctx context.Context, cfg *config.Config, openaiClient *OpenAIClient, log *slog.Logger) (TextCompleter, error) {
	log.Info("Initializing text completion gateway", "provider", cfg.AI.Provider)

	switch cfg.AI.Provider {
	case config.ProviderOpenAI:
		if openaiClient == nil {
			return nil, fmt.Errorf("openai client is required for the %s provider", config.ProviderOpenAI)
		}
		return openaiClient, nil
	case config.ProviderGemini:
		client, err := NewGeminiClient(ctx, cfg.Gemini, cfg.AI.RequestTimeout, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", cfg.AI.Provider)
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
