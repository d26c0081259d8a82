package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	gopenai "github.com/sashabaranov/go-openai"

	"github.com/edgard/riffbot/internal/config"
)

// OpenAIClient implements TextCompleter and ImageGenerator on the OpenAI API.
type OpenAIClient struct {
	client       *gopenai.Client
	log          *slog.Logger
	chatModel    string
	imageModel   string
	imageSize    string
	imageQuality string
	timeout      time.Duration
	maxRetries   int
	retryDelay   time.Duration
}

// NewOpenAIClient creates an OpenAI client. timeout bounds every single
// request; zero disables the bound.
func NewOpenAIClient(cfg config.OpenAIConfig, timeout time.Duration, log *slog.Logger) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	aiConfig := gopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		aiConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}

	logger := log.With("component", "openai_client")
	logger.Info("OpenAI client initialized", "chat_model", cfg.ChatModel, "image_model", cfg.ImageModel)
	return &OpenAIClient{
		client:       gopenai.NewClientWithConfig(aiConfig),
		log:          logger,
		chatModel:    cfg.ChatModel,
		imageModel:   cfg.ImageModel,
		imageSize:    cfg.ImageSize,
		imageQuality: cfg.ImageQuality,
		timeout:      timeout,
		maxRetries:   cfg.MaxRetries,
		retryDelay:   cfg.RetryDelay,
	}, nil
}

// Complete sends one chat completion with the system directive and prompt
// and returns the trimmed answer.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	startTime := time.Now()

	temperature := req.Temperature
	if temperature == 0 {
		// go-openai drops a zero temperature (omitempty), which the API reads as 1.
		temperature = math.SmallestNonzeroFloat32
	}

	request := gopenai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []gopenai.ChatCompletionMessage{
			{Role: gopenai.ChatMessageRoleSystem, Content: req.SystemDirective},
			{Role: gopenai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   req.MaxTokens,
		N:           1,
		Temperature: temperature,
	}

	var resp gopenai.ChatCompletionResponse
	err := c.withRetries(ctx, "chat_completion", func(callCtx context.Context) error {
		var callErr error
		resp, callErr = c.client.CreateChatCompletion(callCtx, request)
		return callErr
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	c.log.DebugContext(ctx, "Chat completion received",
		"duration_ms", time.Since(startTime).Milliseconds(),
		"max_tokens", req.MaxTokens,
		"total_tokens", resp.Usage.TotalTokens)

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GenerateImage requests one image for prompt and returns its URL.
func (c *OpenAIClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	request := gopenai.ImageRequest{
		Prompt:         prompt,
		Model:          c.imageModel,
		N:              1,
		Size:           c.imageSize,
		Quality:        c.imageQuality,
		ResponseFormat: gopenai.CreateImageResponseFormatURL,
	}

	var resp gopenai.ImageResponse
	err := c.withRetries(ctx, "image_generation", func(callCtx context.Context) error {
		var callErr error
		resp, callErr = c.client.CreateImage(callCtx, request)
		return callErr
	})
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", errors.New("image generation returned no image URL")
	}

	c.log.DebugContext(ctx, "Image generated", "prompt_length", len(prompt))
	return resp.Data[0].URL, nil
}

// withRetries runs call, retrying retriable failures up to maxRetries times.
func (c *OpenAIClient) withRetries(ctx context.Context, op string, call func(context.Context) error) error {
	var err error
	for i := 0; i <= c.maxRetries; i++ {
		callCtx, cancel := withTimeout(ctx, c.timeout)
		err = call(callCtx)
		cancel()
		if err == nil {
			return nil
		}

		if !isRetriable(ctx, err) {
			c.log.ErrorContext(ctx, "OpenAI call failed with non-retriable error", "operation", op, "error", err)
			return err
		}
		if i < c.maxRetries {
			c.log.WarnContext(ctx, "Retrying OpenAI call", "operation", op, "attempt", i+1, "max_retries", c.maxRetries, "delay", c.retryDelay, "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
	}

	c.log.ErrorContext(ctx, "OpenAI call failed after max retries", "operation", op, "max_retries", c.maxRetries, "error", err)
	return err
}

// isRetriable reports whether err is worth another attempt: rate limits,
// server errors, and transport failures while ctx is still alive.
func isRetriable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}

	var apiErr *gopenai.APIError
	if errors.As(err, &apiErr) {
		return retriableStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *gopenai.RequestError
	if errors.As(err, &reqErr) {
		return retriableStatus(reqErr.HTTPStatusCode)
	}
	return true
}

func retriableStatus(code int) bool {
	switch {
	case code == http.StatusRequestTimeout, code == http.StatusConflict, code == http.StatusTooManyRequests:
		return true
	case code >= http.StatusInternalServerError:
		return true
	default:
		return false
	}
}
