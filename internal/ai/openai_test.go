package ai

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/edgard/riffbot/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestOpenAIClient(t *testing.T, handler http.HandlerFunc, maxRetries int) *OpenAIClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.OpenAIConfig{
		APIKey:       "test-key",
		BaseURL:      server.URL + "/v1",
		ChatModel:    "gpt-4o-mini",
		ImageModel:   "dall-e-3",
		ImageSize:    "1024x1024",
		ImageQuality: "standard",
		MaxRetries:   maxRetries,
	}
	client, err := NewOpenAIClient(cfg, 0, testLogger())
	if err != nil {
		t.Fatalf("NewOpenAIClient() error = %v", err)
	}
	return client
}

func TestNewOpenAIClientRequiresKey(t *testing.T) {
	t.Parallel()

	if _, err := NewOpenAIClient(config.OpenAIConfig{}, 0, testLogger()); err == nil {
		t.Fatal("NewOpenAIClient() with empty key: expected error")
	}
}

func TestOpenAIComplete(t *testing.T) {
	t.Parallel()

	var got struct {
		Model       string  `json:"model"`
		MaxTokens   int     `json:"max_tokens"`
		N           int     `json:"n"`
		Temperature float32 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  Ahoy there!\n"},"finish_reason":"stop"}],"usage":{"total_tokens":12}}`)
	}, 0)

	answer, err := client.Complete(context.Background(), CompletionRequest{
		SystemDirective: SystemDirective("pirate"),
		Prompt:          "User: Hello bot\nAI:",
		MaxTokens:       1000,
		Temperature:     0.7,
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if answer != "Ahoy there!" {
		t.Errorf("Complete() = %q, want %q", answer, "Ahoy there!")
	}

	if got.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", got.Model)
	}
	if got.MaxTokens != 1000 || got.N != 1 {
		t.Errorf("max_tokens = %d, n = %d, want 1000 and 1", got.MaxTokens, got.N)
	}
	if got.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", got.Temperature)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(got.Messages))
	}
	if got.Messages[0].Role != "system" || !strings.Contains(got.Messages[0].Content, "Your role is pirate.") {
		t.Errorf("system message = %+v", got.Messages[0])
	}
	if got.Messages[1].Role != "user" || got.Messages[1].Content != "User: Hello bot\nAI:" {
		t.Errorf("user message = %+v", got.Messages[1])
	}
}

func TestOpenAICompleteSendsZeroTemperature(t *testing.T) {
	t.Parallel()

	var raw map[string]any
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
	}, 0)

	if _, err := client.Complete(context.Background(), CompletionRequest{Prompt: "hi", MaxTokens: 5}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if _, ok := raw["temperature"]; !ok {
		t.Error("temperature omitted from request; a zero temperature must still be sent")
	}
}

func TestOpenAICompleteRetries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		maxRetries int
		wantCalls  int32
	}{
		{name: "server error is retried", status: http.StatusInternalServerError, maxRetries: 2, wantCalls: 3},
		{name: "rate limit is retried", status: http.StatusTooManyRequests, maxRetries: 1, wantCalls: 2},
		{name: "bad request is not retried", status: http.StatusBadRequest, maxRetries: 2, wantCalls: 1},
		{name: "auth failure is not retried", status: http.StatusUnauthorized, maxRetries: 2, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			client := newTestOpenAIClient(t, func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, `{"error":{"message":"Oh noes!","type":"test_error"}}`)
			}, tt.maxRetries)

			_, err := client.Complete(context.Background(), CompletionRequest{Prompt: "hi", MaxTokens: 5})
			if err == nil {
				t.Fatal("Complete() expected error")
			}
			if got := calls.Load(); got != tt.wantCalls {
				t.Errorf("calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestOpenAICompleteRecoversAfterRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, `{"error":{"message":"busy","type":"server_error"}}`)
			return
		}
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"second time lucky"}}]}`)
	}, 2)

	answer, err := client.Complete(context.Background(), CompletionRequest{Prompt: "hi", MaxTokens: 5})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if answer != "second time lucky" {
		t.Errorf("Complete() = %q", answer)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestOpenAICompleteNoChoices(t *testing.T) {
	t.Parallel()

	client := newTestOpenAIClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[]}`)
	}, 0)

	if _, err := client.Complete(context.Background(), CompletionRequest{Prompt: "hi"}); err == nil {
		t.Fatal("Complete() with no choices: expected error")
	}
}

func TestOpenAIGenerateImage(t *testing.T) {
	t.Parallel()

	var got map[string]any
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/images/generations" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"created":1,"data":[{"url":"https://images.example.com/cat.png"}]}`)
	}, 0)

	url, err := client.GenerateImage(context.Background(), "a cat wearing a hat")
	if err != nil {
		t.Fatalf("GenerateImage() error = %v", err)
	}
	if url != "https://images.example.com/cat.png" {
		t.Errorf("GenerateImage() = %q", url)
	}

	want := map[string]any{
		"prompt":          "a cat wearing a hat",
		"model":           "dall-e-3",
		"size":            "1024x1024",
		"quality":         "standard",
		"response_format": "url",
		"n":               float64(1),
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("request %s = %v, want %v", k, got[k], v)
		}
	}
}

func TestOpenAIGenerateImageEmpty(t *testing.T) {
	t.Parallel()

	client := newTestOpenAIClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"created":1,"data":[]}`)
	}, 0)

	if _, err := client.GenerateImage(context.Background(), "nothing"); err == nil {
		t.Fatal("GenerateImage() with empty data: expected error")
	}
}

func TestSystemDirective(t *testing.T) {
	t.Parallel()

	got := SystemDirective("pirate")
	for _, want := range []string{"Your role is pirate.", "You will never admit to being an AI.", "You are convinced you are human."} {
		if !strings.Contains(got, want) {
			t.Errorf("SystemDirective() missing %q in %q", want, got)
		}
	}
}

func TestNewTextCompleter(t *testing.T) {
	t.Parallel()

	openaiClient, err := NewOpenAIClient(config.OpenAIConfig{APIKey: "k"}, 0, testLogger())
	if err != nil {
		t.Fatalf("NewOpenAIClient() error = %v", err)
	}

	cfg := &config.Config{AI: config.AIConfig{Provider: config.ProviderOpenAI}}
	got, err := NewTextCompleter(context.Background(), cfg, openaiClient, testLogger())
	if err != nil {
		t.Fatalf("NewTextCompleter(openai) error = %v", err)
	}
	if got != TextCompleter(openaiClient) {
		t.Error("NewTextCompleter(openai) did not reuse the OpenAI client")
	}

	cfg.AI.Provider = config.ProviderGemini
	if _, err := NewTextCompleter(context.Background(), cfg, openaiClient, testLogger()); err == nil {
		t.Error("NewTextCompleter(gemini) without key: expected error")
	}

	cfg.AI.Provider = "mystery"
	if _, err := NewTextCompleter(context.Background(), cfg, openaiClient, testLogger()); err == nil {
		t.Error("NewTextCompleter(unknown) expected error")
	}
}
