// Package server exposes the optional health endpoint.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edgard/riffbot/internal/bot/settings"
)

// RouterDeps provides what the health routes report on.
type RouterDeps struct {
	Logger   *slog.Logger
	Settings *settings.Settings
	Platform string
	Provider string
}

type healthResponse struct {
	Status      string  `json:"status"`
	Platform    string  `json:"platform"`
	Provider    string  `json:"provider"`
	Persona     string  `json:"persona"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// NewRouter builds the chi router with the shared middleware.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Recover(deps.Logger))
	r.Use(Logging(deps.Logger))

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		snap := deps.Settings.Snapshot()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:      "ok",
			Platform:    deps.Platform,
			Provider:    deps.Provider,
			Persona:     snap.Persona,
			Temperature: snap.Temperature,
			MaxTokens:   snap.MaxTokens,
		})
	})

	return r
}
