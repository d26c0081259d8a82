package handlers

import (
	"context"

	"github.com/edgard/riffbot/internal/ai"
	"github.com/edgard/riffbot/internal/chat"
)

const summarizePreamble = "Summarize the following conversation:\n"

type summarizeHandler struct {
	deps HandlerDeps
}

// Handle reports a summary of the caller's history without changing it.
func (h summarizeHandler) Handle(ctx context.Context, event chat.Event) {
	deps := h.deps
	log := deps.Logger.With("handler", "summarize")

	history, err := deps.Store.Get(ctx, event.AuthorID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load history", "error", err, "user_id", event.AuthorID)
		sendUnexpectedError(ctx, deps, log, event.ChannelID, err)
		return
	}

	summary, err := summarizeTranscript(ctx, deps, deps.Settings.Persona(), history)
	if err != nil {
		log.ErrorContext(ctx, "Failed to summarize history", "error", err, "user_id", event.AuthorID)
		sendUnexpectedError(ctx, deps, log, event.ChannelID, err)
		return
	}

	sendText(ctx, deps, log, event.ChannelID, summary)
}

// summarizeTranscript condenses transcript with the fixed summary budget,
// independent of the user-tunable settings.
func summarizeTranscript(ctx context.Context, deps HandlerDeps, persona, transcript string) (string, error) {
	return deps.Text.Complete(ctx, ai.CompletionRequest{
		SystemDirective: ai.SystemDirective(persona),
		Prompt:          summarizePreamble + transcript,
		MaxTokens:       deps.Config.AI.SummaryMaxTokens,
		Temperature:     deps.Config.AI.SummaryTemperature,
	})
}
