package handlers

import (
	"context"

	"github.com/edgard/riffbot/internal/ai"
	"github.com/edgard/riffbot/internal/bot/command"
	"github.com/edgard/riffbot/internal/chat"
	"github.com/edgard/riffbot/internal/conversation"
	"github.com/edgard/riffbot/internal/text"
)

type promptHandler struct {
	deps HandlerDeps
}

// Handle runs one conversational turn: validate the input, build the context
// (summarized when the history is too long), ask the model, store the turn
// and send the answer.
func (h promptHandler) Handle(ctx context.Context, event chat.Event, cmd command.Prompt) {
	deps := h.deps
	log := deps.Logger.With("handler", "prompt")

	if text.Length(cmd.Text) > deps.Config.AI.MaxInputLength {
		log.InfoContext(ctx, "Prompt exceeds input limit", "user_id", event.AuthorID,
			"length", text.Length(cmd.Text), "limit", deps.Config.AI.MaxInputLength)
		sendText(ctx, deps, log, event.ChannelID, deps.Config.Messages.InvalidInput)
		return
	}

	snap := deps.Settings.Snapshot()
	summarize := func(ctx context.Context, transcript string) (string, error) {
		log.InfoContext(ctx, "History exceeds limit, summarizing", "user_id", event.AuthorID,
			"length", text.Length(transcript), "limit", snap.MaxHistoryLength)
		return summarizeTranscript(ctx, deps, snap.Persona, transcript)
	}

	history, summarized, err := conversation.PrepareContext(ctx, deps.Store, event.AuthorID, snap.MaxHistoryLength, summarize)
	if err != nil {
		log.ErrorContext(ctx, "Failed to prepare conversation context", "error", err, "user_id", event.AuthorID)
		sendUnexpectedError(ctx, deps, log, event.ChannelID, err)
		return
	}

	prompt := conversation.TurnPrompt(history, cmd.Text)
	answer, err := deps.Text.Complete(ctx, ai.CompletionRequest{
		SystemDirective: ai.SystemDirective(snap.Persona),
		Prompt:          prompt,
		MaxTokens:       snap.MaxTokens,
		Temperature:     snap.Temperature,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to generate answer", "error", err, "user_id", event.AuthorID)
		sendUnexpectedError(ctx, deps, log, event.ChannelID, err)
		return
	}

	if err := deps.Store.Set(ctx, event.AuthorID, conversation.CompleteTurn(prompt, answer)); err != nil {
		log.ErrorContext(ctx, "Failed to save conversation turn", "error", err, "user_id", event.AuthorID)
	}

	log.DebugContext(ctx, "Answer generated", "user_id", event.AuthorID, "summarized", summarized, "answer_length", text.Length(answer))
	sendText(ctx, deps, log, event.ChannelID, answer)
}
