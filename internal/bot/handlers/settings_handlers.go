package handlers

import (
	"context"
	"strconv"

	"github.com/edgard/riffbot/internal/bot/command"
	"github.com/edgard/riffbot/internal/chat"
)

type tokensHandler struct {
	deps HandlerDeps
}

func (h tokensHandler) Handle(ctx context.Context, event chat.Event, cmd command.Tokens) {
	deps := h.deps
	log := deps.Logger.With("handler", "tokens")

	if err := deps.Settings.SetMaxTokens(cmd.N); err != nil {
		log.InfoContext(ctx, "Rejected max tokens value", "error", err, "user_id", event.AuthorID)
		sendText(ctx, deps, log, event.ChannelID, deps.Config.Messages.InvalidMaxTokens)
		return
	}

	log.InfoContext(ctx, "Max tokens updated", "max_tokens", cmd.N, "user_id", event.AuthorID)
	sendText(ctx, deps, log, event.ChannelID, render(deps.Config.Messages.MaxTokensSet, cmd.N))
}

type tempHandler struct {
	deps HandlerDeps
}

func (h tempHandler) Handle(ctx context.Context, event chat.Event, cmd command.Temp) {
	deps := h.deps
	log := deps.Logger.With("handler", "temp")

	if err := deps.Settings.SetTemperature(cmd.T); err != nil {
		log.InfoContext(ctx, "Rejected temperature value", "error", err, "user_id", event.AuthorID)
		sendText(ctx, deps, log, event.ChannelID, deps.Config.Messages.InvalidTemp)
		return
	}

	log.InfoContext(ctx, "Temperature updated", "temperature", cmd.T, "user_id", event.AuthorID)
	formatted := strconv.FormatFloat(float64(cmd.T), 'g', -1, 32)
	sendText(ctx, deps, log, event.ChannelID, render(deps.Config.Messages.TempSet, formatted))
}

type forgetHandler struct {
	deps HandlerDeps
}

func (h forgetHandler) Handle(ctx context.Context, event chat.Event) {
	deps := h.deps
	log := deps.Logger.With("handler", "forget")

	if err := deps.Store.Clear(ctx, event.AuthorID); err != nil {
		log.ErrorContext(ctx, "Failed to clear history", "error", err, "user_id", event.AuthorID)
		sendUnexpectedError(ctx, deps, log, event.ChannelID, err)
		return
	}

	log.InfoContext(ctx, "History cleared", "user_id", event.AuthorID)
	sendText(ctx, deps, log, event.ChannelID, deps.Config.Messages.HistoryCleared)
}
