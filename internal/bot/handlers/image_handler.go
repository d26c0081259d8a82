package handlers

import (
	"context"
	"fmt"

	"github.com/edgard/riffbot/internal/ai"
	"github.com/edgard/riffbot/internal/bot/command"
	"github.com/edgard/riffbot/internal/chat"
)

const rolePhrasePrompt = "short phrase that describes your role: %s"

type imageHandler struct {
	deps HandlerDeps
}

// Handle generates an image and sends it as an embed. With "random" the
// image terms are a phrase the model makes up about its persona, which is
// shown to the user first.
func (h imageHandler) Handle(ctx context.Context, event chat.Event, cmd command.Image) {
	deps := h.deps
	log := deps.Logger.With("handler", "image")

	terms := cmd.Terms
	if cmd.Random() {
		snap := deps.Settings.Snapshot()
		phrase, err := deps.Text.Complete(ctx, ai.CompletionRequest{
			SystemDirective: ai.SystemDirective(snap.Persona),
			Prompt:          fmt.Sprintf(rolePhrasePrompt, snap.Persona),
			MaxTokens:       deps.Config.AI.RoleMaxTokens,
			Temperature:     snap.Temperature,
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to generate image terms", "error", err, "user_id", event.AuthorID)
			sendText(ctx, deps, log, event.ChannelID, render(deps.Config.Messages.ImageError, err))
			return
		}
		sendText(ctx, deps, log, event.ChannelID, phrase)
		terms = phrase
	}

	url, err := deps.Images.GenerateImage(ctx, terms)
	if err != nil {
		log.ErrorContext(ctx, "Failed to generate image", "error", err, "user_id", event.AuthorID)
		sendText(ctx, deps, log, event.ChannelID, render(deps.Config.Messages.ImageError, err))
		return
	}

	if err := sendImage(ctx, deps, log, event.ChannelID, url); err != nil {
		sendText(ctx, deps, log, event.ChannelID, render(deps.Config.Messages.ImageError, err))
		return
	}
	log.DebugContext(ctx, "Image sent", "user_id", event.AuthorID, "random", cmd.Random())
}
