package handlers

import (
	"context"

	"github.com/edgard/riffbot/internal/chat"
)

type roleHandler struct {
	deps HandlerDeps
}

// Handle clears the caller's history and then either adopts persona or,
// when random is set, invents one.
func (h roleHandler) Handle(ctx context.Context, event chat.Event, persona string, random bool) {
	deps := h.deps
	log := deps.Logger.With("handler", "role")

	if err := deps.Store.Clear(ctx, event.AuthorID); err != nil {
		log.ErrorContext(ctx, "Failed to clear history", "error", err, "user_id", event.AuthorID)
		sendUnexpectedError(ctx, deps, log, event.ChannelID, err)
		return
	}

	if !random {
		deps.Settings.SetPersona(persona)
		log.InfoContext(ctx, "Persona set", "user_id", event.AuthorID, "persona", persona)
		sendText(ctx, deps, log, event.ChannelID, render(deps.Config.Messages.RoleSet, persona))
		return
	}

	description, err := randomizePersona(ctx, deps)
	if err != nil {
		log.WarnContext(ctx, "Persona randomization failed, keeping current persona", "error", err, "user_id", event.AuthorID)
		sendText(ctx, deps, log, event.ChannelID, render(deps.Config.Messages.RoleUnchanged, deps.Settings.Persona()))
		return
	}

	log.InfoContext(ctx, "Persona randomized", "user_id", event.AuthorID, "persona", description)
	sendText(ctx, deps, log, event.ChannelID, description)
}
