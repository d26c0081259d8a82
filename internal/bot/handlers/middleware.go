// Package handlers contains the bot command dispatcher, one handler per
// command, and the middleware that guards them.
package handlers

import (
	"context"

	"github.com/edgard/riffbot/internal/chat"
)

// IgnoreBots creates a middleware that drops events authored by this bot or
// by any other bot account, so the bot never answers itself or loops with
// another bot.
func IgnoreBots(deps HandlerDeps) chat.Middleware {
	return func(next chat.Handler) chat.Handler {
		return func(ctx context.Context, event chat.Event) {
			if event.FromSelf || event.AuthorIsBot {
				deps.Logger.With("middleware", "IgnoreBots").DebugContext(ctx, "Dropping bot-authored event",
					"event_id", event.ID, "user_id", event.AuthorID, "from_self", event.FromSelf)
				return
			}
			next(ctx, event)
		}
	}
}
