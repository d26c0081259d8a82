package handlers

import (
	"log/slog"

	"github.com/edgard/riffbot/internal/ai"
	"github.com/edgard/riffbot/internal/bot/settings"
	"github.com/edgard/riffbot/internal/chat"
	"github.com/edgard/riffbot/internal/config"
	"github.com/edgard/riffbot/internal/conversation"
)

// HandlerDeps provides dependencies for bot command handlers.
type HandlerDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Settings *settings.Settings
	Store    conversation.Store
	Text     ai.TextCompleter
	Images   ai.ImageGenerator
	Sender   chat.Sender
}
