package handlers

import (
	"context"
	"strings"

	"github.com/edgard/riffbot/internal/bot/command"
	"github.com/edgard/riffbot/internal/chat"
)

// helpHandler lists the available commands.
type helpHandler struct {
	deps HandlerDeps
}

func (h helpHandler) Handle(ctx context.Context, event chat.Event) {
	log := h.deps.Logger.With("handler", "help")
	sendText(ctx, h.deps, log, event.ChannelID, helpText(h.deps.Config.Chat.Prefix, h.deps.Config.Messages.HelpHeader))
}

func helpText(prefix, header string) string {
	var sb strings.Builder
	sb.WriteString(header)
	for _, info := range command.Catalog {
		sb.WriteString("\n")
		sb.WriteString(prefix)
		sb.WriteString(info.Name)
		if info.Usage != "" {
			sb.WriteString(" ")
			sb.WriteString(info.Usage)
		}
		sb.WriteString(" - ")
		sb.WriteString(info.Description)
	}
	return sb.String()
}
