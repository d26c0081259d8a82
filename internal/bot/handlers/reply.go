package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/edgard/riffbot/internal/text"
)

const sendMessageTimeout = 10 * time.Second

// sendText delivers msg to channelID, split into platform-sized chunks sent
// in order. Delivery stops at the first failed chunk.
func sendText(ctx context.Context, deps HandlerDeps, log *slog.Logger, channelID, msg string) {
	for i, chunk := range text.Chunk(msg, deps.Config.Chat.ChunkSize) {
		sendCtx, cancel := context.WithTimeout(ctx, sendMessageTimeout)
		err := deps.Sender.SendText(sendCtx, channelID, chunk)
		cancel()
		if err != nil {
			log.ErrorContext(ctx, "Failed to send message", "error", err, "channel_id", channelID, "chunk", i)
			return
		}
	}
}

// sendImage delivers an image URL as an embedded image.
func sendImage(ctx context.Context, deps HandlerDeps, log *slog.Logger, channelID, imageURL string) error {
	sendCtx, cancel := context.WithTimeout(ctx, sendMessageTimeout)
	defer cancel()
	if err := deps.Sender.SendImage(sendCtx, channelID, imageURL); err != nil {
		log.ErrorContext(ctx, "Failed to send image", "error", err, "channel_id", channelID)
		return err
	}
	return nil
}

// sendUnexpectedError reports a failed operation with the configured generic
// error message.
func sendUnexpectedError(ctx context.Context, deps HandlerDeps, log *slog.Logger, channelID string, err error) {
	sendText(ctx, deps, log, channelID, render(deps.Config.Messages.UnexpectedError, err))
}

// render fills a configured message template. Templates without verbs are
// returned as is.
func render(template string, args ...any) string {
	if !strings.Contains(template, "%") {
		return template
	}
	return fmt.Sprintf(template, args...)
}
