// Package logger provides structured logging for the bot.
// It uses Go's slog package with configurable levels and formats.
package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/edgard/riffbot/internal/chat"
	"github.com/edgard/riffbot/internal/text"
)

type correlationKey struct{}

// NewLogger creates a new slog Logger with the specified level and format.
// If jsonOutput is true, logs will be formatted as JSON, otherwise as text.
func NewLogger(levelStr string, jsonOutput bool) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// CorrelationID returns the identifier Middleware attached to ctx, or "".
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// Middleware creates a logging middleware for inbound chat events.
// It tags every event with a correlation ID, logs start and finish with the
// elapsed time, and recovers a panicking handler so one bad event cannot stop
// the event loop.
func Middleware(log *slog.Logger) chat.Middleware {
	return func(next chat.Handler) chat.Handler {
		return func(ctx context.Context, event chat.Event) {
			startTime := time.Now()
			correlationID := uuid.NewString()
			ctx = context.WithValue(ctx, correlationKey{}, correlationID)

			logEntry := log.With(
				"correlation_id", correlationID,
				"event_id", event.ID,
				"channel_id", event.ChannelID,
				"user_id", event.AuthorID,
				"direct", event.Direct,
				"text_preview", text.Truncate(event.Text, 50),
			)

			defer func() {
				if rec := recover(); rec != nil {
					logEntry.ErrorContext(ctx, "Recovered from panic while processing event", "panic", rec)
				}
				logEntry.DebugContext(ctx, "Finished processing event", "duration", time.Since(startTime))
			}()

			logEntry.DebugContext(ctx, "Processing event")
			next(ctx, event)
		}
	}
}
