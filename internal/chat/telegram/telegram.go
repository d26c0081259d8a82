// Package telegram connects the bot to Telegram using long polling.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/riffbot/internal/chat"
	"github.com/edgard/riffbot/internal/config"
)

// Platform is a Telegram bot connection.
type Platform struct {
	bot      *bot.Bot
	log      *slog.Logger
	prefix   string
	handler  chat.Handler
	selfID   int64
	username string
}

// New creates a Telegram bot instance using the go-telegram/bot library.
// prefix is the command prefix; "/cmd@botname" forms are reduced to "/cmd".
func New(token, prefix string, logger *slog.Logger) (*Platform, error) {
	if token == "" {
		return nil, errors.New("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram")

	p := &Platform{log: log, prefix: prefix}
	b, err := bot.New(token, bot.WithDefaultHandler(p.handleUpdate), bot.WithSkipGetMe())
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	p.bot = b

	log.Info("Telegram bot instance created")
	return p, nil
}

// Name implements chat.Platform.
func (p *Platform) Name() string { return config.PlatformTelegram }

// Start resolves the bot identity and polls for updates until ctx is
// cancelled. Updates are processed by the library's worker goroutines.
func (p *Platform) Start(ctx context.Context, handler chat.Handler) error {
	me, err := p.bot.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to get telegram bot info: %w", err)
	}
	p.selfID = me.ID
	p.username = me.Username
	p.handler = handler
	p.log.Info("Retrieved bot info", "bot_id", me.ID, "bot_username", me.Username)

	p.bot.Start(ctx)
	p.log.Info("Telegram polling stopped")
	return nil
}

// SendText implements chat.Sender.
func (p *Platform) SendText(ctx context.Context, channelID, text string) error {
	chatID, err := strconv.ParseInt(channelID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %w", channelID, err)
	}
	if _, err := p.bot.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

// SendImage implements chat.Sender by sending the image URL as a photo.
func (p *Platform) SendImage(ctx context.Context, channelID, imageURL string) error {
	chatID, err := strconv.ParseInt(channelID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %w", channelID, err)
	}
	_, err = p.bot.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo:  &models.InputFileString{Data: imageURL},
	})
	if err != nil {
		return fmt.Errorf("failed to send telegram photo: %w", err)
	}
	return nil
}

func (p *Platform) handleUpdate(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if p.handler == nil || update == nil {
		return
	}
	event, ok := toEvent(update.Message, p.selfID, p.username, p.prefix)
	if !ok {
		p.log.DebugContext(ctx, "Ignoring update without a text message", "update_id", update.ID)
		return
	}
	p.handler(ctx, event)
}

// toEvent converts a Telegram message. Updates without a sender are skipped.
func toEvent(msg *models.Message, selfID int64, username, prefix string) (chat.Event, bool) {
	if msg == nil || msg.From == nil {
		return chat.Event{}, false
	}
	return chat.Event{
		ID:          strconv.Itoa(msg.ID),
		AuthorID:    strconv.FormatInt(msg.From.ID, 10),
		AuthorName:  msg.From.Username,
		AuthorIsBot: msg.From.IsBot,
		FromSelf:    selfID != 0 && msg.From.ID == selfID,
		ChannelID:   strconv.FormatInt(msg.Chat.ID, 10),
		Direct:      msg.Chat.Type == models.ChatTypePrivate,
		Text:        stripMention(msg.Text, prefix, username),
	}, true
}

// stripMention turns "/cmd@botname args" into "/cmd args" for this bot's
// username.
func stripMention(text, prefix, username string) string {
	if username == "" || !strings.HasPrefix(text, prefix) {
		return text
	}
	word, rest, _ := strings.Cut(text, " ")
	mention := "@" + username
	if len(word) > len(mention) && strings.EqualFold(word[len(word)-len(mention):], mention) {
		word = word[:len(word)-len(mention)]
		if rest == "" {
			return word
		}
		return word + " " + rest
	}
	return text
}
