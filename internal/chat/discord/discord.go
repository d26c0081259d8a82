// Package discord connects the bot to Discord through a gateway session.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/edgard/riffbot/internal/chat"
	"github.com/edgard/riffbot/internal/config"
)

// Intents needed to read guild and direct message text.
const intents = discordgo.IntentsGuildMessages |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsMessageContent

// Platform is a Discord bot session.
type Platform struct {
	session *discordgo.Session
	log     *slog.Logger
}

// New creates a Discord session for the bot token. No connection is opened
// until Start.
func New(token string, logger *slog.Logger) (*Platform, error) {
	if token == "" {
		return nil, errors.New("discord bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "discord")

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Error("Failed to create Discord session", "error", err)
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = intents

	log.Info("Discord session created")
	return &Platform{session: session, log: log}, nil
}

// Name implements chat.Platform.
func (p *Platform) Name() string { return config.PlatformDiscord }

// Start opens the gateway connection and delivers message events to handler
// until ctx is cancelled. discordgo runs every event handler on its own
// goroutine.
func (p *Platform) Start(ctx context.Context, handler chat.Handler) error {
	remove := p.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		event, ok := toEvent(m.Message, selfID(s))
		if !ok {
			return
		}
		handler(ctx, event)
	})
	defer remove()

	if err := p.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord connection: %w", err)
	}
	p.log.Info("Discord connection opened", "user", selfName(p.session))

	<-ctx.Done()

	p.log.Info("Closing Discord connection...")
	if err := p.session.Close(); err != nil {
		p.log.Error("Failed to close Discord connection", "error", err)
	}
	return nil
}

// SendText implements chat.Sender.
func (p *Platform) SendText(ctx context.Context, channelID, text string) error {
	if _, err := p.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send discord message: %w", err)
	}
	return nil
}

// SendImage implements chat.Sender by posting an embed that shows the image.
func (p *Platform) SendImage(ctx context.Context, channelID, imageURL string) error {
	if _, err := p.session.ChannelMessageSendEmbed(channelID, imageEmbed(imageURL), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send discord embed: %w", err)
	}
	return nil
}

func imageEmbed(imageURL string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Image: &discordgo.MessageEmbedImage{URL: imageURL}}
}

// toEvent converts a Discord message. Messages without an author are skipped.
func toEvent(m *discordgo.Message, self string) (chat.Event, bool) {
	if m == nil || m.Author == nil {
		return chat.Event{}, false
	}
	return chat.Event{
		ID:          m.ID,
		AuthorID:    m.Author.ID,
		AuthorName:  m.Author.Username,
		AuthorIsBot: m.Author.Bot,
		FromSelf:    self != "" && m.Author.ID == self,
		ChannelID:   m.ChannelID,
		Direct:      m.GuildID == "",
		Text:        m.Content,
	}, true
}

func selfID(s *discordgo.Session) string {
	if s == nil || s.State == nil || s.State.User == nil {
		return ""
	}
	return s.State.User.ID
}

func selfName(s *discordgo.Session) string {
	if s == nil || s.State == nil || s.State.User == nil {
		return ""
	}
	return s.State.User.Username
}
