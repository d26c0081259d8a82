package handlers

import (
	"context"
	"errors"

	"github.com/edgard/riffbot/internal/bot/command"
	"github.com/edgard/riffbot/internal/chat"
)

// Dispatcher parses inbound events and routes each command to its handler.
type Dispatcher struct {
	deps HandlerDeps
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(deps HandlerDeps) *Dispatcher {
	return &Dispatcher{deps: deps}
}

// Handler returns the event handler to register with a chat platform.
// Bot-authored events are dropped before parsing.
func (d *Dispatcher) Handler() chat.Handler {
	return chat.Chain(d.Dispatch, IgnoreBots(d.deps))
}

// Dispatch parses one event and runs the matching command. Every failure is
// reported to the channel the event came from.
func (d *Dispatcher) Dispatch(ctx context.Context, event chat.Event) {
	log := d.deps.Logger.With("handler", "dispatcher")

	cmd, err := command.Parse(event.Text, d.deps.Config.Chat.Prefix, event.Direct)
	if err != nil {
		d.handleParseError(ctx, event, err)
		return
	}

	log.InfoContext(ctx, "Handling command", "command", cmd.Name(), "channel_id", event.ChannelID, "user_id", event.AuthorID)

	switch c := cmd.(type) {
	case command.Prompt:
		promptHandler{d.deps}.Handle(ctx, event, c)
	case command.Image:
		imageHandler{d.deps}.Handle(ctx, event, c)
	case command.Role:
		roleHandler{d.deps}.Handle(ctx, event, c.Text, c.Random())
	case command.RandomRole:
		roleHandler{d.deps}.Handle(ctx, event, "", true)
	case command.Tokens:
		tokensHandler{d.deps}.Handle(ctx, event, c)
	case command.Temp:
		tempHandler{d.deps}.Handle(ctx, event, c)
	case command.Forget:
		forgetHandler{d.deps}.Handle(ctx, event)
	case command.Summarize:
		summarizeHandler{d.deps}.Handle(ctx, event)
	case command.Help:
		helpHandler{d.deps}.Handle(ctx, event)
	default:
		log.ErrorContext(ctx, "No handler for command", "command", cmd.Name())
		sendText(ctx, d.deps, log, event.ChannelID, d.deps.Config.Messages.UnknownCommand)
	}
}

func (d *Dispatcher) handleParseError(ctx context.Context, event chat.Event, err error) {
	log := d.deps.Logger.With("handler", "dispatcher")
	msgs := d.deps.Config.Messages

	var (
		unknown *command.UnknownCommandError
		missing *command.MissingArgumentError
		bad     *command.BadArgumentError
	)
	switch {
	case errors.Is(err, command.ErrNotCommand):
		return
	case errors.As(err, &unknown):
		log.InfoContext(ctx, "Unknown command", "name", unknown.Name, "user_id", event.AuthorID)
		sendText(ctx, d.deps, log, event.ChannelID, msgs.UnknownCommand)
	case errors.As(err, &missing):
		log.InfoContext(ctx, "Missing command argument", "error", err, "user_id", event.AuthorID)
		sendText(ctx, d.deps, log, event.ChannelID, msgs.MissingArgument)
	case errors.As(err, &bad):
		log.InfoContext(ctx, "Bad command argument", "error", err, "user_id", event.AuthorID)
		sendText(ctx, d.deps, log, event.ChannelID, msgs.BadArgument)
	default:
		log.ErrorContext(ctx, "Failed to parse command", "error", err)
		sendUnexpectedError(ctx, d.deps, log, event.ChannelID, err)
	}
}
