// Package chat defines the platform-neutral contract between chat platform
// adapters and the command dispatcher.
package chat

import "context"

// Event is a message received from a chat platform.
type Event struct {
	ID          string // Platform message ID
	AuthorID    string // Stable identity of the sender, used as the history key
	AuthorName  string
	AuthorIsBot bool   // Sender is an automated account
	FromSelf    bool   // Sender is this bot
	ChannelID   string // Where replies are delivered
	Direct      bool   // Private one-to-one channel
	Text        string
}

// Sender delivers outbound messages to a chat platform.
type Sender interface {
	SendText(ctx context.Context, channelID, text string) error
	SendImage(ctx context.Context, channelID, imageURL string) error
}

// Handler processes one inbound event. Replies go through the Sender the
// handler was built with.
type Handler func(ctx context.Context, event Event)

// Middleware wraps a Handler.
type Middleware func(next Handler) Handler

// Chain applies middleware so the first one in mw is the outermost.
func Chain(h Handler, mw ...Middleware) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// Platform is a running connection to a chat service.
type Platform interface {
	Sender
	// Name identifies the platform in logs.
	Name() string
	// Start connects, delivers every inbound event to handler and blocks
	// until ctx is cancelled or the connection fails.
	Start(ctx context.Context, handler Handler) error
}
