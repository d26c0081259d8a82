// Package bot wires the chat platform, the command dispatcher, the task
// scheduler and the optional health server into one lifecycle.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/edgard/riffbot/internal/chat"
	"github.com/edgard/riffbot/internal/server"
)

// Bot represents the main bot application and manages its components' lifecycle.
type Bot struct {
	logger    *slog.Logger
	platform  chat.Platform
	handler   chat.Handler
	scheduler *Scheduler
	server    *server.Server
}

// NewBot creates a Bot. server may be nil when the health endpoint is
// disabled.
func NewBot(logger *slog.Logger, platform chat.Platform, handler chat.Handler, scheduler *Scheduler, srv *server.Server) *Bot {
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		platform:  platform,
		handler:   handler,
		scheduler: scheduler,
		server:    srv,
	}
}

// Run starts the bot and all its components, handling graceful shutdown on context cancellation.
// It returns an error if any component fails during startup or execution.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting chat platform listener...", "platform", b.platform.Name())

		if err := b.platform.Start(gCtx, b.handler); err != nil {
			return fmt.Errorf("%s listener failed: %w", b.platform.Name(), err)
		}
		b.logger.Info("Chat platform listener stopped.", "platform", b.platform.Name())

		if gCtx.Err() == nil {
			b.logger.Warn("Chat platform listener stopped unexpectedly without context cancellation.")
			return fmt.Errorf("%s listener stopped unexpectedly", b.platform.Name())
		}
		return nil
	})

	g.Go(func() error {
		b.logger.Info("Starting scheduler...")
		if err := b.scheduler.Start(); err != nil {
			b.logger.Error("Failed to start scheduler", "error", err)
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler...")

		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	if b.server != nil {
		g.Go(func() error {
			return b.server.Run(gCtx)
		})
	}

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}
