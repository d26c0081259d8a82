// Package main contains the entrypoint for the chat bot application.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edgard/riffbot/internal/ai"
	"github.com/edgard/riffbot/internal/bot"
	"github.com/edgard/riffbot/internal/bot/handlers"
	"github.com/edgard/riffbot/internal/bot/settings"
	"github.com/edgard/riffbot/internal/bot/tasks"
	"github.com/edgard/riffbot/internal/chat"
	"github.com/edgard/riffbot/internal/chat/discord"
	"github.com/edgard/riffbot/internal/chat/telegram"
	"github.com/edgard/riffbot/internal/config"
	"github.com/edgard/riffbot/internal/conversation"
	"github.com/edgard/riffbot/internal/database"
	"github.com/edgard/riffbot/internal/logger"
	"github.com/edgard/riffbot/internal/server"
)

const configPath = "config.yaml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes and starts all application components and returns the
// process exit code. Nothing connects to a chat platform until every
// component has been built.
func run(ctx context.Context) int {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	store, maintainer, closeStore, err := newStore(cfg, log)
	if err != nil {
		log.Error("Failed to initialize conversation store", "backend", cfg.History.Backend, "error", err)
		return 1
	}
	defer closeStore()

	botSettings, err := settings.New(cfg.AI.DefaultPersona, cfg.AI.DefaultTemperature, cfg.AI.DefaultMaxTokens, cfg.AI.MaxHistoryLength)
	if err != nil {
		log.Error("Invalid startup settings", "error", err)
		return 1
	}

	openaiClient, err := ai.NewOpenAIClient(cfg.OpenAI, cfg.AI.RequestTimeout, log)
	if err != nil {
		log.Error("Failed to initialize OpenAI client", "error", err)
		return 1
	}
	textCompleter, err := ai.NewTextCompleter(ctx, cfg, openaiClient, log)
	if err != nil {
		log.Error("Failed to initialize text completion provider", "provider", cfg.AI.Provider, "error", err)
		return 1
	}

	platform, err := newPlatform(cfg, log)
	if err != nil {
		log.Error("Failed to create chat platform", "platform", cfg.Chat.Platform, "error", err)
		return 1
	}

	dispatcher := handlers.NewDispatcher(handlers.HandlerDeps{
		Logger:   log,
		Config:   cfg,
		Settings: botSettings,
		Store:    store,
		Text:     textCompleter,
		Images:   openaiClient,
		Sender:   platform,
	})
	eventHandler := chat.Chain(dispatcher.Handler(), logger.Middleware(log))

	taskMap := tasks.RegisterAllTasks(tasks.TaskDeps{
		Logger:     log,
		Config:     cfg,
		Store:      store,
		Maintainer: maintainer,
	})
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, taskMap)
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	var healthServer *server.Server
	if cfg.Server.Addr != "" {
		router := server.NewRouter(server.RouterDeps{
			Logger:   log,
			Settings: botSettings,
			Platform: platform.Name(),
			Provider: cfg.AI.Provider,
		})
		healthServer = server.New(cfg.Server.Addr, router, log)
	}

	app := bot.NewBot(log, platform, eventHandler, sched, healthServer)

	log.Info("Starting bot...", "platform", platform.Name(), "provider", cfg.AI.Provider, "history_backend", cfg.History.Backend)
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}

// newStore builds the configured history backend. maintainer is nil for the
// in-process map.
func newStore(cfg *config.Config, log *slog.Logger) (conversation.Store, tasks.Maintainer, func(), error) {
	switch cfg.History.Backend {
	case config.BackendMemory:
		return conversation.NewMemoryStore(), nil, func() {}, nil
	case config.BackendSQLite:
		db, err := database.NewDB(cfg.Database.DSN)
		if err != nil {
			return nil, nil, nil, err
		}
		store := database.NewStore(db, log)
		return store, store, func() { database.CloseDB(db) }, nil
	default:
		return nil, nil, nil, fmt.Errorf("unsupported history backend %q", cfg.History.Backend)
	}
}

func newPlatform(cfg *config.Config, log *slog.Logger) (chat.Platform, error) {
	switch cfg.Chat.Platform {
	case config.PlatformDiscord:
		return discord.New(cfg.Discord.Token, log)
	case config.PlatformTelegram:
		return telegram.New(cfg.Telegram.Token, cfg.Chat.Prefix, log)
	default:
		return nil, fmt.Errorf("unsupported chat platform %q", cfg.Chat.Platform)
	}
}
