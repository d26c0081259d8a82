// Package tasks implements the bot's scheduled maintenance tasks: expiring
// idle conversation history and compacting the SQLite store.
package tasks

import (
	"context"
	"log/slog"

	"github.com/edgard/riffbot/internal/config"
	"github.com/edgard/riffbot/internal/conversation"
)

// Maintainer is a store that supports periodic compaction.
type Maintainer interface {
	RunSQLMaintenance(ctx context.Context) error
}

// TaskDeps contains all dependencies required by scheduled tasks.
// Maintainer is nil when history is kept in the in-process map.
type TaskDeps struct {
	Logger     *slog.Logger
	Config     *config.Config
	Store      conversation.Store
	Maintainer Maintainer
}
