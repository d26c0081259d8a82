package tasks

import (
	"context"
	"fmt"
	"time"
)

// newHistoryJanitorTask drops transcripts nobody has written to for longer
// than history.idle_ttl. A zero TTL keeps history for the process lifetime.
func newHistoryJanitorTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "history_janitor")

	return func(ctx context.Context) error {
		ttl := deps.Config.History.IdleTTL
		if ttl <= 0 {
			log.DebugContext(ctx, "Idle TTL disabled, nothing to prune")
			return nil
		}

		deleted, err := deps.Store.PruneIdle(ctx, time.Now().Add(-ttl))
		if err != nil {
			return fmt.Errorf("history janitor failed: %w", err)
		}

		log.InfoContext(ctx, "Pruned idle conversation histories", "deleted", deleted, "idle_ttl", ttl)
		return nil
	}
}
