package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edgard/riffbot/internal/conversation"
)

const (
	appendTranscriptSQL = `
		INSERT INTO transcripts (user_id, transcript, created_at, updated_at)
		VALUES (:user_id, :transcript, :created_at, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			transcript = transcripts.transcript || excluded.transcript,
			updated_at = excluded.updated_at`

	setTranscriptSQL = `
		INSERT INTO transcripts (user_id, transcript, created_at, updated_at)
		VALUES (:user_id, :transcript, :created_at, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			transcript = excluded.transcript,
			updated_at = excluded.updated_at`
)

// TranscriptStore implements conversation.Store on SQLite using sqlx.
type TranscriptStore struct {
	db     *sqlx.DB
	logger *slog.Logger
	now    func() time.Time
}

var _ conversation.Store = (*TranscriptStore)(nil)

// NewStore creates a TranscriptStore on a connected, migrated database.
func NewStore(db *sqlx.DB, logger *slog.Logger) *TranscriptStore {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &TranscriptStore{
		db:     db,
		logger: logger.With("component", "store"),
		now:    time.Now,
	}
}

// Ping checks the database connection.
func (s *TranscriptStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Get returns the transcript for userID, or "" if there is none.
func (s *TranscriptStore) Get(ctx context.Context, userID string) (string, error) {
	var transcript string
	err := s.db.GetContext(ctx, &transcript, `SELECT transcript FROM transcripts WHERE user_id = ?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load transcript", "user_id", userID, "error", err)
		return "", fmt.Errorf("failed to load transcript: %w", err)
	}
	return transcript, nil
}

// Append adds one turn in a single statement, so concurrent appends for the
// same user never drop text.
func (s *TranscriptStore) Append(ctx context.Context, userID, userText, aiText string) error {
	if err := s.upsert(ctx, appendTranscriptSQL, userID, conversation.FormatTurn(userText, aiText)); err != nil {
		return fmt.Errorf("failed to append transcript: %w", err)
	}
	return nil
}

// Set replaces the transcript.
func (s *TranscriptStore) Set(ctx context.Context, userID, transcript string) error {
	if err := s.upsert(ctx, setTranscriptSQL, userID, transcript); err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}
	return nil
}

func (s *TranscriptStore) upsert(ctx context.Context, query, userID, transcript string) error {
	now := s.now().UnixNano()
	row := Transcript{UserID: userID, Transcript: transcript, CreatedAt: now, UpdatedAt: now}
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		s.logger.ErrorContext(ctx, "Failed to write transcript", "user_id", userID, "error", err)
		return err
	}
	return nil
}

// Clear removes the transcript; a missing row reads as "".
func (s *TranscriptStore) Clear(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM transcripts WHERE user_id = ?`, userID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to clear transcript", "user_id", userID, "error", err)
		return fmt.Errorf("failed to clear transcript: %w", err)
	}
	return nil
}

// PruneIdle deletes transcripts last written before olderThan.
func (s *TranscriptStore) PruneIdle(ctx context.Context, olderThan time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM transcripts WHERE updated_at < ?`, olderThan.UnixNano())
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to prune idle transcripts", "error", err)
		return 0, fmt.Errorf("failed to prune idle transcripts: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned transcripts: %w", err)
	}
	return int(affected), nil
}

// RunSQLMaintenance reclaims free pages with VACUUM.
func (s *TranscriptStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")
	startTime := time.Now()
	if _, err := s.db.ExecContext(ctx, "VACUUM;"); err != nil {
		s.logger.ErrorContext(ctx, "Failed to execute VACUUM", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully", "duration", time.Since(startTime))
	return nil
}
