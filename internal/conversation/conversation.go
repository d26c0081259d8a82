// Package conversation keeps the per-user transcripts that give the model
// context across turns, and owns the summarize-on-overflow policy.
package conversation

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"
)

// Store maps a user identity to an accumulated transcript.
// A user without an entry reads as an empty transcript.
type Store interface {
	// Get returns the transcript for userID, or "" if there is none.
	Get(ctx context.Context, userID string) (string, error)
	// Append adds one completed turn to the transcript, creating it if absent.
	Append(ctx context.Context, userID, userText, aiText string) error
	// Set replaces the transcript.
	Set(ctx context.Context, userID, transcript string) error
	// Clear resets the transcript to "".
	Clear(ctx context.Context, userID string) error
	// PruneIdle drops transcripts last written before olderThan and reports
	// how many were dropped.
	PruneIdle(ctx context.Context, olderThan time.Time) (int, error)
}

// Summarizer condenses a transcript into a shorter text.
type Summarizer func(ctx context.Context, transcript string) (string, error)

// FormatTurn renders one completed turn the way it is stored.
func FormatTurn(userText, aiText string) string {
	return fmt.Sprintf("User: %s\nAI: %s\n", userText, aiText)
}

// TurnPrompt appends the user's new input to the prior history and leaves
// the answer slot open for the model.
func TurnPrompt(history, userText string) string {
	return history + "User: " + userText + "\nAI:"
}

// CompleteTurn closes a prompt built by TurnPrompt with the model's answer.
// The result equals history + FormatTurn(userText, answer).
func CompleteTurn(prompt, answer string) string {
	return prompt + " " + answer + "\n"
}

// PrepareContext returns the context to use for a new turn of userID: the
// stored transcript, or its summary when the transcript is longer than
// maxHistoryLength characters. It never writes to the store; callers decide
// whether the summary replaces the stored transcript.
func PrepareContext(ctx context.Context, store Store, userID string, maxHistoryLength int, summarize Summarizer) (string, bool, error) {
	transcript, err := store.Get(ctx, userID)
	if err != nil {
		return "", false, fmt.Errorf("failed to load history for user %s: %w", userID, err)
	}

	if utf8.RuneCountInString(transcript) <= maxHistoryLength {
		return transcript, false, nil
	}

	summary, err := summarize(ctx, transcript)
	if err != nil {
		return "", false, fmt.Errorf("failed to summarize history for user %s: %w", userID, err)
	}
	return summary, true, nil
}
