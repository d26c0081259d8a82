package conversation

import (
	"context"
	"sync"
	"time"
)

type transcriptEntry struct {
	text        string
	lastTouched time.Time
}

// MemoryStore is a thread-safe in-memory Store. Entries are created lazily
// and live until cleared, pruned or the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]transcriptEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]transcriptEntry),
		now:     time.Now,
	}
}

// Get returns the stored transcript or "".
func (s *MemoryStore) Get(_ context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[userID].text, nil
}

// Append adds one turn to the transcript of userID.
func (s *MemoryStore) Append(_ context.Context, userID, userText, aiText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.entries[userID]
	entry.text += FormatTurn(userText, aiText)
	entry.lastTouched = s.now()
	s.entries[userID] = entry
	return nil
}

// Set replaces the transcript of userID.
func (s *MemoryStore) Set(_ context.Context, userID, transcript string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[userID] = transcriptEntry{text: transcript, lastTouched: s.now()}
	return nil
}

// Clear resets the transcript of userID to "".
func (s *MemoryStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[userID] = transcriptEntry{lastTouched: s.now()}
	return nil
}

// PruneIdle removes every entry last written before olderThan.
func (s *MemoryStore) PruneIdle(_ context.Context, olderThan time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int
	for userID, entry := range s.entries {
		if entry.lastTouched.Before(olderThan) {
			delete(s.entries, userID)
			deleted++
		}
	}
	return deleted, nil
}

// Len reports how many users currently have an entry.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
