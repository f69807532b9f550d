package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ollamadash/models"
)

// TranscriptStore holds one chat transcript per session id.
type TranscriptStore interface {
	// Get returns the transcript for sessionID, or an empty one if none exists.
	Get(ctx context.Context, sessionID string) (models.Transcript, error)
	Set(ctx context.Context, sessionID string, t models.Transcript) error
}

type memoryEntry struct {
	transcript models.Transcript
	lastSeen   time.Time
}

// MemoryStore is a process-local TranscriptStore. Entries idle for longer
// than ttl are dropped by Sweep. Nothing survives a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (models.Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sessionID]
	if !ok {
		return models.Transcript{}, nil
	}
	e.lastSeen = s.now()
	return e.transcript.Clone(), nil
}

func (s *MemoryStore) Set(ctx context.Context, sessionID string, t models.Transcript) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sessionID] = &memoryEntry{transcript: t.Clone(), lastSeen: s.now()}
	return nil
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep removes entries idle for longer than the store's ttl and returns how
// many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.Debug("expired idle chat sessions", "removed", n, "remaining", s.Len())
			}
		}
	}
}
