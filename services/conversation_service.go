package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"ollamadash/models"
)

var ErrEmptyPrompt = errors.New("prompt is required")

// ConversationService turns the stateless generate call into a multi-turn
// chat whose transcript lives in a TranscriptStore.
//
// Only the latest prompt is sent upstream; earlier turns are kept for display
// and are not used as model context.
type ConversationService struct {
	client InferenceClient
	store  TranscriptStore
	locks  *sessionLocks
}

func NewConversationService(client InferenceClient, store TranscriptStore) *ConversationService {
	return &ConversationService{
		client: client,
		store:  store,
		locks:  newSessionLocks(),
	}
}

// History returns the transcript of sessionID, empty if it has none yet.
func (s *ConversationService) History(ctx context.Context, sessionID string) (models.Transcript, error) {
	t, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}
	return t, nil
}

// Submit runs one chat turn. On success the prompt and the reply are
// appended together and the updated transcript is returned. On failure the
// stored transcript is left as it was.
//
// Submissions for the same session are serialised so that concurrent turns
// cannot overwrite each other.
func (s *ConversationService) Submit(ctx context.Context, sessionID, model, prompt string) (models.Transcript, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	history, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}

	gen, err := s.client.Generate(ctx, model, prompt)
	if err != nil {
		return nil, err
	}

	updated := history.AppendPair(prompt, gen.Text)
	if err := s.store.Set(ctx, sessionID, updated); err != nil {
		return nil, fmt.Errorf("save transcript: %w", err)
	}

	return updated, nil
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// sessionLocks hands out one mutex per session id and forgets it once no
// caller holds or waits on it.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	sl, ok := l.locks[id]
	if !ok {
		sl = &sessionLock{}
		l.locks[id] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()

	return func() {
		sl.mu.Unlock()

		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *sessionLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
