package review

import (
	"context"
	"sync"
	"time"
)

// Store persists review schedule entries keyed by question id.
type Store interface {
	Get(ctx context.Context, questionID string) (*Entry, error)
	Put(ctx context.Context, entry Entry) error
	All(ctx context.Context) (map[string]Entry, error)
}

// MemoryStore is an in-memory Store implementation.
type MemoryStore struct {
	entries map[string]Entry
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory review store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Entry),
	}
}

func (s *MemoryStore) Get(_ context.Context, questionID string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[questionID]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (s *MemoryStore) Put(_ context.Context, entry Entry) error {
	s.mu.Lock()
	s.entries[entry.QuestionID] = entry
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) All(_ context.Context) (map[string]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Entry, len(s.entries))
	for id, entry := range s.entries {
		out[id] = entry
	}
	return out, nil
}

// Scheduler funnels all review-state mutations through one place so answer
// events for the same question never race.
type Scheduler struct {
	store Store
}

// NewScheduler creates a scheduler over the given store. A nil store gets an
// in-memory one.
func NewScheduler(store Store) *Scheduler {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Scheduler{store: store}
}

// Record applies the transition for one answered question and persists the
// resulting entry.
func (s *Scheduler) Record(ctx context.Context, questionID string, correct bool, now time.Time) (Entry, error) {
	prev, err := s.store.Get(ctx, questionID)
	if err != nil {
		return Entry{}, err
	}
	entry := Apply(prev, questionID, correct, now)
	if err := s.store.Put(ctx, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// DueNow returns every question id whose next review is at or before now.
func (s *Scheduler) DueNow(ctx context.Context, now time.Time) ([]string, error) {
	entries, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	return Due(entries, now), nil
}
