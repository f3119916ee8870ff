package memory

import (
	"context"
	"sort"
	"sync"

	"tzar-nft-registry/internal/domain"
	"tzar-nft-registry/internal/storage"
)

// EventStore is an in-memory implementation of storage.EventStore.
// The log is append-only; duplicates are allowed (at-least-once emission).
type EventStore struct {
	mu     sync.RWMutex
	events []*domain.Event
}

// NewEventStore creates a new in-memory event store.
func NewEventStore() *EventStore {
	return &EventStore{}
}

// Append adds an emitted event to the log.
func (s *EventStore) Append(_ context.Context, e *domain.Event) error {
	if e == nil || e.ObjectID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	eventCopy := *e
	s.events = append(s.events, &eventCopy)
	return nil
}

// GetByObjectID retrieves all events for an object, ordered by emitted_at ASC.
func (s *EventStore) GetByObjectID(_ context.Context, objectID string) ([]*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Event
	for _, e := range s.events {
		if e.ObjectID == objectID {
			eventCopy := *e
			result = append(result, &eventCopy)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].EmittedAt < result[j].EmittedAt
	})

	return result, nil
}

// GetByTimeRange retrieves events emitted within [start, end] (inclusive).
func (s *EventStore) GetByTimeRange(_ context.Context, start, end int64) ([]*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Event
	for _, e := range s.events {
		if e.EmittedAt >= start && e.EmittedAt <= end {
			eventCopy := *e
			result = append(result, &eventCopy)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].EmittedAt < result[j].EmittedAt
	})

	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.EventStore = (*EventStore)(nil)
