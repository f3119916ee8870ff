package memory

import (
	"context"
	"sort"
	"sync"

	"tzar-nft-registry/internal/domain"
	"tzar-nft-registry/internal/storage"
)

// CollectionStore is an in-memory implementation of storage.CollectionStore.
type CollectionStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Collection // keyed by collection_id
}

// NewCollectionStore creates a new in-memory collection store.
func NewCollectionStore() *CollectionStore {
	return &CollectionStore{
		data: make(map[string]*domain.Collection),
	}
}

// Insert adds a new collection. Returns ErrDuplicateKey if collection_id exists.
func (s *CollectionStore) Insert(_ context.Context, c *domain.Collection) error {
	if c == nil || c.CollectionID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[c.CollectionID]; exists {
		return storage.ErrDuplicateKey
	}

	// Store a copy to prevent external mutation
	collCopy := *c
	s.data[c.CollectionID] = &collCopy
	return nil
}

// GetByID retrieves a collection by its ID. Returns ErrNotFound if not exists.
func (s *CollectionStore) GetByID(_ context.Context, collectionID string) (*domain.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.data[collectionID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	collCopy := *c
	return &collCopy, nil
}

// GetByCreator retrieves all collections created by an address.
func (s *CollectionStore) GetByCreator(_ context.Context, creator domain.Address) ([]*domain.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Collection
	for _, c := range s.data {
		if c.Creator == creator {
			collCopy := *c
			result = append(result, &collCopy)
		}
	}

	// Sort by created_at ASC
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt < result[j].CreatedAt
	})

	return result, nil
}

// ReserveSupply atomically increments total_supply by n when the result stays
// within max_supply, returning the new total_supply.
func (s *CollectionStore) ReserveSupply(_ context.Context, collectionID string, n int64) (int64, error) {
	if n < 0 {
		return 0, storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.data[collectionID]
	if !exists {
		return 0, storage.ErrNotFound
	}

	if c.TotalSupply+n > c.MaxSupply {
		return 0, storage.ErrSupplyExhausted
	}

	c.TotalSupply += n
	return c.TotalSupply, nil
}

// release undoes a reservation after a failed mint. The caller guarantees n
// was previously reserved for this collection.
func (s *CollectionStore) release(collectionID string, n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, exists := s.data[collectionID]; exists {
		c.TotalSupply -= n
	}
}

// Verify interface compliance at compile time.
var _ storage.CollectionStore = (*CollectionStore)(nil)
