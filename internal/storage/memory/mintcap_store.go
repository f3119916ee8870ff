package memory

import (
	"context"
	"sync"

	"tzar-nft-registry/internal/domain"
	"tzar-nft-registry/internal/storage"
)

// MintCapStore is an in-memory implementation of storage.MintCapStore.
type MintCapStore struct {
	mu   sync.RWMutex
	data map[string]*domain.MintCap // keyed by cap_id
}

// NewMintCapStore creates a new in-memory mint capability store.
func NewMintCapStore() *MintCapStore {
	return &MintCapStore{
		data: make(map[string]*domain.MintCap),
	}
}

// Insert adds a new mint capability. Returns ErrDuplicateKey if cap_id exists.
func (s *MintCapStore) Insert(_ context.Context, mc *domain.MintCap) error {
	if mc == nil || mc.CapID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[mc.CapID]; exists {
		return storage.ErrDuplicateKey
	}

	capCopy := *mc
	s.data[mc.CapID] = &capCopy
	return nil
}

// GetByID retrieves a capability by its ID. Returns ErrNotFound if not exists.
func (s *MintCapStore) GetByID(_ context.Context, capID string) (*domain.MintCap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mc, exists := s.data[capID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	capCopy := *mc
	return &capCopy, nil
}

// UpdateHolder moves the capability to a new holder.
func (s *MintCapStore) UpdateHolder(_ context.Context, capID string, holder domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mc, exists := s.data[capID]
	if !exists {
		return storage.ErrNotFound
	}

	mc.Holder = holder
	return nil
}

// Verify interface compliance at compile time.
var _ storage.MintCapStore = (*MintCapStore)(nil)
