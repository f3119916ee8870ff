package memory

import (
	"context"
	"sort"
	"sync"

	"tzar-nft-registry/internal/domain"
	"tzar-nft-registry/internal/storage"
)

// TokenStore is an in-memory implementation of storage.TokenStore.
type TokenStore struct {
	mu          sync.RWMutex
	data        map[string]*domain.Token // keyed by nft_id
	byCollID    map[collTokenKey]string  // (collection_id, token_id) -> nft_id
	collections *CollectionStore
}

type collTokenKey struct {
	collectionID string
	tokenID      int64
}

// NewTokenStore creates a new in-memory token store. Mint reserves supply
// through collections.
func NewTokenStore(collections *CollectionStore) *TokenStore {
	return &TokenStore{
		data:        make(map[string]*domain.Token),
		byCollID:    make(map[collTokenKey]string),
		collections: collections,
	}
}

// Insert adds a new token. Returns ErrDuplicateKey if nft_id or
// (collection_id, token_id) exists.
func (s *TokenStore) Insert(_ context.Context, t *domain.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(t)
}

// InsertBulk adds multiple tokens atomically. Fails entire batch on any duplicate.
func (s *TokenStore) InsertBulk(_ context.Context, tokens []*domain.Token) error {
	if len(tokens) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole batch before touching state
	seen := make(map[string]struct{}, len(tokens))
	seenSeq := make(map[collTokenKey]struct{}, len(tokens))
	for _, t := range tokens {
		if t == nil || t.NFTID == "" {
			return storage.ErrInvalidInput
		}
		k := collTokenKey{t.CollectionID, t.TokenID}
		if _, dup := seen[t.NFTID]; dup {
			return storage.ErrDuplicateKey
		}
		if _, dup := seenSeq[k]; dup {
			return storage.ErrDuplicateKey
		}
		if _, exists := s.data[t.NFTID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := s.byCollID[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[t.NFTID] = struct{}{}
		seenSeq[k] = struct{}{}
	}

	for _, t := range tokens {
		if err := s.insertLocked(t); err != nil {
			return err
		}
	}
	return nil
}

// Mint reserves supply for the batch, assigns sequential token IDs from the
// reserved range, and inserts. A conflicting insert undoes both the partial
// batch and the reservation, so a failed mint leaves total_supply unchanged.
func (s *TokenStore) Mint(ctx context.Context, collectionID string, tokens []*domain.Token) error {
	if len(tokens) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if t == nil || t.NFTID == "" {
			return storage.ErrInvalidInput
		}
		if _, dup := seen[t.NFTID]; dup {
			return storage.ErrDuplicateKey
		}
		if _, exists := s.data[t.NFTID]; exists {
			return storage.ErrDuplicateKey
		}
		seen[t.NFTID] = struct{}{}
	}

	n := int64(len(tokens))
	newSupply, err := s.collections.ReserveSupply(ctx, collectionID, n)
	if err != nil {
		return err
	}

	firstID := newSupply - n + 1
	for i, t := range tokens {
		t.TokenID = firstID + int64(i)
		if err := s.insertLocked(t); err != nil {
			for _, ins := range tokens[:i] {
				delete(s.byCollID, collTokenKey{ins.CollectionID, ins.TokenID})
				delete(s.data, ins.NFTID)
			}
			s.collections.release(collectionID, n)
			return err
		}
	}
	return nil
}

func (s *TokenStore) insertLocked(t *domain.Token) error {
	if t == nil || t.NFTID == "" {
		return storage.ErrInvalidInput
	}

	if _, exists := s.data[t.NFTID]; exists {
		return storage.ErrDuplicateKey
	}
	k := collTokenKey{t.CollectionID, t.TokenID}
	if _, exists := s.byCollID[k]; exists {
		return storage.ErrDuplicateKey
	}

	tokenCopy := *t
	s.data[t.NFTID] = &tokenCopy
	s.byCollID[k] = t.NFTID
	return nil
}

// GetByID retrieves a token by its NFT ID. Returns ErrNotFound if not exists.
func (s *TokenStore) GetByID(_ context.Context, nftID string) (*domain.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.data[nftID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	tokenCopy := *t
	return &tokenCopy, nil
}

// GetByCollection retrieves all tokens of a collection, ordered by token_id ASC.
func (s *TokenStore) GetByCollection(_ context.Context, collectionID string) ([]*domain.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Token
	for _, t := range s.data {
		if t.CollectionID == collectionID {
			tokenCopy := *t
			result = append(result, &tokenCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].TokenID < result[j].TokenID
	})

	return result, nil
}

// GetByHolder retrieves all tokens currently held by an address.
func (s *TokenStore) GetByHolder(_ context.Context, holder domain.Address) ([]*domain.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Token
	for _, t := range s.data {
		if t.Holder == holder {
			tokenCopy := *t
			result = append(result, &tokenCopy)
		}
	}

	// Sort by minted_at ASC
	sort.Slice(result, func(i, j int) bool {
		return result[i].MintedAt < result[j].MintedAt
	})

	return result, nil
}

// UpdateMetadata replaces the mutable metadata fields.
func (s *TokenStore) UpdateMetadata(_ context.Context, nftID, name, description, imageURI string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, exists := s.data[nftID]
	if !exists {
		return storage.ErrNotFound
	}

	t.Name = name
	t.Description = description
	t.ImageURI = imageURI
	return nil
}

// UpdateHolder moves the token to a new holder.
func (s *TokenStore) UpdateHolder(_ context.Context, nftID string, holder domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, exists := s.data[nftID]
	if !exists {
		return storage.ErrNotFound
	}

	t.Holder = holder
	return nil
}

// Delete removes the token record entirely.
func (s *TokenStore) Delete(_ context.Context, nftID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, exists := s.data[nftID]
	if !exists {
		return storage.ErrNotFound
	}

	delete(s.byCollID, collTokenKey{t.CollectionID, t.TokenID})
	delete(s.data, nftID)
	return nil
}

// Verify interface compliance at compile time.
var _ storage.TokenStore = (*TokenStore)(nil)
