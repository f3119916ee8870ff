package storage

import (
	"context"

	"tzar-nft-registry/internal/domain"
)

// CollectionStore provides access to collections storage.
type CollectionStore interface {
	// Insert adds a new collection. Returns ErrDuplicateKey if collection_id exists.
	Insert(ctx context.Context, c *domain.Collection) error

	// GetByID retrieves a collection by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, collectionID string) (*domain.Collection, error)

	// GetByCreator retrieves all collections created by an address,
	// ordered by created_at ASC.
	GetByCreator(ctx context.Context, creator domain.Address) ([]*domain.Collection, error)

	// ReserveSupply atomically increments total_supply by n when the result
	// stays within max_supply, returning the new total_supply. Returns
	// ErrSupplyExhausted when capacity is insufficient, ErrNotFound when the
	// collection does not exist.
	ReserveSupply(ctx context.Context, collectionID string, n int64) (int64, error)
}

// MintCapStore provides access to mint_caps storage.
type MintCapStore interface {
	// Insert adds a new mint capability. Returns ErrDuplicateKey if cap_id exists.
	Insert(ctx context.Context, cap *domain.MintCap) error

	// GetByID retrieves a capability by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, capID string) (*domain.MintCap, error)

	// UpdateHolder moves the capability to a new holder. Returns ErrNotFound
	// if the capability does not exist.
	UpdateHolder(ctx context.Context, capID string, holder domain.Address) error
}

// TokenStore provides access to tokens storage.
type TokenStore interface {
	// Insert adds a new token. Returns ErrDuplicateKey if nft_id or
	// (collection_id, token_id) exists.
	Insert(ctx context.Context, t *domain.Token) error

	// InsertBulk adds multiple tokens atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, tokens []*domain.Token) error

	// Mint reserves collection supply for len(tokens) and inserts the tokens
	// as one atomic unit, assigning each token a sequential token_id from the
	// reserved range. Nothing persists on failure: ErrSupplyExhausted when
	// capacity is insufficient, ErrNotFound when the collection does not
	// exist, ErrDuplicateKey on an nft_id or sequence conflict.
	Mint(ctx context.Context, collectionID string, tokens []*domain.Token) error

	// GetByID retrieves a token by its NFT ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, nftID string) (*domain.Token, error)

	// GetByCollection retrieves all tokens of a collection, ordered by token_id ASC.
	GetByCollection(ctx context.Context, collectionID string) ([]*domain.Token, error)

	// GetByHolder retrieves all tokens currently held by an address,
	// ordered by minted_at ASC.
	GetByHolder(ctx context.Context, holder domain.Address) ([]*domain.Token, error)

	// UpdateMetadata replaces the mutable metadata fields. Returns ErrNotFound
	// if the token does not exist.
	UpdateMetadata(ctx context.Context, nftID, name, description, imageURI string) error

	// UpdateHolder moves the token to a new holder. Returns ErrNotFound
	// if the token does not exist.
	UpdateHolder(ctx context.Context, nftID string, holder domain.Address) error

	// Delete removes the token record entirely. Returns ErrNotFound
	// if the token does not exist.
	Delete(ctx context.Context, nftID string) error
}

// EventStore provides access to the append-only emitted event log.
type EventStore interface {
	// Append adds an emitted event to the log.
	Append(ctx context.Context, e *domain.Event) error

	// GetByObjectID retrieves all events for an object, ordered by emitted_at ASC.
	GetByObjectID(ctx context.Context, objectID string) ([]*domain.Event, error)

	// GetByTimeRange retrieves events emitted within [start, end] (inclusive),
	// ordered by emitted_at ASC.
	GetByTimeRange(ctx context.Context, start, end int64) ([]*domain.Event, error)
}
