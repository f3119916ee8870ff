package registry

import (
	"context"
	"fmt"

	"tzar-nft-registry/internal/domain"
	"tzar-nft-registry/internal/ledger"
)

// Default collection created once at deploy time.
const (
	DefaultCollectionName        = "TZAR NFT Collection"
	DefaultCollectionDescription = "Default TZAR collection"
	DefaultCollectionMaxSupply   = 1000
)

// Bootstrap creates the default collection on behalf of genesis if it does
// not exist yet. Idempotent across restarts: an existing default collection
// created by genesis is returned as-is.
func (r *Registry) Bootstrap(ctx context.Context, genesis domain.Address) (*domain.Collection, error) {
	existing, err := r.collections.GetByCreator(ctx, genesis)
	if err != nil {
		return nil, fmt.Errorf("list genesis collections: %w", err)
	}
	for _, coll := range existing {
		if coll.Name == DefaultCollectionName {
			return coll, nil
		}
	}

	tx := ledger.NewTxContext(genesis)
	coll, _, err := r.CreateCollection(ctx, tx, DefaultCollectionName, DefaultCollectionDescription, DefaultCollectionMaxSupply)
	if err != nil {
		return nil, fmt.Errorf("create default collection: %w", err)
	}
	return coll, nil
}
