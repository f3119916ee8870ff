package registry

import (
	"context"
	"fmt"

	"tzar-nft-registry/internal/domain"
)

// GetCollection returns the collection record.
func (r *Registry) GetCollection(ctx context.Context, collectionID string) (*domain.Collection, error) {
	return r.collections.GetByID(ctx, collectionID)
}

// CollectionInfo returns the full (name, description, creator, total_supply,
// max_supply) projection of a collection.
func (r *Registry) CollectionInfo(ctx context.Context, collectionID string) (domain.CollectionInfo, error) {
	coll, err := r.collections.GetByID(ctx, collectionID)
	if err != nil {
		return domain.CollectionInfo{}, fmt.Errorf("get collection: %w", err)
	}
	return coll.Info(), nil
}

// GetToken returns the token record.
func (r *Registry) GetToken(ctx context.Context, nftID string) (*domain.Token, error) {
	return r.tokens.GetByID(ctx, nftID)
}

// GetMintCap returns the mint capability record.
func (r *Registry) GetMintCap(ctx context.Context, capID string) (*domain.MintCap, error) {
	return r.caps.GetByID(ctx, capID)
}

// TokensOf returns all tokens of a collection in token_id order.
func (r *Registry) TokensOf(ctx context.Context, collectionID string) ([]*domain.Token, error) {
	return r.tokens.GetByCollection(ctx, collectionID)
}

// HolderOf returns the token's current holder.
func (r *Registry) HolderOf(ctx context.Context, nftID string) (domain.Address, error) {
	tok, err := r.tokens.GetByID(ctx, nftID)
	if err != nil {
		return "", fmt.Errorf("get token: %w", err)
	}
	return tok.Holder, nil
}

// IsNFTOwner reports whether addr is the token's creator.
//
// This compares against the ORIGINAL CREATOR, not the current holder — the
// historical contract behavior, kept as-is. Use HolderOf for the current
// holder.
func (r *Registry) IsNFTOwner(ctx context.Context, nftID string, addr domain.Address) (bool, error) {
	tok, err := r.tokens.GetByID(ctx, nftID)
	if err != nil {
		return false, fmt.Errorf("get token: %w", err)
	}
	return tok.Creator == addr, nil
}
