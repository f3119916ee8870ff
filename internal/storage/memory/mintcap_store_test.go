package memory

import (
	"context"
	"errors"
	"testing"

	"tzar-nft-registry/internal/domain"
	"tzar-nft-registry/internal/storage"
)

func TestMintCapStore_InsertAndGet(t *testing.T) {
	store := NewMintCapStore()
	ctx := context.Background()

	mc := &domain.MintCap{
		CapID:        "cap-001",
		CollectionID: "coll-001",
		Holder:       "CreatorAddr111",
		CreatedAt:    1704067200000,
	}

	if err := store.Insert(ctx, mc); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByID(ctx, "cap-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.CollectionID != "coll-001" {
		t.Errorf("CollectionID mismatch: got %s, want coll-001", got.CollectionID)
	}
	if got.Holder != "CreatorAddr111" {
		t.Errorf("Holder mismatch: got %s", got.Holder)
	}
}

func TestMintCapStore_DuplicateKey(t *testing.T) {
	store := NewMintCapStore()
	ctx := context.Background()

	mc := &domain.MintCap{CapID: "cap-001", CollectionID: "coll-001", Holder: "h"}
	if err := store.Insert(ctx, mc); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	err := store.Insert(ctx, mc)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestMintCapStore_NotFound(t *testing.T) {
	store := NewMintCapStore()
	ctx := context.Background()

	_, err := store.GetByID(ctx, "nonexistent")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMintCapStore_UpdateHolder(t *testing.T) {
	store := NewMintCapStore()
	ctx := context.Background()

	mc := &domain.MintCap{CapID: "cap-001", CollectionID: "coll-001", Holder: "alice"}
	if err := store.Insert(ctx, mc); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if err := store.UpdateHolder(ctx, "cap-001", "bob"); err != nil {
		t.Fatalf("UpdateHolder failed: %v", err)
	}

	got, err := store.GetByID(ctx, "cap-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Holder != "bob" {
		t.Errorf("Holder not updated: got %s, want bob", got.Holder)
	}

	err = store.UpdateHolder(ctx, "nonexistent", "bob")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
