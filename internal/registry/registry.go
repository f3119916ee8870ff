// Package registry implements the collection & token state transitions.
//
// Every mutating operation executes as one serialized transition: the
// registry mutex stands in for the host ledger's per-transaction isolation,
// and the Postgres store reserves supply and inserts minted tokens in a
// single transaction, keeping the total_supply <= max_supply invariant
// across processes with no partial commit.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"tzar-nft-registry/internal/domain"
	"tzar-nft-registry/internal/events"
	"tzar-nft-registry/internal/ledger"
	"tzar-nft-registry/internal/observability"
	"tzar-nft-registry/internal/storage"
)

// Options configures a Registry.
type Options struct {
	CollectionStore storage.CollectionStore
	MintCapStore    storage.MintCapStore
	TokenStore      storage.TokenStore
	EventSink       events.Sink            // optional
	Metrics         *observability.Metrics // optional
	Logger          *log.Logger            // optional
}

// Registry executes the collection & token state transitions over the
// configured stores.
type Registry struct {
	mu sync.Mutex

	collections storage.CollectionStore
	caps        storage.MintCapStore
	tokens      storage.TokenStore
	sink        events.Sink
	metrics     *observability.Metrics
	logger      *log.Logger
}

// New creates a Registry from opts.
func New(opts Options) *Registry {
	return &Registry{
		collections: opts.CollectionStore,
		caps:        opts.MintCapStore,
		tokens:      opts.TokenStore,
		sink:        opts.EventSink,
		metrics:     opts.Metrics,
		logger:      opts.Logger,
	}
}

// CreateCollection allocates a new collection with zero supply and a mint
// capability held by the sender, and emits CollectionCreated.
//
// maxSupply is accepted as-is, including zero: a zero-cap collection is
// valid and immediately exhausted.
func (r *Registry) CreateCollection(ctx context.Context, tx *ledger.TxContext, name, description string, maxSupply int64) (*domain.Collection, *domain.MintCap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.observe("create_collection", time.Now())

	if maxSupply < 0 {
		return nil, nil, fmt.Errorf("create collection: %w", storage.ErrInvalidInput)
	}

	coll := &domain.Collection{
		CollectionID: tx.NewObjectID(domain.KindCollection),
		Name:         name,
		Description:  description,
		Creator:      tx.Sender,
		TotalSupply:  0,
		MaxSupply:    maxSupply,
		CreatedAt:    tx.Timestamp,
	}
	mintCap := &domain.MintCap{
		CapID:        tx.NewObjectID(domain.KindMintCap),
		CollectionID: coll.CollectionID,
		Holder:       tx.Sender,
		CreatedAt:    tx.Timestamp,
	}

	if err := r.collections.Insert(ctx, coll); err != nil {
		return nil, nil, r.fail("create_collection", fmt.Errorf("insert collection: %w", err))
	}
	if err := r.caps.Insert(ctx, mintCap); err != nil {
		return nil, nil, r.fail("create_collection", fmt.Errorf("insert mint cap: %w", err))
	}

	r.emit(ctx, domain.NewCollectionCreated(coll, tx.TxID, tx.Timestamp))
	if r.metrics != nil {
		r.metrics.CollectionsCreated.Inc()
	}
	return coll, mintCap, nil
}

// MintNFT mints one token into the collection.
//
// The sender must hold the mint capability, the capability must reference
// the collection, and the collection must have remaining capacity. The new
// token's token_id equals the post-increment total_supply; the token is
// held by recipient while its creator is the sender.
func (r *Registry) MintNFT(ctx context.Context, tx *ledger.TxContext, collectionID, capID, name, description, imageURI string, recipient domain.Address) (*domain.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.observe("mint_nft", time.Now())

	tok, err := r.mintLocked(ctx, tx, collectionID, capID, name, description, imageURI, recipient)
	if err != nil {
		return nil, r.fail("mint_nft", err)
	}
	if r.metrics != nil {
		r.metrics.TokensMinted.Inc()
	}
	return tok, nil
}

// BatchMint mints one token per index, strictly in input order, all-or-nothing.
// All four arrays must have equal length; a mismatch fails before any mint.
func (r *Registry) BatchMint(ctx context.Context, tx *ledger.TxContext, collectionID, capID string, names, descriptions, imageURIs []string, recipients []domain.Address) ([]*domain.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.observe("batch_mint", time.Now())

	n := len(names)
	if len(descriptions) != n || len(imageURIs) != n || len(recipients) != n {
		return nil, r.fail("batch_mint", ErrLengthMismatch)
	}
	if n == 0 {
		return nil, nil
	}

	if _, err := r.spendableCap(ctx, tx, collectionID, capID); err != nil {
		return nil, r.fail("batch_mint", err)
	}

	tokens := make([]*domain.Token, 0, n)
	for i := 0; i < n; i++ {
		tokens = append(tokens, &domain.Token{
			NFTID:        tx.NewObjectID(domain.KindToken),
			CollectionID: collectionID,
			Name:         names[i],
			Description:  descriptions[i],
			ImageURI:     imageURIs[i],
			Creator:      tx.Sender,
			Holder:       recipients[i],
			MintedAt:     tx.Timestamp,
		})
	}

	// The store reserves capacity and inserts as one unit. Same outcome as
	// aborting at the first over-capacity mint: nothing persists.
	if err := r.tokens.Mint(ctx, collectionID, tokens); err != nil {
		if errors.Is(err, storage.ErrSupplyExhausted) {
			err = ErrCapacityExceeded
		} else {
			err = fmt.Errorf("mint tokens: %w", err)
		}
		if r.metrics != nil {
			r.metrics.BatchMints.WithLabelValues("failed").Observe(float64(n))
		}
		return nil, r.fail("batch_mint", err)
	}

	for _, tok := range tokens {
		r.emit(ctx, domain.NewNFTMinted(tok, tx.TxID, tx.Timestamp))
	}
	if r.metrics != nil {
		r.metrics.BatchMints.WithLabelValues("ok").Observe(float64(n))
		r.metrics.TokensMinted.Add(float64(n))
	}
	return tokens, nil
}

// TransferNFT moves the token to recipient. Holding the token is the only
// authorization required.
func (r *Registry) TransferNFT(ctx context.Context, tx *ledger.TxContext, nftID string, recipient domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.observe("transfer_nft", time.Now())

	tok, err := r.tokens.GetByID(ctx, nftID)
	if err != nil {
		return r.fail("transfer_nft", fmt.Errorf("get token: %w", err))
	}
	if tok.Holder != tx.Sender {
		return r.fail("transfer_nft", ErrNotHolder)
	}

	if err := r.tokens.UpdateHolder(ctx, nftID, recipient); err != nil {
		return r.fail("transfer_nft", fmt.Errorf("update holder: %w", err))
	}
	if r.metrics != nil {
		r.metrics.TokensTransferred.Inc()
	}
	return nil
}

// BurnNFT destroys the token. Any current holder may burn; the collection's
// total_supply is NOT decremented and the token_id is never reused.
func (r *Registry) BurnNFT(ctx context.Context, tx *ledger.TxContext, nftID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.observe("burn_nft", time.Now())

	tok, err := r.tokens.GetByID(ctx, nftID)
	if err != nil {
		return r.fail("burn_nft", fmt.Errorf("get token: %w", err))
	}
	if tok.Holder != tx.Sender {
		return r.fail("burn_nft", ErrNotHolder)
	}

	if err := r.tokens.Delete(ctx, nftID); err != nil {
		return r.fail("burn_nft", fmt.Errorf("delete token: %w", err))
	}
	if r.metrics != nil {
		r.metrics.TokensBurned.Inc()
	}
	return nil
}

// UpdateNFTMetadata replaces the token's mutable metadata. Only the token's
// ORIGINAL CREATOR may update, regardless of who currently holds it.
func (r *Registry) UpdateNFTMetadata(ctx context.Context, tx *ledger.TxContext, nftID, newName, newDescription, newImageURI string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.observe("update_nft_metadata", time.Now())

	tok, err := r.tokens.GetByID(ctx, nftID)
	if err != nil {
		return r.fail("update_nft_metadata", fmt.Errorf("get token: %w", err))
	}
	if tok.Creator != tx.Sender {
		return r.fail("update_nft_metadata", ErrNotOwner)
	}

	if err := r.tokens.UpdateMetadata(ctx, nftID, newName, newDescription, newImageURI); err != nil {
		return r.fail("update_nft_metadata", fmt.Errorf("update metadata: %w", err))
	}
	if r.metrics != nil {
		r.metrics.MetadataUpdates.Inc()
	}
	return nil
}

// TransferMintCap moves the mint capability, and with it mint authority over
// its collection, to recipient.
func (r *Registry) TransferMintCap(ctx context.Context, tx *ledger.TxContext, capID string, recipient domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.observe("transfer_mint_cap", time.Now())

	mintCap, err := r.caps.GetByID(ctx, capID)
	if err != nil {
		return r.fail("transfer_mint_cap", fmt.Errorf("get mint cap: %w", err))
	}
	if mintCap.Holder != tx.Sender {
		return r.fail("transfer_mint_cap", ErrNotHolder)
	}

	if err := r.caps.UpdateHolder(ctx, capID, recipient); err != nil {
		return r.fail("transfer_mint_cap", fmt.Errorf("update holder: %w", err))
	}
	if r.metrics != nil {
		r.metrics.CapsTransferred.Inc()
	}
	return nil
}

// mintLocked performs a single mint. Caller must hold r.mu.
func (r *Registry) mintLocked(ctx context.Context, tx *ledger.TxContext, collectionID, capID, name, description, imageURI string, recipient domain.Address) (*domain.Token, error) {
	if _, err := r.spendableCap(ctx, tx, collectionID, capID); err != nil {
		return nil, err
	}

	tok := &domain.Token{
		NFTID:        tx.NewObjectID(domain.KindToken),
		CollectionID: collectionID,
		Name:         name,
		Description:  description,
		ImageURI:     imageURI,
		Creator:      tx.Sender,
		Holder:       recipient,
		MintedAt:     tx.Timestamp,
	}
	if err := r.tokens.Mint(ctx, collectionID, []*domain.Token{tok}); err != nil {
		if errors.Is(err, storage.ErrSupplyExhausted) {
			return nil, ErrCapacityExceeded
		}
		return nil, fmt.Errorf("mint token: %w", err)
	}

	r.emit(ctx, domain.NewNFTMinted(tok, tx.TxID, tx.Timestamp))
	return tok, nil
}

// spendableCap loads the capability and checks the sender may spend it
// against the given collection.
func (r *Registry) spendableCap(ctx context.Context, tx *ledger.TxContext, collectionID, capID string) (*domain.MintCap, error) {
	mintCap, err := r.caps.GetByID(ctx, capID)
	if err != nil {
		return nil, fmt.Errorf("get mint cap: %w", err)
	}
	if mintCap.Holder != tx.Sender {
		return nil, ErrNotHolder
	}
	if mintCap.CollectionID != collectionID {
		return nil, ErrCapabilityMismatch
	}
	return mintCap, nil
}

// emit delivers the event to the configured sink. The transition has already
// committed, so a sink failure is logged rather than surfaced.
func (r *Registry) emit(ctx context.Context, e *domain.Event) {
	if r.metrics != nil {
		r.metrics.EventsEmitted.WithLabelValues(e.EventType.String()).Inc()
	}
	if r.sink == nil {
		return
	}
	if err := r.sink.Emit(ctx, e); err != nil {
		if r.metrics != nil {
			r.metrics.EventSinkError.Inc()
		}
		if r.logger != nil {
			r.logger.Printf("event sink error for %s %s: %v", e.EventType, e.ObjectID, err)
		}
	}
}

func (r *Registry) fail(op string, err error) error {
	if r.metrics != nil {
		r.metrics.OperationErrors.WithLabelValues(op, errorKind(err)).Inc()
	}
	return err
}

func (r *Registry) observe(op string, start time.Time) {
	if r.metrics != nil {
		r.metrics.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}
