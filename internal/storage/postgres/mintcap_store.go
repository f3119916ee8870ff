package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tzar-nft-registry/internal/domain"
	"tzar-nft-registry/internal/storage"
)

// MintCapStore implements storage.MintCapStore using PostgreSQL.
type MintCapStore struct {
	pool *Pool
}

// NewMintCapStore creates a new MintCapStore.
func NewMintCapStore(pool *Pool) *MintCapStore {
	return &MintCapStore{pool: pool}
}

// Compile-time interface check.
var _ storage.MintCapStore = (*MintCapStore)(nil)

// Insert adds a new mint capability. Returns ErrDuplicateKey if cap_id exists.
func (s *MintCapStore) Insert(ctx context.Context, mc *domain.MintCap) error {
	if mc == nil || mc.CapID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO mint_caps (cap_id, collection_id, holder, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.pool.Exec(ctx, query,
		mc.CapID,
		mc.CollectionID,
		mc.Holder.String(),
		mc.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert mint cap: %w", err)
	}
	return nil
}

// GetByID retrieves a capability by its ID. Returns ErrNotFound if not exists.
func (s *MintCapStore) GetByID(ctx context.Context, capID string) (*domain.MintCap, error) {
	query := `
		SELECT cap_id, collection_id, holder, created_at
		FROM mint_caps
		WHERE cap_id = $1
	`

	row := s.pool.QueryRow(ctx, query, capID)
	mc, err := scanMintCap(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get mint cap by id: %w", err)
	}
	return mc, nil
}

// UpdateHolder moves the capability to a new holder.
func (s *MintCapStore) UpdateHolder(ctx context.Context, capID string, holder domain.Address) error {
	query := `UPDATE mint_caps SET holder = $2 WHERE cap_id = $1`

	tag, err := s.pool.Exec(ctx, query, capID, holder.String())
	if err != nil {
		return fmt.Errorf("update mint cap holder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// scanMintCap scans a single row into MintCap.
func scanMintCap(row pgx.Row) (*domain.MintCap, error) {
	var mc domain.MintCap
	var holder string

	err := row.Scan(
		&mc.CapID,
		&mc.CollectionID,
		&holder,
		&mc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	mc.Holder = domain.Address(holder)
	return &mc, nil
}
