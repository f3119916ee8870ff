package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tzar-nft-registry/internal/domain"
	"tzar-nft-registry/internal/storage"
)

// CollectionStore implements storage.CollectionStore using PostgreSQL.
type CollectionStore struct {
	pool *Pool
}

// NewCollectionStore creates a new CollectionStore.
func NewCollectionStore(pool *Pool) *CollectionStore {
	return &CollectionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CollectionStore = (*CollectionStore)(nil)

// Insert adds a new collection. Returns ErrDuplicateKey if collection_id exists.
func (s *CollectionStore) Insert(ctx context.Context, c *domain.Collection) error {
	if c == nil || c.CollectionID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO collections (
			collection_id, name, description, creator, total_supply, max_supply, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.pool.Exec(ctx, query,
		c.CollectionID,
		c.Name,
		c.Description,
		c.Creator.String(),
		c.TotalSupply,
		c.MaxSupply,
		c.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert collection: %w", err)
	}
	return nil
}

// GetByID retrieves a collection by its ID. Returns ErrNotFound if not exists.
func (s *CollectionStore) GetByID(ctx context.Context, collectionID string) (*domain.Collection, error) {
	query := `
		SELECT collection_id, name, description, creator, total_supply, max_supply, created_at
		FROM collections
		WHERE collection_id = $1
	`

	row := s.pool.QueryRow(ctx, query, collectionID)
	c, err := scanCollection(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get collection by id: %w", err)
	}
	return c, nil
}

// GetByCreator retrieves all collections created by an address, ordered by created_at ASC.
func (s *CollectionStore) GetByCreator(ctx context.Context, creator domain.Address) ([]*domain.Collection, error) {
	query := `
		SELECT collection_id, name, description, creator, total_supply, max_supply, created_at
		FROM collections
		WHERE creator = $1
		ORDER BY created_at ASC, collection_id ASC
	`

	rows, err := s.pool.Query(ctx, query, creator.String())
	if err != nil {
		return nil, fmt.Errorf("get collections by creator: %w", err)
	}
	defer rows.Close()

	var result []*domain.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collections: %w", err)
	}
	return result, nil
}

// reserveSupplyQuery conditionally bumps total_supply; zero rows means the
// collection is missing or out of capacity. Shared with TokenStore.Mint,
// which runs it inside the mint transaction.
const reserveSupplyQuery = `
	UPDATE collections
	SET total_supply = total_supply + $2
	WHERE collection_id = $1 AND total_supply + $2 <= max_supply
	RETURNING total_supply
`

// ReserveSupply atomically increments total_supply by n when the result stays
// within max_supply. The conditional UPDATE serializes concurrent mints even
// across processes.
func (s *CollectionStore) ReserveSupply(ctx context.Context, collectionID string, n int64) (int64, error) {
	if n < 0 {
		return 0, storage.ErrInvalidInput
	}

	var newSupply int64
	err := s.pool.QueryRow(ctx, reserveSupplyQuery, collectionID, n).Scan(&newSupply)
	if err != nil {
		if isNotFoundError(err) {
			// No row matched: missing collection or exhausted capacity.
			if _, getErr := s.GetByID(ctx, collectionID); getErr != nil {
				return 0, getErr
			}
			return 0, storage.ErrSupplyExhausted
		}
		return 0, fmt.Errorf("reserve supply: %w", err)
	}
	return newSupply, nil
}

// scanCollection scans a single row into Collection.
func scanCollection(row pgx.Row) (*domain.Collection, error) {
	var c domain.Collection
	var creator string

	err := row.Scan(
		&c.CollectionID,
		&c.Name,
		&c.Description,
		&creator,
		&c.TotalSupply,
		&c.MaxSupply,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Creator = domain.Address(creator)
	return &c, nil
}
