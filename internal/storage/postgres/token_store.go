package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tzar-nft-registry/internal/domain"
	"tzar-nft-registry/internal/storage"
)

// TokenStore implements storage.TokenStore using PostgreSQL.
type TokenStore struct {
	pool *Pool
}

// NewTokenStore creates a new TokenStore.
func NewTokenStore(pool *Pool) *TokenStore {
	return &TokenStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TokenStore = (*TokenStore)(nil)

const insertTokenQuery = `
	INSERT INTO tokens (
		nft_id, collection_id, token_id, name, description, image_uri, creator, holder, minted_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

// Insert adds a new token. Returns ErrDuplicateKey if nft_id or
// (collection_id, token_id) exists.
func (s *TokenStore) Insert(ctx context.Context, t *domain.Token) error {
	if t == nil || t.NFTID == "" {
		return storage.ErrInvalidInput
	}

	_, err := s.pool.Exec(ctx, insertTokenQuery,
		t.NFTID,
		t.CollectionID,
		t.TokenID,
		t.Name,
		t.Description,
		t.ImageURI,
		t.Creator.String(),
		t.Holder.String(),
		t.MintedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

// InsertBulk adds multiple tokens atomically. Fails entire batch on any duplicate.
func (s *TokenStore) InsertBulk(ctx context.Context, tokens []*domain.Token) error {
	if len(tokens) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, t := range tokens {
		if t == nil || t.NFTID == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, insertTokenQuery,
			t.NFTID,
			t.CollectionID,
			t.TokenID,
			t.Name,
			t.Description,
			t.ImageURI,
			t.Creator.String(),
			t.Holder.String(),
			t.MintedAt,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert token in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Mint reserves supply and inserts the tokens in a single transaction, so a
// failed insert never leaves total_supply incremented without its tokens.
// Token IDs are assigned sequentially from the reserved range.
func (s *TokenStore) Mint(ctx context.Context, collectionID string, tokens []*domain.Token) error {
	if len(tokens) == 0 {
		return nil
	}
	for _, t := range tokens {
		if t == nil || t.NFTID == "" {
			return storage.ErrInvalidInput
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	n := int64(len(tokens))
	var newSupply int64
	err = tx.QueryRow(ctx, reserveSupplyQuery, collectionID, n).Scan(&newSupply)
	if err != nil {
		if isNotFoundError(err) {
			var exists bool
			q := `SELECT EXISTS (SELECT 1 FROM collections WHERE collection_id = $1)`
			if qErr := tx.QueryRow(ctx, q, collectionID).Scan(&exists); qErr != nil {
				return fmt.Errorf("check collection: %w", qErr)
			}
			if !exists {
				return storage.ErrNotFound
			}
			return storage.ErrSupplyExhausted
		}
		return fmt.Errorf("reserve supply: %w", err)
	}

	firstID := newSupply - n + 1
	for i, t := range tokens {
		t.TokenID = firstID + int64(i)
		_, err := tx.Exec(ctx, insertTokenQuery,
			t.NFTID,
			t.CollectionID,
			t.TokenID,
			t.Name,
			t.Description,
			t.ImageURI,
			t.Creator.String(),
			t.Holder.String(),
			t.MintedAt,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert minted token: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByID retrieves a token by its NFT ID. Returns ErrNotFound if not exists.
func (s *TokenStore) GetByID(ctx context.Context, nftID string) (*domain.Token, error) {
	query := selectTokenQuery + ` WHERE nft_id = $1`

	row := s.pool.QueryRow(ctx, query, nftID)
	t, err := scanToken(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get token by id: %w", err)
	}
	return t, nil
}

// GetByCollection retrieves all tokens of a collection, ordered by token_id ASC.
func (s *TokenStore) GetByCollection(ctx context.Context, collectionID string) ([]*domain.Token, error) {
	query := selectTokenQuery + ` WHERE collection_id = $1 ORDER BY token_id ASC`
	return s.queryTokens(ctx, query, collectionID)
}

// GetByHolder retrieves all tokens currently held by an address, ordered by minted_at ASC.
func (s *TokenStore) GetByHolder(ctx context.Context, holder domain.Address) ([]*domain.Token, error) {
	query := selectTokenQuery + ` WHERE holder = $1 ORDER BY minted_at ASC, nft_id ASC`
	return s.queryTokens(ctx, query, holder.String())
}

// UpdateMetadata replaces the mutable metadata fields.
func (s *TokenStore) UpdateMetadata(ctx context.Context, nftID, name, description, imageURI string) error {
	query := `UPDATE tokens SET name = $2, description = $3, image_uri = $4 WHERE nft_id = $1`

	tag, err := s.pool.Exec(ctx, query, nftID, name, description, imageURI)
	if err != nil {
		return fmt.Errorf("update token metadata: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// UpdateHolder moves the token to a new holder.
func (s *TokenStore) UpdateHolder(ctx context.Context, nftID string, holder domain.Address) error {
	query := `UPDATE tokens SET holder = $2 WHERE nft_id = $1`

	tag, err := s.pool.Exec(ctx, query, nftID, holder.String())
	if err != nil {
		return fmt.Errorf("update token holder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Delete removes the token record entirely.
func (s *TokenStore) Delete(ctx context.Context, nftID string) error {
	query := `DELETE FROM tokens WHERE nft_id = $1`

	tag, err := s.pool.Exec(ctx, query, nftID)
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

const selectTokenQuery = `
	SELECT nft_id, collection_id, token_id, name, description, image_uri, creator, holder, minted_at, created_at
	FROM tokens
`

func (s *TokenStore) queryTokens(ctx context.Context, query string, args ...any) ([]*domain.Token, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tokens: %w", err)
	}
	defer rows.Close()

	var result []*domain.Token
	for rows.Next() {
		t, err := scanToken(rows)
		if err != nil {
			return nil, fmt.Errorf("scan token: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tokens: %w", err)
	}
	return result, nil
}

// scanToken scans a single row into Token.
func scanToken(row pgx.Row) (*domain.Token, error) {
	var t domain.Token
	var creator, holder string

	err := row.Scan(
		&t.NFTID,
		&t.CollectionID,
		&t.TokenID,
		&t.Name,
		&t.Description,
		&t.ImageURI,
		&creator,
		&holder,
		&t.MintedAt,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Creator = domain.Address(creator)
	t.Holder = domain.Address(holder)
	return &t, nil
}
