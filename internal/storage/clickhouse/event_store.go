package clickhouse

import (
	"context"
	"fmt"

	"tzar-nft-registry/internal/domain"
	"tzar-nft-registry/internal/storage"
)

// EventStore implements storage.EventStore using ClickHouse. The nft_events
// table is the indexer-facing sink for emitted registry events; MergeTree
// keeps it append-only and cheap to scan by time.
type EventStore struct {
	conn *Conn
}

// NewEventStore creates a new EventStore.
func NewEventStore(conn *Conn) *EventStore {
	return &EventStore{conn: conn}
}

// Compile-time interface check.
var _ storage.EventStore = (*EventStore)(nil)

const insertEventQuery = `
	INSERT INTO nft_events (
		event_type, object_id, creator, name, token_id, max_supply, tx_id, emitted_at
	)
`

// Append adds an emitted event to the log.
func (s *EventStore) Append(ctx context.Context, e *domain.Event) error {
	if e == nil || e.ObjectID == "" {
		return storage.ErrInvalidInput
	}

	batch, err := s.conn.PrepareBatch(ctx, insertEventQuery)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	// Pass nil values directly for Nullable columns
	err = batch.Append(
		string(e.EventType),
		e.ObjectID,
		e.Creator.String(),
		e.Name,
		toNullableUint64(e.TokenID),
		toNullableUint64(e.MaxSupply),
		e.TxID,
		uint64(e.EmittedAt),
	)
	if err != nil {
		return fmt.Errorf("append to batch: %w", err)
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetByObjectID retrieves all events for an object, ordered by emitted_at ASC.
func (s *EventStore) GetByObjectID(ctx context.Context, objectID string) ([]*domain.Event, error) {
	query := selectEventQuery + ` WHERE object_id = ? ORDER BY emitted_at ASC`
	return s.queryEvents(ctx, query, objectID)
}

// GetByTimeRange retrieves events emitted within [start, end] (inclusive).
func (s *EventStore) GetByTimeRange(ctx context.Context, start, end int64) ([]*domain.Event, error) {
	query := selectEventQuery + ` WHERE emitted_at >= ? AND emitted_at <= ? ORDER BY emitted_at ASC`
	return s.queryEvents(ctx, query, uint64(start), uint64(end))
}

const selectEventQuery = `
	SELECT event_type, object_id, creator, name, token_id, max_supply, tx_id, emitted_at
	FROM nft_events
`

func (s *EventStore) queryEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var result []*domain.Event
	for rows.Next() {
		var (
			eventType, objectID, creator, name, txID string

			tokenID   *uint64
			maxSupply *uint64
			emittedAt uint64
		)
		err := rows.Scan(&eventType, &objectID, &creator, &name, &tokenID, &maxSupply, &txID, &emittedAt)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}

		result = append(result, &domain.Event{
			EventType: domain.EventType(eventType),
			ObjectID:  objectID,
			Creator:   domain.Address(creator),
			Name:      name,
			TokenID:   fromNullableUint64(tokenID),
			MaxSupply: fromNullableUint64(maxSupply),
			TxID:      txID,
			EmittedAt: int64(emittedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return result, nil
}

func toNullableUint64(v *int64) *uint64 {
	if v == nil {
		return nil
	}
	u := uint64(*v)
	return &u
}

func fromNullableUint64(v *uint64) *int64 {
	if v == nil {
		return nil
	}
	i := int64(*v)
	return &i
}
