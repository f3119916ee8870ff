// Package events routes emitted registry events to external observers.
package events

import (
	"context"
	"errors"

	"tzar-nft-registry/internal/domain"
	"tzar-nft-registry/internal/storage"
)

// Sink receives events emitted on successful state transitions.
// Delivery is at-least-once per successful call.
type Sink interface {
	Emit(ctx context.Context, e *domain.Event) error
}

// Fanout emits each event to every sink. All sinks are attempted even when
// some fail; the joined error is returned so the caller can log it.
type Fanout struct {
	sinks []Sink
}

// NewFanout creates a fan-out over the given sinks.
func NewFanout(sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks}
}

// Emit delivers e to every sink.
func (f *Fanout) Emit(ctx context.Context, e *domain.Event) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Emit(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// StoreSink adapts a storage.EventStore into a Sink.
type StoreSink struct {
	store storage.EventStore
}

// NewStoreSink creates a sink that appends events to store.
func NewStoreSink(store storage.EventStore) *StoreSink {
	return &StoreSink{store: store}
}

// Emit appends e to the underlying event store.
func (s *StoreSink) Emit(ctx context.Context, e *domain.Event) error {
	return s.store.Append(ctx, e)
}

// Verify interface compliance at compile time.
var (
	_ Sink = (*Fanout)(nil)
	_ Sink = (*StoreSink)(nil)
)
