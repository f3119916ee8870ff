package storage

import "errors"

// Storage errors shared by all store implementations.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when attempting to insert a record
	// with a key that already exists.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSupplyExhausted is returned by ReserveSupply when the requested
	// reservation would push total_supply past max_supply.
	ErrSupplyExhausted = errors.New("supply exhausted: reservation exceeds max supply")
)
