package registry

import "errors"

// Transition errors surfaced to callers. Every failure aborts the whole
// operation; there is no partial commit.
var (
	// ErrCapacityExceeded is returned when a mint would push total_supply
	// past max_supply.
	ErrCapacityExceeded = errors.New("capacity exceeded: collection is at max supply")

	// ErrLengthMismatch is returned when batch mint input arrays differ in length.
	ErrLengthMismatch = errors.New("length mismatch: batch arrays must be equal length")

	// ErrNotOwner is returned when metadata update is attempted by anyone
	// other than the token's original creator.
	ErrNotOwner = errors.New("not owner: only the original creator may update metadata")

	// ErrNotHolder is returned when an operation requires possession of the
	// object (token or mint capability) and the caller does not hold it.
	ErrNotHolder = errors.New("not holder: caller does not hold this object")

	// ErrCapabilityMismatch is returned when a mint capability does not
	// reference the collection it is being used against.
	ErrCapabilityMismatch = errors.New("capability mismatch: mint cap references a different collection")
)

// errorKind maps a transition error to a stable label for metrics.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrLengthMismatch):
		return "length_mismatch"
	case errors.Is(err, ErrNotOwner):
		return "not_owner"
	case errors.Is(err, ErrNotHolder):
		return "not_holder"
	case errors.Is(err, ErrCapabilityMismatch):
		return "capability_mismatch"
	default:
		return "internal"
	}
}
