package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"tzar-nft-registry/internal/domain"
)

// ComputeObjectID computes a deterministic object id using SHA256.
// Formula: SHA256(kind|tx_id|alloc_index)
// Returns hex-encoded hash (64 characters).
//
// IDs are unique because tx_id is unique per transaction and alloc_index
// is unique per allocation within a transaction.
func ComputeObjectID(kind domain.ObjectKind, txID string, allocIndex int) string {
	data := fmt.Sprintf("%s|%s|%d", string(kind), txID, allocIndex)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
