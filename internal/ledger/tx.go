// Package ledger reifies the host-ledger primitives the registry depends on:
// transaction identity, sender identity, timestamps, and object id allocation.
package ledger

import (
	"time"

	"github.com/google/uuid"

	"tzar-nft-registry/internal/domain"
	"tzar-nft-registry/internal/idhash"
)

// TxContext carries the host-provided facts for one transaction: who submitted
// it, its unique id, and when it executed. Object ids minted within the
// transaction derive deterministically from the tx id and an allocation counter.
type TxContext struct {
	Sender    domain.Address
	TxID      string
	Timestamp int64 // ms

	allocIndex int
}

// NewTxContext starts a transaction context for sender.
func NewTxContext(sender domain.Address) *TxContext {
	return &TxContext{
		Sender:    sender,
		TxID:      uuid.NewString(),
		Timestamp: time.Now().UnixMilli(),
	}
}

// NewObjectID allocates the next object id of the given kind.
func (tx *TxContext) NewObjectID(kind domain.ObjectKind) string {
	id := idhash.ComputeObjectID(kind, tx.TxID, tx.allocIndex)
	tx.allocIndex++
	return id
}
