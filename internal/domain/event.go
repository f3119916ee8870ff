package domain

// EventType identifies the kind of an emitted registry event.
type EventType string

const (
	EventCollectionCreated EventType = "COLLECTION_CREATED"
	EventNFTMinted         EventType = "NFT_MINTED"
)

// String returns the string representation of EventType.
func (t EventType) String() string {
	return string(t)
}

// Event is the append-only notification emitted on successful state
// transitions. It is not part of queryable registry state; it exists for
// external observers (indexers, UIs). JSON tags define the feed wire shape.
type Event struct {
	EventType EventType `json:"event_type"`
	ObjectID  string    `json:"object_id"` // collection id or nft id
	Creator   Address   `json:"creator"`
	Name      string    `json:"name"`
	TokenID   *int64    `json:"token_id,omitempty"`   // NFT_MINTED only
	MaxSupply *int64    `json:"max_supply,omitempty"` // COLLECTION_CREATED only
	TxID      string    `json:"tx_id"`
	EmittedAt int64     `json:"emitted_at"` // ms
}

// NewCollectionCreated builds the CollectionCreated event for c.
func NewCollectionCreated(c *Collection, txID string, emittedAt int64) *Event {
	maxSupply := c.MaxSupply
	return &Event{
		EventType: EventCollectionCreated,
		ObjectID:  c.CollectionID,
		Creator:   c.Creator,
		Name:      c.Name,
		MaxSupply: &maxSupply,
		TxID:      txID,
		EmittedAt: emittedAt,
	}
}

// NewNFTMinted builds the NFTMinted event for t.
func NewNFTMinted(t *Token, txID string, emittedAt int64) *Event {
	tokenID := t.TokenID
	return &Event{
		EventType: EventNFTMinted,
		ObjectID:  t.NFTID,
		Creator:   t.Creator,
		Name:      t.Name,
		TokenID:   &tokenID,
		TxID:      txID,
		EmittedAt: emittedAt,
	}
}
