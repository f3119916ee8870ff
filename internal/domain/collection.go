package domain

// Collection represents an NFT collection record.
// Corresponds to the collections table in PostgreSQL.
type Collection struct {
	CollectionID string  // PRIMARY KEY, deterministic hash
	Name         string  // collection name
	Description  string  // collection description
	Creator      Address // address that created the collection
	TotalSupply  int64   // number of tokens minted so far; never decremented
	MaxSupply    int64   // fixed cap; TotalSupply <= MaxSupply always holds
	CreatedAt    int64   // record creation timestamp (ms)
}

// CollectionInfo is the full read projection of a collection.
type CollectionInfo struct {
	Name        string
	Description string
	Creator     Address
	TotalSupply int64
	MaxSupply   int64
}

// Info returns the read projection for c.
func (c *Collection) Info() CollectionInfo {
	return CollectionInfo{
		Name:        c.Name,
		Description: c.Description,
		Creator:     c.Creator,
		TotalSupply: c.TotalSupply,
		MaxSupply:   c.MaxSupply,
	}
}

// Remaining returns the number of tokens that can still be minted.
func (c *Collection) Remaining() int64 {
	return c.MaxSupply - c.TotalSupply
}
