package domain

// Token represents a single NFT.
// Corresponds to the tokens table in PostgreSQL.
type Token struct {
	NFTID        string  // PRIMARY KEY, deterministic hash
	CollectionID string  // FK to collections
	TokenID      int64   // sequential 1-based id within the collection, never reused
	Name         string  // token name
	Description  string  // token description
	ImageURI     string  // token image URI
	Creator      Address // original minter; immutable, gates metadata updates
	Holder       Address // current owner
	MintedAt     int64   // mint timestamp (ms)
	CreatedAt    int64   // record creation timestamp (ms)
}

// MintCap is the capability that authorizes minting into one collection.
// Possession is the authorization: whoever holds the cap may mint.
type MintCap struct {
	CapID        string  // PRIMARY KEY, deterministic hash
	CollectionID string  // collection this cap mints into
	Holder       Address // current holder of the capability
	CreatedAt    int64   // record creation timestamp (ms)
}
