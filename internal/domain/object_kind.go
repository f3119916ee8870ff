package domain

// ObjectKind distinguishes the record kinds that receive allocated object IDs.
type ObjectKind string

const (
	KindCollection ObjectKind = "COLLECTION"
	KindMintCap    ObjectKind = "MINT_CAP"
	KindToken      ObjectKind = "TOKEN"
)

// String returns the string representation of ObjectKind.
func (k ObjectKind) String() string {
	return string(k)
}

// IsValid checks if the kind is a valid value.
func (k ObjectKind) IsValid() bool {
	return k == KindCollection || k == KindMintCap || k == KindToken
}
