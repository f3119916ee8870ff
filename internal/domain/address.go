package domain

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// Address is a base58-encoded 32-byte wallet address (an ed25519 public key).
type Address string

// addressByteLen is the decoded length of every valid address.
const addressByteLen = 32

// ErrInvalidAddress is returned when an address fails to decode.
var ErrInvalidAddress = errors.New("invalid address")

// ParseAddress validates s as a base58 32-byte address lying on the
// edwards25519 curve.
func ParseAddress(s string) (Address, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(raw) != addressByteLen {
		return "", fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidAddress, addressByteLen, len(raw))
	}
	if _, err := new(edwards25519.Point).SetBytes(raw); err != nil {
		return "", fmt.Errorf("%w: not a curve point", ErrInvalidAddress)
	}
	return Address(s), nil
}

// String returns the base58 representation.
func (a Address) String() string {
	return string(a)
}

// IsZero reports whether the address is unset.
func (a Address) IsZero() bool {
	return a == ""
}

// OnCurve reports whether the address decodes to a valid edwards25519 point.
// Wallet addresses derived from ed25519 keypairs are always on-curve.
func (a Address) OnCurve() bool {
	raw, err := base58.Decode(string(a))
	if err != nil || len(raw) != addressByteLen {
		return false
	}
	_, err = new(edwards25519.Point).SetBytes(raw)
	return err == nil
}

// GenerateAddress creates a fresh ed25519 keypair and returns the public key
// as an Address together with the private key.
func GenerateAddress() (Address, ed25519.PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", nil, fmt.Errorf("generate keypair: %w", err)
	}
	return Address(base58.Encode(pub)), priv, nil
}
