package keys

import (
	"encoding/hex"
	"fmt"

	"github.com/cloudflare/circl/ecc/bls12381"

	"xdao.co/spendclass/clvm"
)

// PublicKeySize is the length of a compressed G1 point.
const PublicKeySize = 48

// PublicKey is a compressed BLS12-381 G1 point, as curried into standard puzzles.
type PublicKey [PublicKeySize]byte

func (k PublicKey) String() string { return hex.EncodeToString(k[:]) }

// MarshalText encodes k as lowercase hex.
func (k PublicKey) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// ParsePublicKey validates b as a compressed point of G1.
func ParsePublicKey(b []byte) (PublicKey, error) {
	var out PublicKey
	if len(b) != PublicKeySize {
		return out, fmt.Errorf("public key must be %d bytes, got %d", PublicKeySize, len(b))
	}
	var p bls12381.G1
	if err := p.SetBytes(b); err != nil {
		return out, fmt.Errorf("public key is not a G1 point: %w", err)
	}
	copy(out[:], b)
	return out, nil
}

// DecodePublicKey is the CLVM field decoder for PublicKey.
func DecodePublicKey(a *clvm.Allocator, n clvm.NodePtr) (PublicKey, error) {
	b, err := clvm.DecodeBytes(a, n)
	if err != nil {
		return PublicKey{}, err
	}
	k, err := ParsePublicKey(b)
	if err != nil {
		return PublicKey{}, &clvm.Error{Kind: clvm.KindDecode, RuleID: "KEYS-BLS-001", Message: err.Error(), Cause: err}
	}
	return k, nil
}

// Encode returns k as a CLVM atom.
func (k PublicKey) Encode(a *clvm.Allocator) clvm.NodePtr {
	return a.NewAtom(k[:])
}

// GeneratorPublicKey returns the G1 generator.
func GeneratorPublicKey() PublicKey {
	var out PublicKey
	copy(out[:], bls12381.G1Generator().BytesCompressed())
	return out
}

// ScalarPublicKey returns k·G for a small scalar k.
func ScalarPublicKey(k uint64) PublicKey {
	var s bls12381.Scalar
	s.SetUint64(k)
	var p bls12381.G1
	p.ScalarMult(&s, bls12381.G1Generator())
	var out PublicKey
	copy(out[:], p.BytesCompressed())
	return out
}
