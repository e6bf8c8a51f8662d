package clvm

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Bytes32 is a 32-byte value: a tree hash, coin id, or puzzle hash.
type Bytes32 [32]byte

func (b Bytes32) String() string { return hex.EncodeToString(b[:]) }

// IsZero reports whether every byte of b is zero.
func (b Bytes32) IsZero() bool { return b == Bytes32{} }

// MarshalText encodes b as lowercase hex.
func (b Bytes32) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText accepts hex with an optional 0x prefix.
func (b *Bytes32) UnmarshalText(text []byte) error {
	v, err := ParseBytes32(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// ParseBytes32 parses 64 hex characters with an optional 0x prefix.
func ParseBytes32(s string) (Bytes32, error) {
	var out Bytes32
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return out, wrapError(KindParse, "CLVM-HEX-001", "invalid hex in bytes32", err)
	}
	if len(raw) != len(out) {
		return out, newError(KindParse, "CLVM-HEX-002", fmt.Sprintf("bytes32 must be 32 bytes, got %d", len(raw)))
	}
	copy(out[:], raw)
	return out, nil
}

// MustParseBytes32 is ParseBytes32 for compile-time constants.
func MustParseBytes32(s string) Bytes32 {
	b, err := ParseBytes32(s)
	if err != nil {
		panic(err)
	}
	return b
}
