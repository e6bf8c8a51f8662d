package clvm

import (
	"fmt"
	"math"
	"unicode/utf8"
)

func expectAtom(a *Allocator, n NodePtr) ([]byte, error) {
	b, ok := a.Atom(n)
	if !ok {
		return nil, newError(KindDecode, "CLVM-DEC-001", "expected an atom, got a pair")
	}
	return b, nil
}

// DecodeBytes returns a copy of an atom's bytes.
func DecodeBytes(a *Allocator, n NodePtr) ([]byte, error) {
	b, err := expectAtom(a, n)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// DecodeString returns an atom's bytes as a string. The bytes must be valid UTF-8.
func DecodeString(a *Allocator, n NodePtr) (string, error) {
	b, err := expectAtom(a, n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", newError(KindDecode, "CLVM-DEC-008", "atom is not valid UTF-8")
	}
	return string(b), nil
}

// DecodeBytes32 requires an atom of exactly 32 bytes.
func DecodeBytes32(a *Allocator, n NodePtr) (Bytes32, error) {
	var out Bytes32
	b, err := expectAtom(a, n)
	if err != nil {
		return out, err
	}
	if len(b) != len(out) {
		return out, newError(KindDecode, "CLVM-DEC-003", fmt.Sprintf("expected 32 bytes, got %d", len(b)))
	}
	copy(out[:], b)
	return out, nil
}

// DecodeUint64 decodes a non-negative two's complement integer atom.
func DecodeUint64(a *Allocator, n NodePtr) (uint64, error) {
	b, err := expectAtom(a, n)
	if err != nil {
		return 0, err
	}
	if len(b) > 0 && b[0]&0x80 != 0 {
		return 0, newError(KindDecode, "CLVM-DEC-004", "expected a non-negative integer")
	}
	for len(b) > 1 && b[0] == 0 {
		b = b[1:]
	}
	if len(b) > 8 {
		return 0, newError(KindDecode, "CLVM-DEC-005", "integer overflows 64 bits")
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v, nil
}

// DecodeUint16 decodes a non-negative integer no larger than 65535.
func DecodeUint16(a *Allocator, n NodePtr) (uint16, error) {
	v, err := DecodeUint64(a, n)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint16 {
		return 0, newError(KindDecode, "CLVM-DEC-005", "integer overflows 16 bits")
	}
	return uint16(v), nil
}

// DecodeInt64 decodes a signed two's complement integer atom.
func DecodeInt64(a *Allocator, n NodePtr) (int64, error) {
	b, err := expectAtom(a, n)
	if err != nil {
		return 0, err
	}
	if len(b) == 0 {
		return 0, nil
	}
	neg := b[0]&0x80 != 0
	for len(b) > 1 && ((b[0] == 0x00 && b[1]&0x80 == 0) || (b[0] == 0xff && b[1]&0x80 != 0)) {
		b = b[1:]
	}
	if len(b) > 8 {
		return 0, newError(KindDecode, "CLVM-DEC-005", "integer overflows 64 bits")
	}
	var v uint64
	if neg {
		v = math.MaxUint64
	}
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return int64(v), nil
}

// DecodeList returns the items of a nil-terminated list.
func DecodeList(a *Allocator, n NodePtr) ([]NodePtr, error) {
	var items []NodePtr
	cur := n
	for {
		first, rest, ok := a.Pair(cur)
		if !ok {
			break
		}
		items = append(items, first)
		cur = rest
	}
	if !a.IsNil(cur) {
		return nil, newError(KindDecode, "CLVM-DEC-006", "list is not nil-terminated")
	}
	return items, nil
}

// DecodeListN returns the items of a nil-terminated list of exactly n items.
func DecodeListN(a *Allocator, list NodePtr, n int) ([]NodePtr, error) {
	return properList(a, list, n)
}

// DecodeOption decodes n with dec unless n is nil, in which case it returns nil.
func DecodeOption[T any](a *Allocator, n NodePtr, dec func(*Allocator, NodePtr) (T, error)) (*T, error) {
	if a.IsNil(n) {
		return nil, nil
	}
	v, err := dec(a, n)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
