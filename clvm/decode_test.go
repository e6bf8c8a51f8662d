package clvm

import (
	"encoding/hex"
	"math"
	"testing"
)

func TestIntegers_RoundTrip(t *testing.T) {
	a := NewAllocator()
	for _, v := range []int64{0, 1, -1, 127, 128, -128, -129, 255, 256, math.MaxInt64, math.MinInt64} {
		got, err := DecodeInt64(a, a.NewInt(v))
		if err != nil {
			t.Fatalf("DecodeInt64(%d): %v", v, err)
		}
		if got != v {
			t.Fatalf("int round trip: got %d want %d", got, v)
		}
	}
	for _, v := range []uint64{0, 1, 127, 128, 1 << 32, math.MaxUint64} {
		got, err := DecodeUint64(a, a.NewUint(v))
		if err != nil {
			t.Fatalf("DecodeUint64(%d): %v", v, err)
		}
		if got != v {
			t.Fatalf("uint round trip: got %d want %d", got, v)
		}
	}
}

func TestIntegers_MinimalEncoding(t *testing.T) {
	a := NewAllocator()
	cases := []struct {
		n    NodePtr
		want string
	}{
		{a.NewInt(0), ""},
		{a.NewInt(-1), "ff"},
		{a.NewInt(128), "0080"},
		{a.NewInt(-129), "ff7f"},
		{a.NewUint(math.MaxUint64), "00ffffffffffffffff"},
	}
	for _, tc := range cases {
		b, _ := a.Atom(tc.n)
		if got := hex.EncodeToString(b); got != tc.want {
			t.Fatalf("encoding: got %q want %q", got, tc.want)
		}
	}
}

func TestDecode_Errors(t *testing.T) {
	a := NewAllocator()
	pair := a.NewPair(a.Nil(), a.Nil())

	if _, err := DecodeUint64(a, a.NewInt(-1)); RuleID(err) != "CLVM-DEC-004" {
		t.Fatalf("negative: got %v", err)
	}
	if _, err := DecodeUint64(a, a.NewAtom(make([]byte, 10))); err != nil {
		t.Fatalf("leading zeros are not an overflow: %v", err)
	}
	if _, err := DecodeUint64(a, a.NewAtom(append([]byte{0x01}, make([]byte, 8)...))); RuleID(err) != "CLVM-DEC-005" {
		t.Fatalf("overflow: got %v", err)
	}
	if _, err := DecodeUint16(a, a.NewUint(70000)); RuleID(err) != "CLVM-DEC-005" {
		t.Fatalf("u16 overflow: got %v", err)
	}
	if _, err := DecodeBytes32(a, a.NewAtom([]byte("short"))); RuleID(err) != "CLVM-DEC-003" {
		t.Fatalf("bytes32 length: got %v", err)
	}
	if _, err := DecodeBytes(a, pair); RuleID(err) != "CLVM-DEC-001" {
		t.Fatalf("atom expected: got %v", err)
	}
	if _, err := DecodeList(a, a.NewPair(a.One(), a.One())); RuleID(err) != "CLVM-DEC-006" {
		t.Fatalf("improper list: got %v", err)
	}
	if _, err := DecodeListN(a, a.NewList(a.One()), 2); RuleID(err) != "CLVM-DEC-007" {
		t.Fatalf("list length: got %v", err)
	}
}

func TestDecodeOption(t *testing.T) {
	a := NewAllocator()
	got, err := DecodeOption(a, a.Nil(), DecodeUint64)
	if err != nil || got != nil {
		t.Fatalf("nil option: got %v, %v", got, err)
	}
	got, err = DecodeOption(a, a.NewUint(42), DecodeUint64)
	if err != nil || got == nil || *got != 42 {
		t.Fatalf("some option: got %v, %v", got, err)
	}
}

func TestWithField_PreservesRuleID(t *testing.T) {
	a := NewAllocator()
	_, err := DecodeBytes32(a, a.Nil())
	err = WithField("launcher_id", err)
	if RuleID(err) != "CLVM-DEC-003" || !IsKind(err, KindDecode) {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := err.Error(); got != "launcher_id: expected 32 bytes, got 0" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestDecodeString_RejectsInvalidUTF8(t *testing.T) {
	a := NewAllocator()
	got, err := DecodeString(a, a.NewAtom([]byte("ipfs://héllo")))
	if err != nil || got != "ipfs://héllo" {
		t.Fatalf("DecodeString: got %q, %v", got, err)
	}
	if _, err := DecodeString(a, a.NewAtom([]byte{'h', 0xff, 0xfe})); RuleID(err) != "CLVM-DEC-008" {
		t.Fatalf("expected CLVM-DEC-008, got %v", err)
	}
}
