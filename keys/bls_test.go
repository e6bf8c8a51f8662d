package keys

import (
	"bytes"
	"testing"

	"xdao.co/spendclass/clvm"
)

func TestParsePublicKey_Generator(t *testing.T) {
	g := GeneratorPublicKey()
	got, err := ParsePublicKey(g[:])
	if err != nil {
		t.Fatalf("ParsePublicKey(generator): %v", err)
	}
	if got != g {
		t.Fatalf("key changed during parse")
	}
}

func TestParsePublicKey_Rejects(t *testing.T) {
	if _, err := ParsePublicKey(make([]byte, 47)); err == nil {
		t.Fatalf("expected length error")
	}
	bad := invalidPoint()
	if _, err := ParsePublicKey(bad); err == nil {
		t.Fatalf("expected point validation error")
	}
}

func TestScalarPublicKey_Distinct(t *testing.T) {
	if ScalarPublicKey(1) != GeneratorPublicKey() {
		t.Fatalf("1·G must equal the generator")
	}
	if ScalarPublicKey(2) == ScalarPublicKey(3) {
		t.Fatalf("distinct scalars produced the same key")
	}
	k := ScalarPublicKey(7)
	if _, err := ParsePublicKey(k[:]); err != nil {
		t.Fatalf("ScalarPublicKey output does not parse: %v", err)
	}
}

func TestDecodePublicKey(t *testing.T) {
	a := clvm.NewAllocator()
	k := ScalarPublicKey(5)
	got, err := DecodePublicKey(a, k.Encode(a))
	if err != nil {
		t.Fatalf("DecodePublicKey: %v", err)
	}
	if got != k {
		t.Fatalf("decoded key mismatch")
	}
	_, err = DecodePublicKey(a, a.NewAtom(invalidPoint()))
	if clvm.RuleID(err) != "KEYS-BLS-001" || !clvm.IsKind(err, clvm.KindDecode) {
		t.Fatalf("expected KEYS-BLS-001 decode error, got %v", err)
	}
}

// invalidPoint is a compressed encoding whose x coordinate exceeds the field modulus.
func invalidPoint() []byte {
	b := bytes.Repeat([]byte{0xff}, PublicKeySize)
	b[0] = 0x9f
	return b
}
