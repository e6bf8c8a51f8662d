package cidutil

import (
	"errors"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

func TestSumAndParse(t *testing.T) {
	data := []byte{0xff, 0x80, 0x80}
	id, err := Sum(data)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if String(data) != id.String() {
		t.Fatalf("String and Sum disagree")
	}
	back, err := Parse(id.String())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !back.Equals(id) {
		t.Fatalf("round trip mismatch: %s vs %s", back, id)
	}
	ok, err := Verify(id, data)
	if err != nil || !ok {
		t.Fatalf("Verify: ok=%v err=%v", ok, err)
	}
	ok, _ = Verify(id, []byte{0x80})
	if ok {
		t.Fatalf("Verify accepted different bytes")
	}
}

func TestParseRejectsOtherCIDs(t *testing.T) {
	sum, err := multihash.Sum([]byte("x"), multihash.SHA2_256, -1)
	if err != nil {
		t.Fatalf("multihash.Sum: %v", err)
	}
	v0 := cid.NewCidV0(sum)
	if _, err := Parse(v0.String()); !errors.Is(err, ErrUnsupportedCID) {
		t.Fatalf("expected ErrUnsupportedCID for CIDv0, got %v", err)
	}
	dagcbor := cid.NewCidV1(cid.DagCBOR, sum)
	if _, err := Parse(dagcbor.String()); !errors.Is(err, ErrUnsupportedCID) {
		t.Fatalf("expected ErrUnsupportedCID for dag-cbor, got %v", err)
	}
	if _, err := Parse("not a cid"); err == nil {
		t.Fatalf("expected decode error")
	}
}
