package puzzles

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"xdao.co/spendclass/clvm"
	"xdao.co/spendclass/keys"
)

func b32(c byte) clvm.Bytes32 {
	var out clvm.Bytes32
	for i := range out {
		out[i] = c
	}
	return out
}

func TestStandardPuzzle_RoundTrip(t *testing.T) {
	a := clvm.NewAllocator()
	mod := a.NewAtom([]byte("standard mod"))
	want := StandardArgs{SyntheticKey: keys.ScalarPublicKey(3)}

	got, err := DecodeStandardPuzzle(a, CurryStandard(a, mod, want))
	if err != nil {
		t.Fatalf("DecodeStandardPuzzle: %v", err)
	}
	if diff := cmp.Diff(want, got.Args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
	if clvm.TreeHash(a, got.Program) != clvm.TreeHash(a, mod) {
		t.Fatalf("template mismatch")
	}
}

func TestStandardSolution_OptionalKey(t *testing.T) {
	a := clvm.NewAllocator()
	pk := keys.ScalarPublicKey(9)
	for _, want := range []StandardSolution{
		{DelegatedPuzzle: a.NewAtom([]byte("dp")), Solution: a.Nil()},
		{OriginalPublicKey: &pk, DelegatedPuzzle: a.One(), Solution: a.NewList(a.NewUint(1))},
	} {
		got, err := DecodeStandardSolution(a, want.Encode(a))
		if err != nil {
			t.Fatalf("DecodeStandardSolution: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("solution mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestCAT_RoundTrip(t *testing.T) {
	a := clvm.NewAllocator()
	mod := a.NewAtom([]byte("cat mod"))
	args := CATArgs[clvm.NodePtr]{ModHash: b32(1), TailProgramHash: b32(2), InnerPuzzle: a.NewAtom([]byte("inner"))}

	got, err := CATPuzzleOf(Raw)(a, CurryCAT(a, mod, args))
	if err != nil {
		t.Fatalf("CATPuzzleOf: %v", err)
	}
	if diff := cmp.Diff(args, got.Args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}

	lp := LineageProof{ParentParentCoinID: b32(3), ParentInnerPuzzleHash: b32(4), ParentAmount: 1000}
	sol := CATSolution{
		InnerSolution: a.NewList(a.NewUint(5)),
		LineageProof:  &lp,
		PrevCoinID:    b32(5),
		ThisCoin:      Coin{ParentCoinInfo: b32(6), PuzzleHash: b32(7), Amount: 1000},
		NextCoinProof: CoinProof{ParentCoinInfo: b32(8), InnerPuzzleHash: b32(9), Amount: 1000},
		PrevSubtotal:  -250,
		ExtraDelta:    0,
	}
	gotSol, err := DecodeCATSolution(a, sol.Encode(a))
	if err != nil {
		t.Fatalf("DecodeCATSolution: %v", err)
	}
	if diff := cmp.Diff(sol, gotSol); diff != "" {
		t.Fatalf("solution mismatch (-want +got):\n%s", diff)
	}
}

func TestCAT_FieldErrorNamesField(t *testing.T) {
	a := clvm.NewAllocator()
	bad := clvm.Curry(a, a.Nil(), a.NewAtom([]byte("short")), a.NewAtom(make([]byte, 32)), a.Nil())
	_, err := CATPuzzleOf(Raw)(a, bad)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.HasPrefix(err.Error(), "mod_hash: ") {
		t.Fatalf("error does not name the field: %v", err)
	}
	if clvm.RuleID(err) != "CLVM-DEC-003" {
		t.Fatalf("unexpected RuleID: %s", clvm.RuleID(err))
	}
}

func TestProof_Forms(t *testing.T) {
	a := clvm.NewAllocator()
	lineage := Proof{Lineage: &LineageProof{ParentParentCoinID: b32(1), ParentInnerPuzzleHash: b32(2), ParentAmount: 1}}
	eve := Proof{Eve: &EveProof{ParentCoinInfo: b32(3), Amount: 1}}
	for _, want := range []Proof{lineage, eve} {
		got, err := DecodeProof(a, want.Encode(a))
		if err != nil {
			t.Fatalf("DecodeProof: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("proof mismatch (-want +got):\n%s", diff)
		}
	}
	if _, err := DecodeProof(a, a.NewList(a.One())); clvm.RuleID(err) != "PUZ-PROOF-001" {
		t.Fatalf("expected PUZ-PROOF-001, got %v", err)
	}
}

func TestNFT_LayeredComposition(t *testing.T) {
	a := clvm.NewAllocator()
	owner := b32(0x0a)
	dataHash := b32(0x0b)
	st := NewSingletonStruct(b32(0x01))

	transfer := TransferProgram{
		Program: a.NewAtom([]byte("royalty mod")),
		Args:    RoyaltyTransferArgs{SingletonStruct: st, RoyaltyPuzzleHash: b32(0x0c), TradePricePercentage: 300},
	}
	ownership := CurryNFTOwnershipLayer(a, a.NewAtom([]byte("ownership mod")), NFTOwnershipLayerArgs[clvm.NodePtr]{
		ModHash:         b32(0x0d),
		CurrentOwner:    &owner,
		TransferProgram: transfer,
		InnerPuzzle:     a.NewAtom([]byte("p2")),
	})
	meta := NFTMetadata{EditionNumber: 2, EditionTotal: 10, DataURIs: []string{"https://a", "ipfs://b"}, DataHash: &dataHash}
	state := CurryNFTStateLayer(a, a.NewAtom([]byte("state mod")), NFTStateLayerArgs[clvm.NodePtr]{
		ModHash:                   b32(0x0e),
		Metadata:                  meta,
		MetadataUpdaterPuzzleHash: NFTMetadataUpdaterPuzzleHash,
		InnerPuzzle:               ownership,
	})
	puzzle := CurrySingleton(a, a.NewAtom([]byte("singleton mod")), SingletonArgs[clvm.NodePtr]{SingletonStruct: st, InnerPuzzle: state})

	dec := SingletonPuzzleOf(NFTStatePuzzleOf(NFTOwnershipPuzzleOf(Raw)))
	got, err := dec(a, puzzle)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Args.SingletonStruct != st {
		t.Fatalf("singleton struct mismatch")
	}
	stateArgs := got.Args.InnerPuzzle.Args
	if diff := cmp.Diff(meta, stateArgs.Metadata); diff != "" {
		t.Fatalf("metadata mismatch (-want +got):\n%s", diff)
	}
	own := stateArgs.InnerPuzzle.Args
	if own.CurrentOwner == nil || *own.CurrentOwner != owner {
		t.Fatalf("owner mismatch")
	}
	if diff := cmp.Diff(transfer.Args, own.TransferProgram.Args); diff != "" {
		t.Fatalf("transfer args mismatch (-want +got):\n%s", diff)
	}
	if p2, _ := a.Atom(own.InnerPuzzle); string(p2) != "p2" {
		t.Fatalf("innermost puzzle mismatch")
	}

	sol := EncodeSingletonSolution(a, SingletonSolution[clvm.NodePtr]{
		LineageProof:  Proof{Eve: &EveProof{ParentCoinInfo: b32(0x0f), Amount: 1}},
		Amount:        1,
		InnerSolution: EncodeLayerSolution(a, EncodeLayerSolution(a, a.NewList(a.NewUint(7)))),
	})
	gotSol, err := SingletonSolutionOf(LayerSolutionOf(LayerSolutionOf(Raw)))(a, sol)
	if err != nil {
		t.Fatalf("decode solution: %v", err)
	}
	if gotSol.Amount != 1 || gotSol.LineageProof.Eve == nil {
		t.Fatalf("singleton solution mismatch: %+v", gotSol)
	}
}

func TestNFTMetadata_DefaultsAndUnknownKeys(t *testing.T) {
	a := clvm.NewAllocator()
	n := a.NewList(
		a.NewPair(a.NewAtom([]byte("u")), a.NewList(a.NewAtom([]byte("https://x")))),
		a.NewPair(a.NewAtom([]byte("zz")), a.NewAtom([]byte("ignored"))),
	)
	got, err := DecodeNFTMetadata(a, n)
	if err != nil {
		t.Fatalf("DecodeNFTMetadata: %v", err)
	}
	want := NFTMetadata{EditionNumber: 1, EditionTotal: 1, DataURIs: []string{"https://x"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("metadata mismatch (-want +got):\n%s", diff)
	}

	if _, err := DecodeNFTMetadata(a, a.NewList(a.NewAtom([]byte("u")))); clvm.RuleID(err) != "PUZ-NFT-001" {
		t.Fatalf("expected PUZ-NFT-001, got %v", err)
	}
}

func TestNFTMetadata_RejectsMalformedValues(t *testing.T) {
	a := clvm.NewAllocator()
	entry := func(key string, v clvm.NodePtr) clvm.NodePtr {
		return a.NewList(a.NewPair(a.NewAtom([]byte(key)), v))
	}
	cases := []struct {
		name   string
		meta   clvm.NodePtr
		ruleID string
		prefix string
	}{
		{"nil data hash", entry("h", a.Nil()), "CLVM-DEC-003", "metadata h: "},
		{"nil metadata hash", entry("mh", a.Nil()), "CLVM-DEC-003", "metadata mh: "},
		{"short license hash", entry("lh", a.NewAtom([]byte("short"))), "CLVM-DEC-003", "metadata lh: "},
		{"non-UTF-8 uri", entry("u", a.NewList(a.NewAtom([]byte{0xc3, 0x28}))), "CLVM-DEC-008", "metadata u: "},
		{"non-UTF-8 key", entry("\xff", a.Nil()), "CLVM-DEC-008", "metadata entry 0 key: "},
	}
	for _, tc := range cases {
		_, err := DecodeNFTMetadata(a, tc.meta)
		if clvm.RuleID(err) != tc.ruleID {
			t.Fatalf("%s: expected %s, got %v", tc.name, tc.ruleID, err)
		}
		if !strings.HasPrefix(err.Error(), tc.prefix) {
			t.Fatalf("%s: error does not name the field: %v", tc.name, err)
		}
	}

	h := b32(0x07)
	got, err := DecodeNFTMetadata(a, entry("lh", a.NewAtom(h[:])))
	if err != nil {
		t.Fatalf("DecodeNFTMetadata: %v", err)
	}
	if got.LicenseHash == nil || *got.LicenseHash != h {
		t.Fatalf("license hash mismatch: %v", got.LicenseHash)
	}
}

func TestDID_RoundTripAndMode(t *testing.T) {
	a := clvm.NewAllocator()
	rl := b32(0x21)
	args := DIDArgs[clvm.NodePtr]{
		InnerPuzzle:              a.NewAtom([]byte("p2")),
		RecoveryListHash:         &rl,
		NumVerificationsRequired: 1,
		SingletonStruct:          NewSingletonStruct(b32(0x22)),
		Metadata:                 a.Nil(),
	}
	got, err := DIDPuzzleOf(Raw)(a, CurryDID(a, a.NewAtom([]byte("did mod")), args))
	if err != nil {
		t.Fatalf("DIDPuzzleOf: %v", err)
	}
	if diff := cmp.Diff(args, got.Args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}

	sol := DIDSolution{Mode: DIDInnerSpendMode, InnerSolution: a.NewList(a.Nil())}
	gotSol, err := DecodeDIDSolution(a, sol.Encode(a))
	if err != nil {
		t.Fatalf("DecodeDIDSolution: %v", err)
	}
	if diff := cmp.Diff(sol, gotSol); diff != "" {
		t.Fatalf("solution mismatch (-want +got):\n%s", diff)
	}
	recovery := a.NewList(a.NewUint(0), a.Nil())
	if _, err := DecodeDIDSolution(a, recovery); clvm.RuleID(err) != "PUZ-DID-001" {
		t.Fatalf("expected PUZ-DID-001, got %v", err)
	}
}
