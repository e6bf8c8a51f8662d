package classify

import (
	"context"
	"testing"

	"go.uber.org/goleak"

	"xdao.co/spendclass/clvm"
)

func TestClassifyBatch_PreservesOrderAndErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	a := clvm.NewAllocator()
	sp, ss, _ := buildStandard(a)
	np, ns := buildNFT(a, tplOwnership)
	pairs := []Pair{
		{Puzzle: clvm.Serialize(a, sp), Solution: clvm.Serialize(a, ss)},
		{Puzzle: []byte{0xff}, Solution: []byte{0x80}},
		{Puzzle: clvm.Serialize(a, np), Solution: clvm.Serialize(a, ns)},
	}

	results, err := New(testRegistry()).ClassifyBatch(context.Background(), pairs, clvm.ParseOptions{}, 2)
	if err != nil {
		t.Fatalf("ClassifyBatch: %v", err)
	}
	if len(results) != len(pairs) {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Fatalf("result %d has index %d", i, r.Index)
		}
	}
	if results[0].Err != nil || results[0].Result.Spend.Kind() != SpendStandard {
		t.Fatalf("unexpected result 0: %+v", results[0])
	}
	if !IsKind(results[1].Err, KindInputDecode) || results[1].Result != nil {
		t.Fatalf("unexpected result 1: %+v", results[1])
	}
	if results[2].Err != nil || results[2].Result.Spend.Kind() != SpendNFT {
		t.Fatalf("unexpected result 2: %+v", results[2])
	}
}

func TestClassifyBatch_CancelledContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pairs := []Pair{{Puzzle: []byte{0x80}, Solution: []byte{0x80}}, {Puzzle: []byte{0x80}, Solution: []byte{0x80}}}

	results, err := New(testRegistry()).ClassifyBatch(ctx, pairs, clvm.ParseOptions{}, 0)
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	for i, r := range results {
		if r.Err != context.Canceled {
			t.Fatalf("result %d: expected context.Canceled, got %v", i, r.Err)
		}
	}
}
