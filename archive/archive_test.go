package archive

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"xdao.co/spendclass/classify"
	"xdao.co/spendclass/clvm"
	"xdao.co/spendclass/keys"
	"xdao.co/spendclass/puzzles"
	"xdao.co/spendclass/registry"
	"xdao.co/spendclass/storage"
	"xdao.co/spendclass/storage/localfs"
)

var tplStandard = []byte("standard template")

func newArchive(t *testing.T) *Archive {
	t.Helper()
	cas, err := localfs.New(t.TempDir())
	if err != nil {
		t.Fatalf("localfs.New: %v", err)
	}
	reg := registry.New()
	reg.MustRegister(registry.Entry{Hash: clvm.TreeHashAtom(tplStandard), Shape: registry.ShapeStandard})
	return New(cas, classify.New(reg))
}

func standardSpend() (puzzle, solution []byte) {
	a := clvm.NewAllocator()
	p := puzzles.CurryStandard(a, a.NewAtom(tplStandard), puzzles.StandardArgs{SyntheticKey: keys.ScalarPublicKey(11)})
	s := puzzles.StandardSolution{DelegatedPuzzle: a.NewPair(a.One(), a.Nil()), Solution: a.Nil()}.Encode(a)
	return clvm.Serialize(a, p), clvm.Serialize(a, s)
}

func TestArchive_PutGetClassify(t *testing.T) {
	ctx := context.Background()
	ar := newArchive(t)
	puzzle, solution := standardSpend()

	id, err := ar.Put(ctx, puzzle, solution)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	gotP, gotS, err := ar.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(gotP, puzzle) || !bytes.Equal(gotS, solution) {
		t.Fatalf("round trip mismatch")
	}
	res, err := ar.Classify(ctx, id)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if res.Spend.Kind() != classify.SpendStandard {
		t.Fatalf("unexpected kind %s", res.Spend.Kind())
	}

	again, err := ar.PutPair(ctx, append([]byte{0xff}, append(puzzle, solution...)...))
	if err != nil {
		t.Fatalf("PutPair: %v", err)
	}
	if !again.Equals(id) {
		t.Fatalf("PutPair CID %s, want %s", again, id)
	}
}

func TestArchive_RejectsNonCanonicalInput(t *testing.T) {
	ar := newArchive(t)
	puzzle, solution := standardSpend()

	if _, err := ar.Put(context.Background(), append(puzzle, 0x80), solution); !clvm.IsKind(err, clvm.KindCanonical) {
		t.Fatalf("expected canonical error for trailing bytes, got %v", err)
	}
	if _, err := ar.PutPair(context.Background(), []byte{0x80}); !errors.Is(err, ErrNotSpend) {
		t.Fatalf("expected ErrNotSpend, got %v", err)
	}
}

func TestArchive_MissingAndUnknown(t *testing.T) {
	ctx := context.Background()
	ar := newArchive(t)

	a := clvm.NewAllocator()
	unknown := clvm.Curry(a, a.NewAtom([]byte("other")), a.Nil())
	id, err := ar.Put(ctx, clvm.Serialize(a, unknown), []byte{0x80})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := ar.Classify(ctx, id); !classify.IsKind(err, classify.KindUnknownShape) {
		t.Fatalf("expected UnknownShape, got %v", err)
	}

	other := newArchive(t)
	if _, _, err := other.Get(ctx, id); !storage.IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if ok, err := other.Has(ctx, id); err != nil || ok {
		t.Fatalf("Has: ok=%v err=%v", ok, err)
	}
}
