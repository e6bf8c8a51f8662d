// Package archive stores classified spends in a content-addressed store.
//
// A spend is archived as the canonical serialization of the pair
// (puzzle . solution), so its CID identifies exactly one puzzle and one solution.
package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/ipfs/go-cid"

	"xdao.co/spendclass/classify"
	"xdao.co/spendclass/clvm"
	"xdao.co/spendclass/compliance"
	"xdao.co/spendclass/storage"
)

var ErrNotSpend = errors.New("archive: object is not a (puzzle . solution) pair")

// Archive wraps a storage.CAS with spend encoding and classification.
type Archive struct {
	cas        storage.CAS
	classifier *classify.Classifier
}

// New returns an archive over cas. A nil classifier uses the mainnet registry.
func New(cas storage.CAS, c *classify.Classifier) *Archive {
	if c == nil {
		c = classify.New(nil)
	}
	return &Archive{cas: cas, classifier: c}
}

var strict = clvm.ParseOptions{Mode: compliance.Strict}

// Encode strict-parses both halves and returns the serialized pair.
func Encode(puzzle, solution []byte) ([]byte, error) {
	a := clvm.NewAllocator()
	p, err := clvm.Parse(a, puzzle, strict)
	if err != nil {
		return nil, fmt.Errorf("archive: puzzle: %w", err)
	}
	s, err := clvm.Parse(a, solution, strict)
	if err != nil {
		return nil, fmt.Errorf("archive: solution: %w", err)
	}
	return clvm.Serialize(a, a.NewPair(p, s)), nil
}

// Decode splits a serialized pair into its canonical halves.
func Decode(pair []byte) (puzzle, solution []byte, err error) {
	a := clvm.NewAllocator()
	n, err := clvm.Parse(a, pair, strict)
	if err != nil {
		return nil, nil, fmt.Errorf("archive: %w", err)
	}
	p, s, ok := a.Pair(n)
	if !ok {
		return nil, nil, ErrNotSpend
	}
	return clvm.Serialize(a, p), clvm.Serialize(a, s), nil
}

// Put stores a spend and returns its CID.
func (ar *Archive) Put(ctx context.Context, puzzle, solution []byte) (cid.Cid, error) {
	pair, err := Encode(puzzle, solution)
	if err != nil {
		return cid.Undef, err
	}
	return ar.cas.Put(ctx, pair)
}

// PutPair stores an already-serialized pair after checking it is canonical.
func (ar *Archive) PutPair(ctx context.Context, pair []byte) (cid.Cid, error) {
	p, s, err := Decode(pair)
	if err != nil {
		return cid.Undef, err
	}
	return ar.Put(ctx, p, s)
}

// GetPair returns the serialized pair stored under id.
func (ar *Archive) GetPair(ctx context.Context, id cid.Cid) ([]byte, error) {
	return ar.cas.Get(ctx, id)
}

// Get returns the puzzle and solution stored under id.
func (ar *Archive) Get(ctx context.Context, id cid.Cid) (puzzle, solution []byte, err error) {
	pair, err := ar.cas.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return Decode(pair)
}

// Has reports whether id is archived.
func (ar *Archive) Has(ctx context.Context, id cid.Cid) (bool, error) {
	return ar.cas.Has(ctx, id)
}

// Classify loads the spend stored under id and classifies it.
func (ar *Archive) Classify(ctx context.Context, id cid.Cid) (*classify.Result, error) {
	pair, err := ar.cas.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ar.classifier.ClassifyPairBytes(pair, strict)
}
