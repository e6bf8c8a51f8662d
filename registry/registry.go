package registry

import (
	"errors"
	"fmt"
	"sync"

	"xdao.co/spendclass/clvm"
	"xdao.co/spendclass/puzzles"
)

var (
	ErrHashRegistered = errors.New("registry: hash already registered")
	ErrUnknownShape   = errors.New("registry: unknown shape")
)

// Entry binds a template hash to a shape.
type Entry struct {
	Hash    clvm.Bytes32
	Shape   Shape
	Version Version
	Name    string
}

// Registry is a hash-keyed table of entries. Lookups are safe for concurrent use;
// entries are never replaced once registered.
type Registry struct {
	mu      sync.RWMutex
	byHash  map[clvm.Bytes32]Entry
	ordered []Entry
}

func New() *Registry {
	return &Registry{byHash: map[clvm.Bytes32]Entry{}}
}

// Register adds e. It refuses to re-bind an existing hash.
func (r *Registry) Register(e Entry) error {
	if _, err := ParseShape(string(e.Shape)); err != nil {
		return err
	}
	if e.Hash.IsZero() {
		return fmt.Errorf("registry: entry %q has a zero hash", e.Name)
	}
	if e.Name == "" {
		e.Name = string(e.Shape)
		if e.Version != Unversioned {
			e.Name += "_" + e.Version.String()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, exists := r.byHash[e.Hash]; exists {
		return fmt.Errorf("%w: %s is %s", ErrHashRegistered, e.Hash, prev.Name)
	}
	r.byHash[e.Hash] = e
	r.ordered = append(r.ordered, e)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(e Entry) {
	if err := r.Register(e); err != nil {
		panic(err)
	}
}

// Lookup returns the entry for a template hash.
func (r *Registry) Lookup(h clvm.Bytes32) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byHash[h]
	return e, ok
}

// Entries returns the entries in registration order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Entry(nil), r.ordered...)
}

// Hashes returns the registered hashes for shape s in registration order.
func (r *Registry) Hashes(s Shape) []clvm.Bytes32 {
	var out []clvm.Bytes32
	for _, e := range r.Entries() {
		if e.Shape == s {
			out = append(out, e.Hash)
		}
	}
	return out
}

// Clone returns an independent copy that can be extended without affecting r.
func (r *Registry) Clone() *Registry {
	out := New()
	for _, e := range r.Entries() {
		out.MustRegister(e)
	}
	return out
}

// Default returns a registry holding the mainnet template hashes.
func Default() *Registry {
	r := New()
	for _, e := range []Entry{
		{Hash: puzzles.StandardPuzzleHash, Shape: ShapeStandard, Name: "standard"},
		{Hash: puzzles.CATPuzzleHashV1, Shape: ShapeCAT, Version: CATV1, Name: "cat_v1"},
		{Hash: puzzles.CATPuzzleHashV2, Shape: ShapeCAT, Version: CATV2, Name: "cat_v2"},
		{Hash: puzzles.SingletonTopLayerPuzzleHash, Shape: ShapeSingleton, Name: "singleton_top_layer_v1_1"},
		{Hash: puzzles.DIDInnerPuzzleHash, Shape: ShapeDIDInner, Name: "did_innerpuz"},
		{Hash: puzzles.NFTStateLayerPuzzleHash, Shape: ShapeNFTStateLayer, Name: "nft_state_layer"},
		{Hash: puzzles.NFTOwnershipLayerPuzzleHash, Shape: ShapeNFTOwnershipLayer, Name: "nft_ownership_layer"},
	} {
		r.MustRegister(e)
	}
	return r
}
