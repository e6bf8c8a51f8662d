package storage

import (
	"context"
	"fmt"

	"github.com/ipfs/go-cid"

	"xdao.co/spendclass/cidutil"
)

// NamedCAS associates a CAS with a stable backend name for reporting.
type NamedCAS struct {
	Name string
	CAS  CAS
}

// ReplicatingCAS writes every object to all backends and reads in order.
//
// Every backend must return the CID computed locally from the bytes; otherwise Put
// fails with ErrCIDMismatch.
type ReplicatingCAS struct {
	Backends []NamedCAS
}

var _ CAS = ReplicatingCAS{}

// PutAll writes b to every backend and returns the per-backend CIDs.
func (r ReplicatingCAS) PutAll(ctx context.Context, b []byte) (cid.Cid, map[string]cid.Cid, error) {
	want, err := cidutil.Sum(b)
	if err != nil {
		return cid.Undef, nil, err
	}
	if len(r.Backends) == 0 {
		return cid.Undef, nil, ErrNoBackends
	}

	out := make(map[string]cid.Cid, len(r.Backends))
	for _, nb := range r.Backends {
		if nb.CAS == nil {
			return cid.Undef, nil, fmt.Errorf("storage: nil CAS for backend %q", nb.Name)
		}
		got, err := nb.CAS.Put(ctx, b)
		if err != nil {
			return cid.Undef, out, fmt.Errorf("storage: backend %q: %w", nb.Name, err)
		}
		out[nb.Name] = got
		if !got.Equals(want) {
			return cid.Undef, out, fmt.Errorf("storage: backend %q: %w", nb.Name, ErrCIDMismatch)
		}
	}
	return want, out, nil
}

func (r ReplicatingCAS) Put(ctx context.Context, b []byte) (cid.Cid, error) {
	id, _, err := r.PutAll(ctx, b)
	return id, err
}

func (r ReplicatingCAS) Get(ctx context.Context, id cid.Cid) ([]byte, error) {
	return MultiCAS{Adapters: r.adapters()}.Get(ctx, id)
}

func (r ReplicatingCAS) Has(ctx context.Context, id cid.Cid) (bool, error) {
	return MultiCAS{Adapters: r.adapters()}.Has(ctx, id)
}

func (r ReplicatingCAS) adapters() []CAS {
	out := make([]CAS, 0, len(r.Backends))
	for _, nb := range r.Backends {
		if nb.CAS != nil {
			out = append(out, nb.CAS)
		}
	}
	return out
}
