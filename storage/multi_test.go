package storage_test

import (
	"context"
	"errors"
	"testing"

	"xdao.co/spendclass/storage"
	"xdao.co/spendclass/storage/localfs"
	"xdao.co/spendclass/storage/testkit"
)

func newLocal(t *testing.T) *localfs.CAS {
	t.Helper()
	cas, err := localfs.New(t.TempDir())
	if err != nil {
		t.Fatalf("localfs.New: %v", err)
	}
	return cas
}

func TestMultiCAS_Conformance(t *testing.T) {
	testkit.RunCASConformance(t, func(t *testing.T) storage.CAS {
		return storage.MultiCAS{Adapters: []storage.CAS{newLocal(t), newLocal(t)}}
	})
}

func TestMultiCAS_FallsBackInOrder(t *testing.T) {
	ctx := context.Background()
	first, second := newLocal(t), newLocal(t)
	id, err := second.Put(ctx, testkit.Sample)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	m := storage.MultiCAS{Adapters: []storage.CAS{first, second}}
	if _, err := m.Get(ctx, id); err != nil {
		t.Fatalf("Get via fallback: %v", err)
	}
	if ok, _ := first.Has(ctx, id); ok {
		t.Fatalf("read must not copy into the first adapter")
	}
	if _, err := (storage.MultiCAS{}).Put(ctx, testkit.Sample); !errors.Is(err, storage.ErrNoBackends) {
		t.Fatalf("expected ErrNoBackends, got %v", err)
	}
}

func TestReplicatingCAS_WritesAll(t *testing.T) {
	testkit.RunCASConformance(t, func(t *testing.T) storage.CAS {
		return storage.ReplicatingCAS{Backends: []storage.NamedCAS{{Name: "a", CAS: newLocal(t)}}}
	})

	ctx := context.Background()
	a, b := newLocal(t), newLocal(t)
	r := storage.ReplicatingCAS{Backends: []storage.NamedCAS{{Name: "a", CAS: a}, {Name: "b", CAS: b}}}
	id, per, err := r.PutAll(ctx, testkit.Sample)
	if err != nil {
		t.Fatalf("PutAll: %v", err)
	}
	if len(per) != 2 || !per["a"].Equals(id) || !per["b"].Equals(id) {
		t.Fatalf("unexpected per-backend CIDs: %v", per)
	}
	for _, cas := range []storage.CAS{a, b} {
		if ok, err := cas.Has(ctx, id); err != nil || !ok {
			t.Fatalf("object missing from a backend: ok=%v err=%v", ok, err)
		}
	}
}
