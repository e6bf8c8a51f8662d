package archive

import (
	"archive/tar"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ipfs/go-cid"

	"xdao.co/spendclass/cidutil"
	"xdao.co/spendclass/storage"
)

func putTwo(t *testing.T, ar *Archive) (standard, unknown cid.Cid) {
	t.Helper()
	ctx := context.Background()
	puzzle, solution := standardSpend()
	standard, err := ar.Put(ctx, puzzle, solution)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	unknown, err = ar.Put(ctx, []byte{0x80}, []byte{0x80})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	return standard, unknown
}

func TestBundle_ExportIsDeterministic(t *testing.T) {
	ctx := context.Background()
	ar := newArchive(t)
	a, b := putTwo(t, ar)

	var first, second bytes.Buffer
	if err := ar.Export(ctx, &first, []cid.Cid{b, a, b}, ExportOptions{WithIndex: true}); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if err := ar.Export(ctx, &second, []cid.Cid{a, b}, ExportOptions{WithIndex: true}); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("expected identical bundle bytes")
	}
}

func TestBundle_IndexRecordsShapes(t *testing.T) {
	ctx := context.Background()
	ar := newArchive(t)
	std, unk := putTwo(t, ar)

	var buf bytes.Buffer
	if err := ar.Export(ctx, &buf, []cid.Cid{std, unk}, ExportOptions{WithIndex: true}); err != nil {
		t.Fatalf("Export: %v", err)
	}
	idx := readIndex(t, buf.Bytes())

	pairLen := func(id cid.Cid) int {
		p, err := ar.GetPair(ctx, id)
		if err != nil {
			t.Fatalf("GetPair: %v", err)
		}
		return len(p)
	}
	want := map[string]BundleSpend{
		std.String(): {CID: std.String(), Size: pairLen(std), Shape: "standard"},
		unk.String(): {CID: unk.String(), Size: pairLen(unk), Error: "CLASSIFY-DECOMP-001"},
	}
	got := map[string]BundleSpend{}
	for _, s := range idx.Spends {
		got[s.CID] = s
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("index (-want +got):\n%s", diff)
	}
}

func readIndex(t *testing.T, bundle []byte) BundleIndex {
	t.Helper()
	tr := tar.NewReader(bytes.NewReader(bundle))
	for {
		h, err := tr.Next()
		if errors.Is(err, io.EOF) {
			t.Fatalf("bundle has no index")
		}
		if err != nil {
			t.Fatalf("tar: %v", err)
		}
		if h.Name != indexName {
			continue
		}
		var idx BundleIndex
		if err := json.NewDecoder(tr).Decode(&idx); err != nil {
			t.Fatalf("index: %v", err)
		}
		return idx
	}
}

func TestBundle_ImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newArchive(t)
	a, b := putTwo(t, src)

	var buf bytes.Buffer
	if err := src.Export(ctx, &buf, []cid.Cid{a, b}, ExportOptions{WithIndex: true}); err != nil {
		t.Fatalf("Export: %v", err)
	}

	dst := newArchive(t)
	ids, err := dst.Import(ctx, bytes.NewReader(buf.Bytes()), ImportOptions{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("imported %d spends, want 2", len(ids))
	}
	for _, id := range []cid.Cid{a, b} {
		if ok, err := dst.Has(ctx, id); err != nil || !ok {
			t.Fatalf("Has(%s): %v %v", id, ok, err)
		}
	}
}

func TestBundle_ImportRejects(t *testing.T) {
	ctx := context.Background()
	pair := []byte{0xff, 0x80, 0x80}
	pairID, _ := cidutil.Sum(pair)
	other, _ := cidutil.Sum([]byte{0xff, 0x01, 0x80})
	atomID, _ := cidutil.Sum([]byte{0x80})

	cases := []struct {
		name    string
		entry   string
		content []byte
		opts    ImportOptions
		check   func(error) bool
	}{
		{"cid mismatch", spendPrefix + other.String(), pair, ImportOptions{}, func(err error) bool { return errors.Is(err, storage.ErrCIDMismatch) }},
		{"not a pair", spendPrefix + atomID.String(), []byte{0x80}, ImportOptions{}, func(err error) bool { return errors.Is(err, ErrNotSpend) }},
		{"bad cid", spendPrefix + "nope", pair, ImportOptions{}, func(err error) bool { return errors.Is(err, storage.ErrInvalidCID) }},
		{"unknown entry", "extra/" + pairID.String(), pair, ImportOptions{}, func(err error) bool { return err != nil }},
		{"traversal", "../" + pairID.String(), pair, ImportOptions{}, func(err error) bool { return err != nil }},
		{"unknown ignored", "extra/" + pairID.String(), pair, ImportOptions{IgnoreUnknown: true}, func(err error) bool { return err == nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			tw := tar.NewWriter(&buf)
			if err := writeEntry(tw, tc.entry, tc.content); err != nil {
				t.Fatalf("writeEntry: %v", err)
			}
			if err := tw.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}
			_, err := newArchive(t).Import(ctx, &buf, tc.opts)
			if !tc.check(err) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
