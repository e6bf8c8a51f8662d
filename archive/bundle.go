package archive

import (
	"archive/tar"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ipfs/go-cid"

	"xdao.co/spendclass/cidutil"
	"xdao.co/spendclass/classify"
	"xdao.co/spendclass/storage"
)

// BundleVersion is the current bundle index schema version.
const BundleVersion = 1

const (
	spendPrefix = "spends/"
	indexName   = "index.json"
)

var epoch = time.Unix(0, 0).UTC()

// BundleIndex is the optional index.json of a bundle. It is informational: import
// trusts only the spend entries themselves.
type BundleIndex struct {
	Version   int           `json:"version"`
	CIDCodec  string        `json:"cidCodec"`
	Multihash string        `json:"multihash"`
	Spends    []BundleSpend `json:"spends"`
}

// BundleSpend describes one exported spend. Shape is empty when the spend did not
// classify at export time.
type BundleSpend struct {
	CID   string `json:"cid"`
	Size  int    `json:"size"`
	Shape string `json:"shape,omitempty"`
	Error string `json:"error,omitempty"`
}

type ExportOptions struct {
	// WithIndex adds index.json with the classification of every spend.
	WithIndex bool
}

// Export writes a deterministic TAR bundle of the spends in ids. Entries are sorted
// by CID and headers are normalized, so the same set always yields the same bytes.
func (ar *Archive) Export(ctx context.Context, w io.Writer, ids []cid.Cid, opts ExportOptions) error {
	uniq := make(map[string]cid.Cid, len(ids))
	for _, id := range ids {
		if err := cidutil.Check(id); err != nil {
			return fmt.Errorf("%w: %v", storage.ErrInvalidCID, err)
		}
		uniq[id.String()] = id
	}
	names := make([]string, 0, len(uniq))
	for s := range uniq {
		names = append(names, s)
	}
	sort.Strings(names)

	tw := tar.NewWriter(w)
	spends := make([]BundleSpend, 0, len(names))
	for _, s := range names {
		if err := ctx.Err(); err != nil {
			_ = tw.Close()
			return err
		}
		pair, err := ar.cas.Get(ctx, uniq[s])
		if err != nil {
			_ = tw.Close()
			return fmt.Errorf("archive: export %s: %w", s, err)
		}
		if err := writeEntry(tw, spendPrefix+s, pair); err != nil {
			_ = tw.Close()
			return err
		}
		if opts.WithIndex {
			spends = append(spends, ar.describe(s, pair))
		}
	}

	if opts.WithIndex {
		b, err := json.Marshal(BundleIndex{
			Version:   BundleVersion,
			CIDCodec:  "raw",
			Multihash: "sha2-256",
			Spends:    spends,
		})
		if err != nil {
			_ = tw.Close()
			return err
		}
		if err := writeEntry(tw, indexName, append(b, '\n')); err != nil {
			_ = tw.Close()
			return err
		}
	}
	return tw.Close()
}

func (ar *Archive) describe(id string, pair []byte) BundleSpend {
	d := BundleSpend{CID: id, Size: len(pair)}
	res, err := ar.classifier.ClassifyPairBytes(pair, strict)
	if err != nil {
		d.Error = classify.RuleID(err)
		return d
	}
	d.Shape = string(res.Spend.Kind())
	return d
}

type ImportOptions struct {
	// IgnoreUnknown skips entries that are neither spends nor the index instead of
	// failing.
	IgnoreUnknown bool
}

// Import stores every spend in a bundle and returns their CIDs in bundle order.
// Each entry must hash to the CID in its name and must be a canonical
// (puzzle . solution) pair.
func (ar *Archive) Import(ctx context.Context, r io.Reader, opts ImportOptions) ([]cid.Cid, error) {
	tr := tar.NewReader(r)
	seen := map[string]struct{}{}
	var out []cid.Cid
	for {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		h, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		name := cleanTarPath(h.Name)
		if name == "" {
			return out, fmt.Errorf("archive: invalid bundle entry path %q", h.Name)
		}
		if h.Typeflag != tar.TypeReg {
			if opts.IgnoreUnknown {
				continue
			}
			return out, fmt.Errorf("archive: unexpected bundle entry type %v (%s)", h.Typeflag, name)
		}
		if name == indexName {
			continue
		}
		if !strings.HasPrefix(name, spendPrefix) {
			if opts.IgnoreUnknown {
				continue
			}
			return out, fmt.Errorf("archive: unknown bundle entry %s", name)
		}

		id, err := cidutil.Parse(strings.TrimPrefix(name, spendPrefix))
		if err != nil {
			return out, fmt.Errorf("%w: %s", storage.ErrInvalidCID, name)
		}
		if _, dup := seen[id.String()]; dup {
			return out, fmt.Errorf("archive: duplicate bundle entry %s", id)
		}
		seen[id.String()] = struct{}{}

		pair, err := io.ReadAll(tr)
		if err != nil {
			return out, err
		}
		ok, err := cidutil.Verify(id, pair)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, storage.ErrCIDMismatch
		}
		got, err := ar.PutPair(ctx, pair)
		if err != nil {
			return out, fmt.Errorf("archive: import %s: %w", id, err)
		}
		if !got.Equals(id) {
			// The entry hashed correctly but was not in canonical form.
			return out, fmt.Errorf("archive: import %s: %w", id, storage.ErrCIDMismatch)
		}
		out = append(out, id)
	}
}

func writeEntry(tw *tar.Writer, name string, content []byte) error {
	hdr := &tar.Header{
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(content)),
		ModTime:  epoch,
		Typeflag: tar.TypeReg,
		Format:   tar.FormatUSTAR,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := tw.Write(content)
	return err
}

func cleanTarPath(name string) string {
	name = strings.TrimPrefix(strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"), "./"), "/")
	if name == "" {
		return ""
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return ""
		}
	}
	return name
}
