// Package cidutil derives and checks the content identifiers used by the spend
// archive: CIDv1, raw codec, sha2-256 multihash.
package cidutil

import (
	"errors"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

var ErrUnsupportedCID = errors.New("cidutil: unsupported cid (want CIDv1 raw sha2-256)")

// Sum returns the CID of data.
func Sum(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// String returns the CID of data in its default string form, or "" if it cannot be
// computed.
func String(data []byte) string {
	id, err := Sum(data)
	if err != nil {
		return ""
	}
	return id.String()
}

// Parse decodes s and requires the archive's CID parameters.
func Parse(s string) (cid.Cid, error) {
	id, err := cid.Decode(s)
	if err != nil {
		return cid.Undef, fmt.Errorf("cidutil: %w", err)
	}
	if err := Check(id); err != nil {
		return cid.Undef, err
	}
	return id, nil
}

// Check reports whether id uses CIDv1, the raw codec and sha2-256.
func Check(id cid.Cid) error {
	if !id.Defined() {
		return ErrUnsupportedCID
	}
	p := id.Prefix()
	if p.Version != 1 || p.Codec != cid.Raw || p.MhType != multihash.SHA2_256 {
		return fmt.Errorf("%w: %s", ErrUnsupportedCID, id)
	}
	return nil
}

// Verify reports whether data hashes to id.
func Verify(id cid.Cid, data []byte) (bool, error) {
	got, err := Sum(data)
	if err != nil {
		return false, err
	}
	return got.Equals(id), nil
}
