// Package storage defines the content-addressed store behind the spend archive.
package storage

import (
	"context"

	"github.com/ipfs/go-cid"
)

// CAS is a minimal content-addressable storage interface.
//
// Contract:
// - Put MUST be idempotent.
// - Stored objects MUST be immutable.
// - CIDs MUST be derived from the bytes written (see cidutil.Sum).
// - Get MUST return ErrNotFound when the CID is absent and MUST NOT return bytes
//   that do not hash to the requested CID.
type CAS interface {
	Put(ctx context.Context, b []byte) (cid.Cid, error)
	Get(ctx context.Context, id cid.Cid) ([]byte, error)
	Has(ctx context.Context, id cid.Cid) (bool, error)
}
