// Package ipfs stores archived spends as raw blocks in a local IPFS repo by driving
// the Kubo "ipfs" CLI.
package ipfs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ipfs/go-cid"

	"xdao.co/spendclass/cidutil"
	"xdao.co/spendclass/storage"
)

// CAS is a storage.CAS over the local Kubo repo. It never needs a running daemon:
// every command runs with --offline, so reads never reach the network.
//
// Bytes returned by the CLI are re-hashed; the repo is not trusted.
type CAS struct {
	bin  string
	repo string
}

var _ storage.CAS = (*CAS)(nil)

type Options struct {
	// Bin is the path to the ipfs binary. Empty means "ipfs" on PATH.
	Bin string
	// Repo sets IPFS_PATH for every command. Empty uses the environment's repo.
	Repo string
}

func New(opts Options) *CAS {
	bin := opts.Bin
	if bin == "" {
		bin = "ipfs"
	}
	return &CAS{bin: bin, repo: opts.Repo}
}

func (c *CAS) Put(ctx context.Context, b []byte) (cid.Cid, error) {
	want, err := cidutil.Sum(b)
	if err != nil {
		return cid.Undef, err
	}
	// Explicit block parameters keep the returned CID equal to cidutil.Sum.
	out, err := c.run(ctx, b,
		"block", "put",
		"--quiet",
		"--cid-codec=raw",
		"--mhtype=sha2-256",
		"--mhlen=32",
	)
	if err != nil {
		return cid.Undef, err
	}
	got, err := cid.Decode(strings.TrimSpace(string(out)))
	if err != nil {
		return cid.Undef, fmt.Errorf("ipfs: unexpected block put output: %w", err)
	}
	if !got.Equals(want) {
		return cid.Undef, storage.ErrCIDMismatch
	}
	return want, nil
}

func (c *CAS) Get(ctx context.Context, id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, storage.ErrInvalidCID
	}
	out, err := c.run(ctx, nil, "block", "get", id.String())
	if err != nil {
		if isNotFound(err) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	ok, err := cidutil.Verify(id, out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, storage.ErrCIDMismatch
	}
	return out, nil
}

func (c *CAS) Has(ctx context.Context, id cid.Cid) (bool, error) {
	if !id.Defined() {
		return false, nil
	}
	_, err := c.run(ctx, nil, "block", "stat", id.String())
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, err
}

func (c *CAS) run(ctx context.Context, stdin []byte, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.bin, append([]string{"--offline"}, args...)...)
	if c.repo != "" {
		cmd.Env = append(os.Environ(), "IPFS_PATH="+c.repo)
	}
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	out, err := cmd.Output()
	if err == nil {
		return out, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		if s := strings.TrimSpace(string(ee.Stderr)); s != "" {
			return nil, fmt.Errorf("ipfs: %s", s)
		}
	}
	return nil, fmt.Errorf("ipfs: %w", err)
}

func isNotFound(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
