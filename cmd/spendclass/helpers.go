package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"xdao.co/spendclass/archive"
	"xdao.co/spendclass/classify"
	"xdao.co/spendclass/clvm"
	"xdao.co/spendclass/service"
	"xdao.co/spendclass/storage"
	"xdao.co/spendclass/storage/ipfs"
	"xdao.co/spendclass/storage/localfs"
)

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

// readProgram loads one serialized program: hex text by default, raw bytes with
// --binary.
func (a *app) readProgram(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if a.binary {
		return b, nil
	}
	out, err := clvm.DecodeHex(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return out, nil
}

func (a *app) writeJSON(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// openStore builds the configured archive backend. A remote address wins over
// local directories and the optional IPFS repo; several backends either fall back
// in order or, with archive.replicate, all receive every write.
func (a *app) openStore() (storage.CAS, func(), error) {
	if a.cfg.Archive.Remote != "" {
		c, err := service.Dial(a.cfg.Archive.Remote, service.DialOptions{})
		if err != nil {
			return nil, nil, fmt.Errorf("dial %s: %w", a.cfg.Archive.Remote, err)
		}
		return c, func() { _ = c.Close() }, nil
	}
	var named []storage.NamedCAS
	for _, dir := range a.cfg.Archive.Dirs {
		cas, err := localfs.New(dir)
		if err != nil {
			return nil, nil, err
		}
		named = append(named, storage.NamedCAS{Name: dir, CAS: cas})
	}
	if ic := a.cfg.Archive.IPFS; ic.Enabled {
		named = append(named, storage.NamedCAS{Name: "ipfs", CAS: ipfs.New(ipfs.Options{Bin: ic.Bin, Repo: ic.Repo})})
	}
	if len(named) == 0 {
		return nil, nil, storage.ErrNoBackends
	}
	if a.cfg.Archive.Replicate {
		return storage.ReplicatingCAS{Backends: named}, func() {}, nil
	}
	adapters := make([]storage.CAS, 0, len(named))
	for _, nb := range named {
		adapters = append(adapters, nb.CAS)
	}
	return storage.MultiCAS{Adapters: adapters}, func() {}, nil
}

func (a *app) openArchive() (*archive.Archive, func(), error) {
	cas, closeFn, err := a.openStore()
	if err != nil {
		return nil, nil, err
	}
	return archive.New(cas, a.classifier), closeFn, nil
}

// classifyFailure prints the coded form of a classification error to stderr.
// Other errors pass through unchanged.
func (a *app) classifyFailure(err error) error {
	var e *classify.Error
	if !errors.As(err, &e) {
		return err
	}
	ce := classify.Coded(err)
	b, merr := json.Marshal(ce)
	if merr == nil {
		fmt.Fprintln(a.errOut, string(b))
	}
	return fmt.Errorf("classification failed: %s", ce.Code)
}
