package registry

import (
	"fmt"

	"xdao.co/spendclass/clvm"
	"xdao.co/spendclass/config"
)

// Extend registers additional admissible hashes from configuration. Existing bindings
// are never replaced; a collision is an error.
func Extend(r *Registry, extra []config.RegistryEntry) error {
	for i, ce := range extra {
		h, err := clvm.ParseBytes32(ce.Hash)
		if err != nil {
			return fmt.Errorf("registry: extra[%d]: hash: %w", i, err)
		}
		shape, err := ParseShape(ce.Shape)
		if err != nil {
			return fmt.Errorf("registry: extra[%d]: %w", i, err)
		}
		e := Entry{Hash: h, Shape: shape, Version: Version(ce.Version), Name: ce.Name}
		if err := r.Register(e); err != nil {
			return fmt.Errorf("registry: extra[%d]: %w", i, err)
		}
	}
	return nil
}
