package compliance

import "fmt"

// ComplianceMode selects how aggressively the codec rejects ambiguity.
//
// Permissive accepts every encoding the reference deserializer accepts: trailing
// bytes after the first complete node are ignored and length prefixes need not be
// minimal. Strict requires the single canonical encoding of exactly one node, so
// that bytes and tree hash identify each other.
type ComplianceMode int

const (
	Permissive ComplianceMode = iota
	Strict
)

func (m ComplianceMode) String() string {
	switch m {
	case Permissive:
		return "permissive"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("ComplianceMode(%d)", int(m))
	}
}

// ParseMode maps a configuration/CLI value onto a ComplianceMode.
// The empty string selects Permissive.
func ParseMode(s string) (ComplianceMode, error) {
	switch s {
	case "", "permissive":
		return Permissive, nil
	case "strict":
		return Strict, nil
	default:
		return Permissive, fmt.Errorf("compliance: invalid mode %q (want permissive|strict)", s)
	}
}
