package classify

import (
	"errors"

	"xdao.co/spendclass/clvm"
)

// Kind is a stable category for programmatic error handling.
type Kind string

const (
	KindInputDecode        Kind = "InputDecode"
	KindDecomposition      Kind = "Decomposition"
	KindUnknownShape       Kind = "UnknownShape"
	KindUnknownNestedLayer Kind = "UnknownNestedLayer"
	KindTypedDecode        Kind = "TypedDecode"
)

// Stage names the layer being examined when classification failed.
type Stage string

const (
	StageInput          Stage = "input"
	StageTopLevel       Stage = "top_level"
	StageSingletonInner Stage = "singleton_inner"
	StageOwnershipLayer Stage = "ownership_layer"
)

// Stable rule identifiers.
const (
	RuleInputPuzzle       = "CLASSIFY-INPUT-001"
	RuleInputSolution     = "CLASSIFY-INPUT-002"
	RuleInputPair         = "CLASSIFY-INPUT-003"
	RuleNotCurried        = "CLASSIFY-DECOMP-001"
	RuleLayerArgs         = "CLASSIFY-DECOMP-002"
	RuleUnknownTemplate   = "CLASSIFY-SHAPE-001"
	RuleNotTopLevel       = "CLASSIFY-SHAPE-002"
	RuleUnknownInner      = "CLASSIFY-SHAPE-003"
	RuleOwnershipMismatch = "CLASSIFY-NEST-001"
	RuleTypedPuzzle       = "CLASSIFY-DECODE-001"
	RuleTypedSolution     = "CLASSIFY-DECODE-002"
)

// Error is the package's structured error type.
//
// TemplateHash is the template hash examined at the failing stage, when one was
// computed. Cause carries the underlying *clvm.Error where there is one.
type Error struct {
	Kind         Kind
	Stage        Stage
	RuleID       string
	Message      string
	TemplateHash clvm.Bytes32
	Cause        error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// StageOf returns the stage of a classification error.
func StageOf(err error) (Stage, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Stage, true
}

// RuleID returns the stable RuleID for a classification error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}
