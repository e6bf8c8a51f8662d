package clvm

import "errors"

// Kind is a stable category for programmatic error handling.
//
// Callers should branch on Kind/RuleID rather than matching error strings.
type Kind string

const (
	KindParse     Kind = "Parse"
	KindCanonical Kind = "Canonical"
	KindCurry     Kind = "Curry"
	KindDecode    Kind = "Decode"
	KindInternal  Kind = "Internal"
)

// Error is the package's structured error type.
//
// RuleID is a stable identifier (e.g. CLVM-SER-001, CLVM-CURRY-002, CLVM-DEC-003)
// naming the violated encoding or shape rule. Message is for humans.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

func wrapError(kind Kind, ruleID, msg string, cause error) error {
	if cause == nil {
		return newError(kind, ruleID, msg)
	}
	return &Error{Kind: kind, RuleID: ruleID, Message: msg, Cause: cause}
}

// WithField prefixes a decode error with the name of the field being decoded.
// Kind and RuleID are preserved. Non-structured errors are wrapped as KindDecode.
func WithField(field string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if !errors.As(err, &e) {
		return wrapError(KindDecode, "CLVM-DEC-000", field+": "+err.Error(), err)
	}
	return &Error{Kind: e.Kind, RuleID: e.RuleID, Message: field + ": " + e.Message, Cause: e.Cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}
