package model

import "fmt"

type ErrorCode string

const (
	ErrInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrInvalidCID         ErrorCode = "INVALID_CID"
	ErrMissingArchive     ErrorCode = "MISSING_ARCHIVE"
	ErrInputDecode        ErrorCode = "INPUT_DECODE"
	ErrDecomposition      ErrorCode = "DECOMPOSITION"
	ErrUnknownShape       ErrorCode = "UNKNOWN_SHAPE"
	ErrUnknownNestedLayer ErrorCode = "UNKNOWN_NESTED_LAYER"
	ErrTypedDecode        ErrorCode = "TYPED_DECODE"
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrInternal           ErrorCode = "INTERNAL"
)

// CodedError is a stable error with a machine-readable code and a human message.
// Stage and RuleID are set for classification failures.
type CodedError struct {
	Code    ErrorCode `json:"code"`
	Stage   string    `json:"stage,omitempty"`
	RuleID  string    `json:"ruleID,omitempty"`
	Message string    `json:"message"`
}

func (e *CodedError) Error() string {
	if e == nil {
		return ""
	}
	if e.RuleID != "" {
		return fmt.Sprintf("%s [%s]: %s", e.Code, e.RuleID, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}
