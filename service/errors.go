package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/spendclass/archive"
	"xdao.co/spendclass/classify"
	"xdao.co/spendclass/cidutil"
	"xdao.co/spendclass/clvm"
	"xdao.co/spendclass/model"
	"xdao.co/spendclass/storage"
)

var grpcCodes = map[model.ErrorCode]codes.Code{
	model.ErrInvalidRequest:     codes.InvalidArgument,
	model.ErrInvalidCID:         codes.InvalidArgument,
	model.ErrMissingArchive:     codes.FailedPrecondition,
	model.ErrInputDecode:        codes.InvalidArgument,
	model.ErrDecomposition:      codes.InvalidArgument,
	model.ErrTypedDecode:        codes.InvalidArgument,
	model.ErrUnknownShape:       codes.NotFound,
	model.ErrUnknownNestedLayer: codes.NotFound,
	model.ErrNotFound:           codes.NotFound,
	model.ErrInternal:           codes.Internal,
}

// coded maps any error raised while serving a request onto a model.CodedError.
func coded(err error) *model.CodedError {
	var ce *model.CodedError
	switch {
	case errors.As(err, &ce):
		return ce
	case errors.Is(err, storage.ErrNotFound):
		return model.NewError(model.ErrNotFound, err.Error())
	case errors.Is(err, storage.ErrInvalidCID), errors.Is(err, cidutil.ErrUnsupportedCID):
		return model.NewError(model.ErrInvalidCID, err.Error())
	case errors.Is(err, archive.ErrNotSpend):
		return model.NewError(model.ErrInvalidRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return model.NewError(model.ErrInternal, err.Error())
	}
	var clvmErr *clvm.Error
	var classErr *classify.Error
	if errors.As(err, &clvmErr) && !errors.As(err, &classErr) {
		return &model.CodedError{Code: model.ErrInputDecode, RuleID: clvmErr.RuleID, Message: err.Error()}
	}
	return classify.Coded(err)
}

// statusError encodes err as a gRPC status whose message is the JSON CodedError.
func statusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, storage.ErrCIDMismatch):
		return status.Error(codes.DataLoss, storage.ErrCIDMismatch.Error())
	}
	ce := coded(err)
	msg, merr := json.Marshal(ce)
	if merr != nil {
		return status.Error(codes.Internal, ce.Error())
	}
	code, ok := grpcCodes[ce.Code]
	if !ok {
		code = codes.Internal
	}
	return status.Error(code, string(msg))
}

// fromStatus recovers the CodedError carried by a status, falling back to a
// storage sentinel for the codes the archive uses.
func fromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	var ce model.CodedError
	if json.Unmarshal([]byte(st.Message()), &ce) == nil && ce.Code != "" {
		switch ce.Code {
		case model.ErrNotFound:
			return storage.ErrNotFound
		case model.ErrInvalidCID:
			return fmt.Errorf("%w: %s", storage.ErrInvalidCID, ce.Message)
		}
		return &ce
	}
	switch st.Code() {
	case codes.NotFound:
		return storage.ErrNotFound
	case codes.DataLoss:
		return storage.ErrCIDMismatch
	case codes.Canceled:
		return context.Canceled
	case codes.DeadlineExceeded:
		return context.DeadlineExceeded
	}
	return err
}
