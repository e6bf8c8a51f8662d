package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/spendclass/archive"
	"xdao.co/spendclass/cidutil"
	"xdao.co/spendclass/classify"
	"xdao.co/spendclass/clvm"
	"xdao.co/spendclass/model"
)

// Server exposes a classifier and an optional spend archive over gRPC.
type Server struct {
	UnimplementedSpendClassServer

	Classifier *classify.Classifier
	Store      *archive.Archive
	Logger     *zap.Logger

	// Parse selects codec strictness for Classify requests.
	Parse clvm.ParseOptions
}

func (s *Server) Classify(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Classifier == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing classifier")
	}
	res, err := s.Classifier.ClassifyPairBytes(in.GetValue(), s.Parse)
	if err != nil {
		return nil, statusError(err)
	}
	b, err := json.Marshal(classify.Report(res.Allocator, res.Spend))
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.Bytes(b), nil
}

func (s *Server) Archive(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	if err := s.archiveReady(); err != nil {
		return nil, err
	}
	id, err := s.Store.PutPair(ctx, in.GetValue())
	if err != nil {
		return nil, statusError(err)
	}
	return wrapperspb.String(id.String()), nil
}

func (s *Server) Fetch(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	if err := s.archiveReady(); err != nil {
		return nil, err
	}
	id, err := cidutil.Parse(in.GetValue())
	if err != nil {
		return nil, statusError(model.NewError(model.ErrInvalidCID, err.Error()))
	}
	b, err := s.Store.GetPair(ctx, id)
	if err != nil {
		return nil, statusError(err)
	}
	return wrapperspb.Bytes(b), nil
}

func (s *Server) Has(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	if err := s.archiveReady(); err != nil {
		return nil, err
	}
	id, err := cidutil.Parse(in.GetValue())
	if err != nil {
		return nil, statusError(model.NewError(model.ErrInvalidCID, err.Error()))
	}
	ok, err := s.Store.Has(ctx, id)
	if err != nil {
		return nil, statusError(err)
	}
	return wrapperspb.Bool(ok), nil
}

// Registry lists the classifier's template entries in registration order.
func (s *Server) Registry(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	if s == nil || s.Classifier == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing classifier")
	}
	entries := s.Classifier.Registry().Entries()
	items := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		items = append(items, map[string]interface{}{
			"hash":    e.Hash.String(),
			"shape":   string(e.Shape),
			"version": e.Version.String(),
			"name":    e.Name,
		})
	}
	list, err := structpb.NewList(items)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return list, nil
}

func (s *Server) archiveReady() error {
	if s == nil || s.Store == nil {
		return statusError(model.NewError(model.ErrMissingArchive, "server has no archive configured"))
	}
	return nil
}

// UnaryLogger logs each unary call with its method, gRPC code and latency.
func UnaryLogger(log *zap.Logger) grpc.UnaryServerInterceptor {
	if log == nil {
		log = zap.NewNop()
	}
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.Stringer("code", code),
			zap.Duration("elapsed", time.Since(start)),
		}
		switch code {
		case codes.OK:
			log.Debug("rpc", fields...)
		case codes.Internal, codes.DataLoss, codes.Unknown:
			log.Error("rpc", append(fields, zap.Error(err))...)
		default:
			log.Info("rpc", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}

// NewGRPCServer builds a gRPC server with srv registered and call logging installed.
func NewGRPCServer(srv *Server, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{grpc.UnaryInterceptor(UnaryLogger(srv.Logger))}, opts...)
	gs := grpc.NewServer(opts...)
	RegisterSpendClassServer(gs, srv)
	return gs
}
