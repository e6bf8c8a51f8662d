package service

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const serviceName = "xdao.spendclass.v1.SpendClass"

// SpendClassServer is the server API for the SpendClass gRPC service.
//
// Requests and responses are protobuf well-known types, so no codegen step is
// needed. Spend pairs travel as serialized (puzzle . solution) bytes; reports as
// JSON-encoded model.SpendReport.
type SpendClassServer interface {
	Classify(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	Archive(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
	Fetch(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	Has(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
	Registry(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
}

// UnimplementedSpendClassServer can be embedded to have forward compatible implementations.
type UnimplementedSpendClassServer struct{}

func (UnimplementedSpendClassServer) Classify(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Classify not implemented")
}
func (UnimplementedSpendClassServer) Archive(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Archive not implemented")
}
func (UnimplementedSpendClassServer) Fetch(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Fetch not implemented")
}
func (UnimplementedSpendClassServer) Has(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Has not implemented")
}
func (UnimplementedSpendClassServer) Registry(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Registry not implemented")
}

// RegisterSpendClassServer registers the service on a gRPC server.
func RegisterSpendClassServer(s grpc.ServiceRegistrar, srv SpendClassServer) {
	s.RegisterService(&SpendClass_ServiceDesc, srv)
}

// SpendClassClient is the client API for the SpendClass gRPC service.
type SpendClassClient interface {
	Classify(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Archive(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Fetch(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Has(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	Registry(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error)
}

type spendClassClient struct{ cc grpc.ClientConnInterface }

func NewSpendClassClient(cc grpc.ClientConnInterface) SpendClassClient {
	return &spendClassClient{cc: cc}
}

func (c *spendClassClient) Classify(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Classify", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *spendClassClient) Archive(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Archive", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *spendClassClient) Fetch(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Fetch", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *spendClassClient) Has(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Has", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *spendClassClient) Registry(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Registry", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// methodHandler is the signature of grpc.MethodDesc.Handler.
type methodHandler = func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error)

// unaryHandler adapts a typed method to a grpc.MethodDesc handler.
func unaryHandler[Req any, Resp any](method string, call func(SpendClassServer, context.Context, *Req) (*Resp, error)) methodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SpendClassServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/" + method}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(SpendClassServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// SpendClass_ServiceDesc is the grpc.ServiceDesc for the SpendClass service.
var SpendClass_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*SpendClassServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Classify", Handler: unaryHandler("Classify", SpendClassServer.Classify)},
		{MethodName: "Archive", Handler: unaryHandler("Archive", SpendClassServer.Archive)},
		{MethodName: "Fetch", Handler: unaryHandler("Fetch", SpendClassServer.Fetch)},
		{MethodName: "Has", Handler: unaryHandler("Has", SpendClassServer.Has)},
		{MethodName: "Registry", Handler: unaryHandler("Registry", SpendClassServer.Registry)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "spendclass.proto",
}
