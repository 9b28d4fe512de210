package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The service is registered by hand on well-known message types:
//
//	service TableExtractor {
//	  rpc Extract(google.protobuf.Struct) returns (google.protobuf.Struct);
//	  rpc ExportXLSX(google.protobuf.Struct) returns (google.protobuf.BytesValue);
//	}
const (
	ServiceName          = "tabula.v1.TableExtractor"
	extractFullMethod    = "/" + ServiceName + "/Extract"
	exportXLSXFullMethod = "/" + ServiceName + "/ExportXLSX"
)

type TableExtractorServer interface {
	Extract(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ExportXLSX(ctx context.Context, req *structpb.Struct) (*wrapperspb.BytesValue, error)
}

func RegisterTableExtractorServer(s grpc.ServiceRegistrar, srv TableExtractorServer) {
	s.RegisterService(&tableExtractorServiceDesc, srv)
}

var tableExtractorServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TableExtractorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Extract", Handler: extractHandler},
		{MethodName: "ExportXLSX", Handler: exportXLSXHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tabula/v1/extractor.proto",
}

func extractHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TableExtractorServer).Extract(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: extractFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TableExtractorServer).Extract(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func exportXLSXHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TableExtractorServer).ExportXLSX(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: exportXLSXFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TableExtractorServer).ExportXLSX(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// TableExtractorClient calls the service over an established connection.
type TableExtractorClient struct {
	cc grpc.ClientConnInterface
}

func NewTableExtractorClient(cc grpc.ClientConnInterface) *TableExtractorClient {
	return &TableExtractorClient{cc: cc}
}

func (c *TableExtractorClient) Extract(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, extractFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TableExtractorClient) ExportXLSX(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, exportXLSXFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
