package grpc

// proto.go hand-writes the service descriptor for prequal.v1.PrequalService.
// Messages are the application DTOs carried by the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hearthloan/prequal/internal/application/dto"
)

const serviceName = "prequal.v1.PrequalService"

// PrequalServiceServer is the server API for PrequalService.
type PrequalServiceServer interface {
	Prequalify(context.Context, *dto.PrequalifyRequest) (*dto.PreQualificationResponse, error)
	GetPrequalHistory(context.Context, *dto.PrequalHistoryRequest) (*dto.PrequalHistoryResponse, error)
	ListProducts(context.Context, *dto.ListProductsRequest) (*dto.ProductListResponse, error)
	GetApplication(context.Context, *dto.GetApplicationRequest) (*dto.ApplicationResponse, error)
	SubmitApplication(context.Context, *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error)
}

// UnimplementedPrequalServiceServer can be embedded for forward compatibility.
type UnimplementedPrequalServiceServer struct{}

func (UnimplementedPrequalServiceServer) Prequalify(context.Context, *dto.PrequalifyRequest) (*dto.PreQualificationResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Prequalify not implemented")
}
func (UnimplementedPrequalServiceServer) GetPrequalHistory(context.Context, *dto.PrequalHistoryRequest) (*dto.PrequalHistoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPrequalHistory not implemented")
}
func (UnimplementedPrequalServiceServer) ListProducts(context.Context, *dto.ListProductsRequest) (*dto.ProductListResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListProducts not implemented")
}
func (UnimplementedPrequalServiceServer) GetApplication(context.Context, *dto.GetApplicationRequest) (*dto.ApplicationResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetApplication not implemented")
}
func (UnimplementedPrequalServiceServer) SubmitApplication(context.Context, *dto.SubmitApplicationRequest) (*dto.ApplicationResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitApplication not implemented")
}

// RegisterPrequalServiceServer registers srv with the gRPC server.
func RegisterPrequalServiceServer(s grpclib.ServiceRegistrar, srv PrequalServiceServer) {
	s.RegisterService(&prequalServiceDesc, srv)
}

var prequalServiceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*PrequalServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "Prequalify", Handler: unaryHandler("Prequalify", PrequalServiceServer.Prequalify)},
		{MethodName: "GetPrequalHistory", Handler: unaryHandler("GetPrequalHistory", PrequalServiceServer.GetPrequalHistory)},
		{MethodName: "ListProducts", Handler: unaryHandler("ListProducts", PrequalServiceServer.ListProducts)},
		{MethodName: "GetApplication", Handler: unaryHandler("GetApplication", PrequalServiceServer.GetApplication)},
		{MethodName: "SubmitApplication", Handler: unaryHandler("SubmitApplication", PrequalServiceServer.SubmitApplication)},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "prequal/v1/prequal.proto",
}

// unaryHandler builds the method handler generated code would emit for one
// unary RPC.
func unaryHandler[Req, Resp any](
	method string,
	call func(PrequalServiceServer, context.Context, *Req) (*Resp, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	fullMethod := "/" + serviceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PrequalServiceServer), ctx, in)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PrequalServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
