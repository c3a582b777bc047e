package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "btroller.v1alpha1.RollerService"

// Full method names
const (
	RollerService_RollDropShips_FullMethodName          = "/" + ServiceName + "/RollDropShips"
	RollerService_RollPrimitiveJumpShips_FullMethodName = "/" + ServiceName + "/RollPrimitiveJumpShips"
	RollerService_RollJumpShips_FullMethodName          = "/" + ServiceName + "/RollJumpShips"
	RollerService_GetRollSession_FullMethodName         = "/" + ServiceName + "/GetRollSession"
	RollerService_ClearRollSession_FullMethodName       = "/" + ServiceName + "/ClearRollSession"
	RollerService_Audit_FullMethodName                  = "/" + ServiceName + "/Audit"
)

// RollerServiceServer is the server API for the roller service
type RollerServiceServer interface {
	RollDropShips(context.Context, *RollRequest) (*RollResponse, error)
	RollPrimitiveJumpShips(context.Context, *RollRequest) (*RollResponse, error)
	RollJumpShips(context.Context, *RollJumpShipsRequest) (*RollResponse, error)
	GetRollSession(context.Context, *GetRollSessionRequest) (*GetRollSessionResponse, error)
	ClearRollSession(context.Context, *ClearRollSessionRequest) (*ClearRollSessionResponse, error)
	Audit(context.Context, *AuditRequest) (*AuditResponse, error)
}

// UnimplementedRollerServiceServer can be embedded for forward compatibility
type UnimplementedRollerServiceServer struct{}

func (UnimplementedRollerServiceServer) RollDropShips(context.Context, *RollRequest) (*RollResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RollDropShips not implemented")
}

func (UnimplementedRollerServiceServer) RollPrimitiveJumpShips(context.Context, *RollRequest) (*RollResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RollPrimitiveJumpShips not implemented")
}

func (UnimplementedRollerServiceServer) RollJumpShips(context.Context, *RollJumpShipsRequest) (*RollResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RollJumpShips not implemented")
}

func (UnimplementedRollerServiceServer) GetRollSession(context.Context, *GetRollSessionRequest) (*GetRollSessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetRollSession not implemented")
}

func (UnimplementedRollerServiceServer) ClearRollSession(context.Context, *ClearRollSessionRequest) (*ClearRollSessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ClearRollSession not implemented")
}

func (UnimplementedRollerServiceServer) Audit(context.Context, *AuditRequest) (*AuditResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Audit not implemented")
}

// RegisterRollerServiceServer registers srv on s
func RegisterRollerServiceServer(s grpc.ServiceRegistrar, srv RollerServiceServer) {
	s.RegisterService(&RollerService_ServiceDesc, srv)
}

// unary builds a method handler for one request type
func unary[Req any, Resp any](
	method string,
	call func(RollerServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RollerServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(RollerServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// RollerService_ServiceDesc is the grpc.ServiceDesc for the roller service
var RollerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RollerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "RollDropShips",
			Handler:    unary(RollerService_RollDropShips_FullMethodName, RollerServiceServer.RollDropShips),
		},
		{
			MethodName: "RollPrimitiveJumpShips",
			Handler:    unary(RollerService_RollPrimitiveJumpShips_FullMethodName, RollerServiceServer.RollPrimitiveJumpShips),
		},
		{
			MethodName: "RollJumpShips",
			Handler:    unary(RollerService_RollJumpShips_FullMethodName, RollerServiceServer.RollJumpShips),
		},
		{
			MethodName: "GetRollSession",
			Handler:    unary(RollerService_GetRollSession_FullMethodName, RollerServiceServer.GetRollSession),
		},
		{
			MethodName: "ClearRollSession",
			Handler:    unary(RollerService_ClearRollSession_FullMethodName, RollerServiceServer.ClearRollSession),
		},
		{
			MethodName: "Audit",
			Handler:    unary(RollerService_Audit_FullMethodName, RollerServiceServer.Audit),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "btroller/v1alpha1/roller.proto",
}

// RollerServiceClient is the client API for the roller service
type RollerServiceClient interface {
	RollDropShips(ctx context.Context, in *RollRequest, opts ...grpc.CallOption) (*RollResponse, error)
	RollPrimitiveJumpShips(ctx context.Context, in *RollRequest, opts ...grpc.CallOption) (*RollResponse, error)
	RollJumpShips(ctx context.Context, in *RollJumpShipsRequest, opts ...grpc.CallOption) (*RollResponse, error)
	GetRollSession(ctx context.Context, in *GetRollSessionRequest, opts ...grpc.CallOption) (*GetRollSessionResponse, error)
	ClearRollSession(ctx context.Context, in *ClearRollSessionRequest, opts ...grpc.CallOption) (*ClearRollSessionResponse, error)
	Audit(ctx context.Context, in *AuditRequest, opts ...grpc.CallOption) (*AuditResponse, error)
}

type rollerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewRollerServiceClient creates a client that always speaks the json codec
func NewRollerServiceClient(cc grpc.ClientConnInterface) RollerServiceClient {
	return &rollerServiceClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *rollerServiceClient) RollDropShips(ctx context.Context, in *RollRequest, opts ...grpc.CallOption) (*RollResponse, error) {
	return invoke[RollResponse](ctx, c.cc, RollerService_RollDropShips_FullMethodName, in, opts)
}

func (c *rollerServiceClient) RollPrimitiveJumpShips(ctx context.Context, in *RollRequest, opts ...grpc.CallOption) (*RollResponse, error) {
	return invoke[RollResponse](ctx, c.cc, RollerService_RollPrimitiveJumpShips_FullMethodName, in, opts)
}

func (c *rollerServiceClient) RollJumpShips(ctx context.Context, in *RollJumpShipsRequest, opts ...grpc.CallOption) (*RollResponse, error) {
	return invoke[RollResponse](ctx, c.cc, RollerService_RollJumpShips_FullMethodName, in, opts)
}

func (c *rollerServiceClient) GetRollSession(ctx context.Context, in *GetRollSessionRequest, opts ...grpc.CallOption) (*GetRollSessionResponse, error) {
	return invoke[GetRollSessionResponse](ctx, c.cc, RollerService_GetRollSession_FullMethodName, in, opts)
}

func (c *rollerServiceClient) ClearRollSession(ctx context.Context, in *ClearRollSessionRequest, opts ...grpc.CallOption) (*ClearRollSessionResponse, error) {
	return invoke[ClearRollSessionResponse](ctx, c.cc, RollerService_ClearRollSession_FullMethodName, in, opts)
}

func (c *rollerServiceClient) Audit(ctx context.Context, in *AuditRequest, opts ...grpc.CallOption) (*AuditResponse, error) {
	return invoke[AuditResponse](ctx, c.cc, RollerService_Audit_FullMethodName, in, opts)
}
