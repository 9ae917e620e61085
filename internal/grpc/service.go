package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service and method names of the account API. Messages are
// google.protobuf.Struct so no generated code is needed on either side.
const (
	ServiceName      = "mediauser.account.v1.AccountService"
	LoginMethod      = "/" + ServiceName + "/Login"
	ListUsersMethod  = "/" + ServiceName + "/ListUsers"
	CreateUserMethod = "/" + ServiceName + "/CreateUser"
	DeleteUserMethod = "/" + ServiceName + "/DeleteUser"
)

// AccountServiceServer is the server API for the account service.
type AccountServiceServer interface {
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListUsers(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterAccountServiceServer registers srv on s.
func RegisterAccountServiceServer(s grpc.ServiceRegistrar, srv AccountServiceServer) {
	s.RegisterService(&accountServiceDesc, srv)
}

type structCall func(AccountServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call structCall) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AccountServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AccountServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var accountServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Login", Handler: unaryHandler(LoginMethod, AccountServiceServer.Login)},
		{MethodName: "ListUsers", Handler: unaryHandler(ListUsersMethod, AccountServiceServer.ListUsers)},
		{MethodName: "CreateUser", Handler: unaryHandler(CreateUserMethod, AccountServiceServer.CreateUser)},
		{MethodName: "DeleteUser", Handler: unaryHandler(DeleteUserMethod, AccountServiceServer.DeleteUser)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mediauser/account/v1/account.proto",
}

// AccountServiceClient calls the account service.
type AccountServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAccountServiceClient(cc grpc.ClientConnInterface) *AccountServiceClient {
	return &AccountServiceClient{cc: cc}
}

func (c *AccountServiceClient) invoke(ctx context.Context, method string, in map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AccountServiceClient) Login(ctx context.Context, username, password string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LoginMethod, map[string]any{"username": username, "password": password}, opts...)
}

func (c *AccountServiceClient) ListUsers(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ListUsersMethod, map[string]any{}, opts...)
}

func (c *AccountServiceClient) CreateUser(ctx context.Context, username, password string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CreateUserMethod, map[string]any{"username": username, "password": password}, opts...)
}

func (c *AccountServiceClient) DeleteUser(ctx context.Context, id int64, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DeleteUserMethod, map[string]any{"id": id}, opts...)
}
