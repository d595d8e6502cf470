package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name. Every method takes
// and returns a google.protobuf.Struct so the UI can send the same JSON
// shapes it already speaks.
const ServiceName = "helpdesk.v1.Helpdesk"

const (
	MethodListTickets       = "ListTickets"
	MethodGetTicket         = "GetTicket"
	MethodCreateTicket      = "CreateTicket"
	MethodUpdateTicket      = "UpdateTicket"
	MethodListComments      = "ListComments"
	MethodAddComment        = "AddComment"
	MethodListCategories    = "ListCategories"
	MethodListContacts      = "ListContacts"
	MethodListAccounts      = "ListAccounts"
	MethodGetDashboardStats = "GetDashboardStats"
)

// HelpdeskServer is the server API for the helpdesk service.
type HelpdeskServer interface {
	ListTickets(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetTicket(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateTicket(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateTicket(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListComments(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddComment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCategories(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListContacts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListAccounts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetDashboardStats(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedHelpdeskServer can be embedded to have forward compatible
// implementations.
type UnimplementedHelpdeskServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedHelpdeskServer) ListTickets(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodListTickets)
}
func (UnimplementedHelpdeskServer) GetTicket(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodGetTicket)
}
func (UnimplementedHelpdeskServer) CreateTicket(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodCreateTicket)
}
func (UnimplementedHelpdeskServer) UpdateTicket(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodUpdateTicket)
}
func (UnimplementedHelpdeskServer) ListComments(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodListComments)
}
func (UnimplementedHelpdeskServer) AddComment(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodAddComment)
}
func (UnimplementedHelpdeskServer) ListCategories(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodListCategories)
}
func (UnimplementedHelpdeskServer) ListContacts(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodListContacts)
}
func (UnimplementedHelpdeskServer) ListAccounts(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodListAccounts)
}
func (UnimplementedHelpdeskServer) GetDashboardStats(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, unimplemented(MethodGetDashboardStats)
}

type unaryCall func(HelpdeskServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryCall) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(HelpdeskServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(HelpdeskServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var helpdeskServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HelpdeskServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler(MethodListTickets, HelpdeskServer.ListTickets),
		unaryHandler(MethodGetTicket, HelpdeskServer.GetTicket),
		unaryHandler(MethodCreateTicket, HelpdeskServer.CreateTicket),
		unaryHandler(MethodUpdateTicket, HelpdeskServer.UpdateTicket),
		unaryHandler(MethodListComments, HelpdeskServer.ListComments),
		unaryHandler(MethodAddComment, HelpdeskServer.AddComment),
		unaryHandler(MethodListCategories, HelpdeskServer.ListCategories),
		unaryHandler(MethodListContacts, HelpdeskServer.ListContacts),
		unaryHandler(MethodListAccounts, HelpdeskServer.ListAccounts),
		unaryHandler(MethodGetDashboardStats, HelpdeskServer.GetDashboardStats),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "helpdesk/v1/helpdesk.proto",
}

func RegisterHelpdeskServer(s grpc.ServiceRegistrar, srv HelpdeskServer) {
	s.RegisterService(&helpdeskServiceDesc, srv)
}

// HelpdeskClient calls the helpdesk service over a client connection.
type HelpdeskClient struct {
	cc grpc.ClientConnInterface
}

func NewHelpdeskClient(cc grpc.ClientConnInterface) *HelpdeskClient {
	return &HelpdeskClient{cc: cc}
}

// Call invokes method with in. A nil in sends an empty struct.
func (c *HelpdeskClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
