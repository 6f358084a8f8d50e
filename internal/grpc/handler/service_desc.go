package handler

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "roombooking.v1.RoomService"

type RoomServiceServer interface {
	GetRoomInfo(context.Context, *GetRoomInfoRequest) (*GetRoomInfoResponse, error)
	ListRooms(context.Context, *ListRoomsRequest) (*ListRoomsResponse, error)
	GetRoomStatus(context.Context, *GetRoomStatusRequest) (*GetRoomStatusResponse, error)
	GetAvailableRooms(context.Context, *GetAvailableRoomsRequest) (*GetAvailableRoomsResponse, error)
	BookRoom(context.Context, *BookRoomRequest) (*BookRoomResponse, error)
	CheckCompletion(context.Context, *CheckCompletionRequest) (*CheckCompletionResponse, error)
	SearchBookings(context.Context, *SearchBookingsRequest) (*SearchBookingsResponse, error)
}

// unary builds a method descriptor the way protoc-gen-go-grpc would.
func unary[Req, Resp any](name string, call func(RoomServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(RoomServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/" + name}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(RoomServiceServer), ctx, req.(*Req))
			})
		},
	}
}

var RoomServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*RoomServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetRoomInfo", RoomServiceServer.GetRoomInfo),
		unary("ListRooms", RoomServiceServer.ListRooms),
		unary("GetRoomStatus", RoomServiceServer.GetRoomStatus),
		unary("GetAvailableRooms", RoomServiceServer.GetAvailableRooms),
		unary("BookRoom", RoomServiceServer.BookRoom),
		unary("CheckCompletion", RoomServiceServer.CheckCompletion),
		unary("SearchBookings", RoomServiceServer.SearchBookings),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "roombooking/v1/room_service",
}

func RegisterRoomServiceServer(s grpc.ServiceRegistrar, srv RoomServiceServer) {
	s.RegisterService(&RoomServiceDesc, srv)
}

// RoomServiceClient calls the service with the JSON codec.
type RoomServiceClient struct{ cc grpc.ClientConnInterface }

func NewRoomServiceClient(cc grpc.ClientConnInterface) *RoomServiceClient {
	return &RoomServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := cc.Invoke(ctx, "/"+serviceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RoomServiceClient) GetRoomInfo(ctx context.Context, in *GetRoomInfoRequest, opts ...grpc.CallOption) (*GetRoomInfoResponse, error) {
	return invoke[GetRoomInfoResponse](ctx, c.cc, "GetRoomInfo", in, opts)
}

func (c *RoomServiceClient) ListRooms(ctx context.Context, in *ListRoomsRequest, opts ...grpc.CallOption) (*ListRoomsResponse, error) {
	return invoke[ListRoomsResponse](ctx, c.cc, "ListRooms", in, opts)
}

func (c *RoomServiceClient) GetRoomStatus(ctx context.Context, in *GetRoomStatusRequest, opts ...grpc.CallOption) (*GetRoomStatusResponse, error) {
	return invoke[GetRoomStatusResponse](ctx, c.cc, "GetRoomStatus", in, opts)
}

func (c *RoomServiceClient) GetAvailableRooms(ctx context.Context, in *GetAvailableRoomsRequest, opts ...grpc.CallOption) (*GetAvailableRoomsResponse, error) {
	return invoke[GetAvailableRoomsResponse](ctx, c.cc, "GetAvailableRooms", in, opts)
}

func (c *RoomServiceClient) BookRoom(ctx context.Context, in *BookRoomRequest, opts ...grpc.CallOption) (*BookRoomResponse, error) {
	return invoke[BookRoomResponse](ctx, c.cc, "BookRoom", in, opts)
}

func (c *RoomServiceClient) CheckCompletion(ctx context.Context, in *CheckCompletionRequest, opts ...grpc.CallOption) (*CheckCompletionResponse, error) {
	return invoke[CheckCompletionResponse](ctx, c.cc, "CheckCompletion", in, opts)
}

func (c *RoomServiceClient) SearchBookings(ctx context.Context, in *SearchBookingsRequest, opts ...grpc.CallOption) (*SearchBookingsResponse, error) {
	return invoke[SearchBookingsResponse](ctx, c.cc, "SearchBookings", in, opts)
}
