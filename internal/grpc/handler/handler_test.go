package handler

import (
	"context"
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"roombooking/internal/lock"
	"roombooking/internal/models"
	"roombooking/internal/repo"
	"roombooking/internal/seed"
	"roombooking/internal/service"
)

func newTestClient(t *testing.T) *RoomServiceClient {
	t.Helper()
	dir := t.TempDir()
	st := service.NewStore(
		repo.NewCatalogRepoFile(filepath.Join(dir, "room_data.json")),
		repo.NewLedgerRepoFile(filepath.Join(dir, "booking_records.json")),
	)
	if _, err := st.Initialize(context.Background(), seed.Default()); err != nil {
		t.Fatal(err)
	}
	h := NewHandler(service.NewBookingService(st, lock.NewLocal(time.Second), nil, nil), service.NewSearchService(st))

	lis := bufconn.Listen(1 << 20)
	srv := NewServer(h, nil)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewRoomServiceClient(conn)
}

func TestRoomServiceOverGRPC(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	info, err := c.GetRoomInfo(ctx, &GetRoomInfoRequest{RoomID: "R101"})
	if err != nil || info.Room.Capacity != 8 {
		t.Fatalf("GetRoomInfo = %+v, %v", info, err)
	}
	_, err = c.GetRoomInfo(ctx, &GetRoomInfoRequest{RoomID: "R999"})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("unknown room: %v", err)
	}

	list, err := c.ListRooms(ctx, &ListRoomsRequest{})
	if err != nil || len(list.Rooms) != 10 || list.Rooms[9].ID != "R110" {
		t.Fatalf("ListRooms = %+v, %v", list, err)
	}

	avail, err := c.GetAvailableRooms(ctx, &GetAvailableRoomsRequest{Start: "2023-10-01 10:30", End: "2023-10-01 11:00"})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, id := range avail.RoomIDs {
		found = found || id == "R101"
	}
	if !found {
		t.Fatalf("R101 should be free: %v", avail.RoomIDs)
	}

	req := &BookRoomRequest{RoomID: "R101", StartTime: "2023-10-01 10:30", EndTime: "2023-10-01 11:00", UserName: "alice"}
	booked, err := c.BookRoom(ctx, req)
	if err != nil || booked.BookingID == "" {
		t.Fatalf("BookRoom = %+v, %v", booked, err)
	}
	if _, err := c.BookRoom(ctx, req); status.Code(err) != codes.AlreadyExists {
		t.Fatalf("repeat BookRoom: %v", err)
	}

	done, err := c.CheckCompletion(ctx, &CheckCompletionRequest{Query: models.BookingQuery{RoomID: "R101", UserName: "alice"}})
	if err != nil || !done.Completed {
		t.Fatalf("CheckCompletion = %+v, %v", done, err)
	}
	found2, err := c.SearchBookings(ctx, &SearchBookingsRequest{Query: models.BookingQuery{UserName: "alice"}})
	if err != nil || len(found2.Bookings) != 1 || found2.Bookings[0].ID != booked.BookingID {
		t.Fatalf("SearchBookings = %+v, %v", found2, err)
	}

	st, err := c.GetRoomStatus(ctx, &GetRoomStatusRequest{AsOf: "2023-10-01 10:00"})
	if err != nil || len(st.Rooms) != 10 || len(st.Rooms[0].Bookings) != 2 {
		t.Fatalf("GetRoomStatus = %+v, %v", st, err)
	}
	t.Log("✓ RoomService over bufconn")
}

func TestGRPCInvalidArgument(t *testing.T) {
	c := newTestClient(t)
	_, err := c.BookRoom(context.Background(), &BookRoomRequest{RoomID: "R101", StartTime: "2023-10-01 11:00", EndTime: "2023-10-01 11:00", UserName: "x"})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("got %v", err)
	}
	_, err = c.GetAvailableRooms(context.Background(), &GetAvailableRoomsRequest{Start: "bad", End: "2023-10-01 11:00"})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("got %v", err)
	}
}

func TestToStatus(t *testing.T) {
	for err, want := range map[error]codes.Code{
		service.ErrBusy:    codes.Unavailable,
		service.ErrStorage: codes.Internal,
	} {
		if got := status.Code(toStatus(err)); got != want {
			t.Fatalf("toStatus(%v) = %v, want %v", err, got, want)
		}
	}
	st, _ := status.FromError(toStatus(fmt.Errorf("%w: ledger append: %w", service.ErrStorage, errors.New("disk full"))))
	if st.Code() != codes.Internal || st.Message() != service.ErrStorage.Error() {
		t.Fatalf("storage status = %v %q", st.Code(), st.Message())
	}
	if toStatus(nil) != nil {
		t.Fatal("nil must stay nil")
	}
}
