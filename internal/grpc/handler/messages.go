package handler

import "roombooking/internal/models"

type GetRoomInfoRequest struct {
	RoomID string `json:"room_id"`
}

type GetRoomInfoResponse struct {
	Room models.RoomInfo `json:"room"`
}

type ListRoomsRequest struct{}

type ListRoomsResponse struct {
	Rooms []models.RoomInfo `json:"rooms"`
}

type GetRoomStatusRequest struct {
	// empty means now
	AsOf string `json:"as_of,omitempty"`
}

type GetRoomStatusResponse struct {
	AsOf  string              `json:"as_of"`
	Rooms []models.RoomStatus `json:"rooms"`
}

type GetAvailableRoomsRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type GetAvailableRoomsResponse struct {
	RoomIDs []string `json:"room_ids"`
}

type BookRoomRequest struct {
	RoomID    string `json:"room_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	UserName  string `json:"user_name"`
}

type BookRoomResponse struct {
	BookingID string `json:"booking_id"`
}

type CheckCompletionRequest struct {
	Query models.BookingQuery `json:"query"`
}

type CheckCompletionResponse struct {
	Completed bool `json:"completed"`
}

type SearchBookingsRequest struct {
	Query models.BookingQuery `json:"query"`
}

type SearchBookingsResponse struct {
	Bookings []models.Booking `json:"bookings"`
}
