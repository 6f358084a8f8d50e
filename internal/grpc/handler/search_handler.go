package handler

import (
	"context"
	"time"

	"roombooking/internal/models"
	"roombooking/internal/service"
)

// Handler serves RoomService on top of the booking and search services.
type Handler struct {
	bookingSvc service.BookingService
	searchSvc  service.SearchService
	now        func() time.Time
}

func NewHandler(bookingSvc service.BookingService, searchSvc service.SearchService) *Handler {
	return &Handler{
		bookingSvc: bookingSvc,
		searchSvc:  searchSvc,
		now:        time.Now,
	}
}

func (h *Handler) GetRoomInfo(ctx context.Context, req *GetRoomInfoRequest) (*GetRoomInfoResponse, error) {
	info, err := h.searchSvc.RoomInfo(ctx, req.RoomID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &GetRoomInfoResponse{Room: info}, nil
}

func (h *Handler) ListRooms(ctx context.Context, _ *ListRoomsRequest) (*ListRoomsResponse, error) {
	rooms, err := h.searchSvc.ListRooms(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ListRoomsResponse{Rooms: rooms}, nil
}

func (h *Handler) GetRoomStatus(ctx context.Context, req *GetRoomStatusRequest) (*GetRoomStatusResponse, error) {
	asOf := req.AsOf
	if asOf == "" {
		asOf = models.WallClock(h.now()).Format(models.CreatedAtLayout)
	}
	st, err := h.searchSvc.RoomStatus(ctx, asOf)
	if err != nil {
		return nil, toStatus(err)
	}
	return &GetRoomStatusResponse{AsOf: asOf, Rooms: st}, nil
}

func (h *Handler) GetAvailableRooms(ctx context.Context, req *GetAvailableRoomsRequest) (*GetAvailableRoomsResponse, error) {
	ids, err := h.searchSvc.AvailableRooms(ctx, req.Start, req.End)
	if err != nil {
		return nil, toStatus(err)
	}
	if ids == nil {
		ids = []string{}
	}
	return &GetAvailableRoomsResponse{RoomIDs: ids}, nil
}
