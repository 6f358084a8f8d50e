package handler

import (
	"context"

	"roombooking/internal/models"
)

func (h *Handler) BookRoom(ctx context.Context, req *BookRoomRequest) (*BookRoomResponse, error) {
	id, err := h.bookingSvc.BookRoom(ctx, req.RoomID, req.StartTime, req.EndTime, req.UserName)
	if err != nil {
		return nil, toStatus(err)
	}
	return &BookRoomResponse{BookingID: id}, nil
}

func (h *Handler) CheckCompletion(ctx context.Context, req *CheckCompletionRequest) (*CheckCompletionResponse, error) {
	preds, err := req.Query.Predicates()
	if err != nil {
		return nil, toStatus(err)
	}
	ok, err := h.searchSvc.CheckCompletion(ctx, preds...)
	if err != nil {
		return nil, toStatus(err)
	}
	return &CheckCompletionResponse{Completed: ok}, nil
}

func (h *Handler) SearchBookings(ctx context.Context, req *SearchBookingsRequest) (*SearchBookingsResponse, error) {
	preds, err := req.Query.Predicates()
	if err != nil {
		return nil, toStatus(err)
	}
	bs, err := h.searchSvc.SearchBookings(ctx, preds...)
	if err != nil {
		return nil, toStatus(err)
	}
	if bs == nil {
		bs = []models.Booking{}
	}
	return &SearchBookingsResponse{Bookings: bs}, nil
}
